// Package view отрисовывает страницу заказа из html/template.
// Все Render* - чистые функции: данные на входе, разметка на выходе.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"joyvision-web/internal/format"
	"joyvision-web/internal/notify"
	"joyvision-web/internal/storage"
)

//go:embed templates/*.html
var files embed.FS

// State - итог загрузки заказа. Страница рисуется после ответа бэкенда,
// промежуточного состояния загрузки у неё нет.
type State int

const (
	StateRendered State = iota + 1
	StateError
)

// Page - модель страницы заказа после загрузки.
type Page struct {
	State         State
	Title         string
	Order         *storage.Order
	Journal       []storage.JournalEntry
	Error         string
	Status        int
	Notifications []notify.Notification
}

// HTTPStatus returns the status code the page should be served with.
func (p Page) HTTPStatus() int {
	if p.Status != 0 {
		return p.Status
	}
	if p.State == StateError {
		return http.StatusBadGateway
	}
	return http.StatusOK
}

var actionLabels = map[string]string{
	storage.ActionAddSystem:  "Добавление системы",
	storage.ActionBitrixSync: "Синхронизация с Битрикс24",
}

var funcs = template.FuncMap{
	"price":       format.Price,
	"date":        format.Date,
	"datetime":    format.DateTime,
	"status":      format.Status,
	"statusClass": format.StatusClass,
	"dismissMs":   func() int64 { return notify.DismissAfter.Milliseconds() },
	"yesNo": func(b bool) string {
		if b {
			return "да"
		}
		return "нет"
	},
	"actionLabel": func(action string) string {
		if label, ok := actionLabels[action]; ok {
			return label
		}
		return action
	},
}

var templates = template.Must(template.New("").Funcs(funcs).ParseFS(files, "templates/*.html"))

// RenderPage рисует страницу целиком: уведомления и заказ либо панель ошибки.
func RenderPage(w io.Writer, page Page) error {
	if page.Title == "" {
		page.Title = pageTitle(page)
	}
	return execute(w, "layout", page)
}

// WritePage рисует страницу в буфер и только потом пишет статус и тело,
// чтобы ошибка шаблона не оставила полстраницы.
func WritePage(w http.ResponseWriter, page Page) error {
	var buf bytes.Buffer
	if err := RenderPage(&buf, page); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(page.HTTPStatus())
	_, err := buf.WriteTo(w)

	return err
}

func RenderOrder(w io.Writer, order *storage.Order, journal []storage.JournalEntry) error {
	return execute(w, "order", Page{State: StateRendered, Order: order, Journal: journal})
}

func RenderSystem(w io.Writer, system storage.System) error {
	return execute(w, "system", system)
}

func RenderError(w io.Writer, message string) error {
	return execute(w, "error", Page{State: StateError, Error: message})
}

func execute(w io.Writer, name string, data any) error {
	const op = "view.execute"

	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("%s: %s: %w", op, name, err)
	}
	return nil
}

func pageTitle(page Page) string {
	if page.Order != nil {
		return fmt.Sprintf("Заказ #%d", page.Order.ID)
	}
	return "Ошибка"
}
