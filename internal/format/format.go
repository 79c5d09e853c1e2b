// Package format переводит значения заказа в строки для страницы:
// цены в рублях, даты и статусы.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"joyvision-web/internal/storage"
)

const (
	Placeholder    = "—"
	CurrencySymbol = "₽"

	nbsp = "\u00a0"
)

var printer = message.NewPrinter(language.Russian)

// Price округляет сумму до рублей и печатает её с разделителями разрядов ru-RU.
// Нулевое значение decimal.Decimal считается нулём.
func Price(amount decimal.Decimal) string {
	rubles := amount.Round(0).IntPart()

	return printer.Sprintf("%v", number.Decimal(rubles)) + nbsp + CurrencySymbol
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Date returns Placeholder for empty or unparseable input.
func Date(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return Placeholder
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t.Format("02.01.2006")
		}
	}

	return Placeholder
}

func DateTime(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return t.Format("02.01.2006 15:04")
}

var statusLabels = map[string]string{
	storage.StatusDraft:        "Черновик",
	storage.StatusConfirmed:    "Подтверждён",
	storage.StatusInProduction: "В производстве",
	storage.StatusCompleted:    "Выполнен",
	storage.StatusCancelled:    "Отменён",
}

var statusClasses = map[string]string{
	storage.StatusDraft:        "bg-secondary",
	storage.StatusConfirmed:    "bg-info",
	storage.StatusInProduction: "bg-warning",
	storage.StatusCompleted:    "bg-success",
	storage.StatusCancelled:    "bg-danger",
}

// Status возвращает подпись статуса, неизвестный код отдаётся как есть.
func Status(code string) string {
	if label, ok := statusLabels[code]; ok {
		return label
	}
	return code
}

func StatusClass(code string) string {
	if class, ok := statusClasses[code]; ok {
		return class
	}
	return "bg-light text-dark"
}
