package orderview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"joyvision-web/internal/apiclient"
	"joyvision-web/internal/storage"
	"joyvision-web/internal/view"
)

const TransportMessage = "Сервер недоступен, попробуйте позже"

var (
	ErrBusy            = errors.New("по заказу уже выполняется операция, дождитесь её завершения")
	ErrUnknownDocument = errors.New("неизвестный тип документа")
)

// DocumentKinds - выгрузки, которые отдаёт бэкенд.
var DocumentKinds = map[string]string{
	"kp":   "КП",
	"spec": "Разблюдовка",
}

type Backend interface {
	GetOrder(ctx context.Context, id int) (*storage.Order, error)
	AddSystem(ctx context.Context, orderID int, req storage.SystemRequest) (*storage.System, error)
	SyncBitrix(ctx context.Context, orderID int) (*storage.SyncResult, error)
	OpenDocument(ctx context.Context, orderID int, kind string) (*http.Response, error)
}

type Journal interface {
	Record(ctx context.Context, entry storage.JournalEntry) error
	Recent(ctx context.Context, orderID int, limit int) ([]storage.JournalEntry, error)
}

type Controller struct {
	log          *slog.Logger
	backend      Backend
	journal      Journal
	journalLimit int
	locks        *orderLocks
	now          func() time.Time
}

type Option func(*Controller)

func WithJournal(journal Journal, limit int) Option {
	return func(c *Controller) {
		if journal != nil {
			c.journal = journal
		}
		if limit > 0 {
			c.journalLimit = limit
		}
	}
}

func New(log *slog.Logger, backend Backend, opts ...Option) *Controller {
	c := &Controller{
		log:          log,
		backend:      backend,
		journal:      noopJournal{},
		journalLimit: 5,
		locks:        newOrderLocks(),
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// LoadOrder запрашивает заказ один раз. Любая ошибка превращается в
// страницу с панелью ошибки, повторных запросов к бэкенду нет.
func (c *Controller) LoadOrder(ctx context.Context, id int) view.Page {
	const op = "service.orderview.LoadOrder"

	order, err := c.backend.GetOrder(ctx, id)
	if err != nil {
		c.log.Error("не удалось загрузить заказ", slog.String("op", op), slog.Int("order_id", id), slog.String("error", err.Error()))
		return view.Page{
			State:  view.StateError,
			Error:  UserMessage(err, TransportMessage),
			Status: ErrorStatus(err),
		}
	}

	journal, err := c.journal.Recent(ctx, id, c.journalLimit)
	if err != nil {
		c.log.Warn("журнал действий недоступен", slog.String("op", op), slog.String("error", err.Error()))
		journal = nil
	}

	return view.Page{
		State:   view.StateRendered,
		Order:   order,
		Journal: journal,
	}
}

// AddSystem приводит поля формы, проверяет их и добавляет систему в заказ.
func (c *Controller) AddSystem(ctx context.Context, orderID int, form SystemForm) (*storage.System, error) {
	const op = "service.orderview.AddSystem"

	unlock, ok := c.locks.tryLock(orderID)
	if !ok {
		return nil, ErrBusy
	}
	defer unlock()

	req, err := form.Request()
	if err != nil {
		c.record(ctx, orderID, storage.ActionAddSystem, err, "")
		return nil, err
	}

	system, err := c.backend.AddSystem(ctx, orderID, req)
	if err != nil {
		c.record(ctx, orderID, storage.ActionAddSystem, err, "")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.record(ctx, orderID, storage.ActionAddSystem, nil, fmt.Sprintf("%s %d×%d", req.SystemType, req.Width, req.Height))

	return system, nil
}

func (c *Controller) SyncBitrix(ctx context.Context, orderID int) (*storage.SyncResult, error) {
	const op = "service.orderview.SyncBitrix"

	unlock, ok := c.locks.tryLock(orderID)
	if !ok {
		return nil, ErrBusy
	}
	defer unlock()

	result, err := c.backend.SyncBitrix(ctx, orderID)
	if err != nil {
		c.record(ctx, orderID, storage.ActionBitrixSync, err, "")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.record(ctx, orderID, storage.ActionBitrixSync, nil, fmt.Sprintf("сделка %s", result.BitrixDealID))

	return result, nil
}

// OpenDocument проверяет тип выгрузки и отдаёт ответ бэкенда как есть.
func (c *Controller) OpenDocument(ctx context.Context, orderID int, kind string) (*http.Response, error) {
	const op = "service.orderview.OpenDocument"

	if _, ok := DocumentKinds[kind]; !ok {
		return nil, fmt.Errorf("%s: %q: %w", op, kind, ErrUnknownDocument)
	}

	resp, err := c.backend.OpenDocument(ctx, orderID, kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return resp, nil
}

// Order нужен выгрузке в Excel, журнал ей не нужен.
func (c *Controller) Order(ctx context.Context, orderID int) (*storage.Order, error) {
	return c.backend.GetOrder(ctx, orderID)
}

func (c *Controller) record(ctx context.Context, orderID int, action string, actionErr error, message string) {
	entry := storage.JournalEntry{
		OrderID:   orderID,
		Action:    action,
		Success:   actionErr == nil,
		Message:   message,
		CreatedAt: c.now(),
	}
	if actionErr != nil {
		entry.Message = UserMessage(actionErr, TransportMessage)
	}

	if err := c.journal.Record(ctx, entry); err != nil {
		c.log.Warn("не удалось записать действие в журнал",
			slog.Int("order_id", orderID),
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
	}
}

// UserMessage выбирает текст для пользователя: сообщение бэкенда,
// ошибку формы или общий текст при сбое связи.
func UserMessage(err error, transport string) string {
	var apiErr *apiclient.APIError
	var formErr *FormError

	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.As(err, &formErr):
		return formErr.Error()
	case errors.Is(err, ErrBusy):
		return ErrBusy.Error()
	case errors.Is(err, ErrUnknownDocument):
		return ErrUnknownDocument.Error()
	default:
		return transport
	}
}

// ErrorStatus подбирает код ответа для страницы ошибки: 404, если заказа
// или документа нет, иначе 502.
func ErrorStatus(err error) int {
	var apiErr *apiclient.APIError

	switch {
	case errors.Is(err, ErrUnknownDocument):
		return http.StatusNotFound
	case errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

type noopJournal struct{}

func (noopJournal) Record(context.Context, storage.JournalEntry) error { return nil }

func (noopJournal) Recent(context.Context, int, int) ([]storage.JournalEntry, error) {
	return nil, nil
}
