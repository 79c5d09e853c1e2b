package save

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"joyvision-web/internal/notify"
	"joyvision-web/internal/service/orderview"
	"joyvision-web/internal/storage"
	"joyvision-web/internal/view"
)

const failedMessage = "Произошла ошибка при добавлении системы"

type SystemAdder interface {
	AddSystem(ctx context.Context, orderID int, form orderview.SystemForm) (*storage.System, error)
}

// AddSystem принимает форму из модального окна. И успех, и ошибка
// заканчиваются редиректом на страницу заказа с уведомлением.
func AddSystem(log *slog.Logger, adder SystemAdder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.order.systems.save.AddSystem"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil || id <= 0 {
			log.Error("некорректный номер заказа", slog.String("id", chi.URLParam(r, "id")))
			page := view.Page{State: view.StateError, Error: "Некорректный номер заказа", Status: http.StatusBadRequest}
			if err := view.WritePage(w, page); err != nil {
				log.Error("не удалось отрисовать страницу ошибки", slog.String("error", err.Error()))
			}
			return
		}

		orderURL := fmt.Sprintf("/orders/%d", id)

		if err := r.ParseForm(); err != nil {
			log.Error("не удалось разобрать форму", slog.String("error", err.Error()))
			notify.Show(w, r, "Ошибка: некорректные данные формы", notify.Danger)
			http.Redirect(w, r, orderURL, http.StatusSeeOther)
			return
		}

		system, err := adder.AddSystem(r.Context(), id, orderview.SystemFormFromValues(r.PostForm))
		if err != nil {
			if errors.Is(err, orderview.ErrBusy) {
				notify.Show(w, r, orderview.ErrBusy.Error(), notify.Warning)
			} else {
				log.Error("не удалось добавить систему", slog.Int("order_id", id), slog.String("error", err.Error()))
				notify.Show(w, r, failureText(err), notify.Danger)
			}
			http.Redirect(w, r, orderURL, http.StatusSeeOther)
			return
		}

		msg := "Система добавлена"
		if system != nil && system.Position > 0 {
			msg = fmt.Sprintf("Система добавлена на позицию %d", system.Position)
		}

		log.Info("система добавлена", slog.Int("order_id", id))
		notify.Show(w, r, msg, notify.Success)
		http.Redirect(w, r, orderURL, http.StatusSeeOther)
	}
}

func failureText(err error) string {
	msg := orderview.UserMessage(err, "")
	if msg == "" {
		return failedMessage
	}
	return "Ошибка: " + msg
}
