package list

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// RedirectToList уводит на список заказов: своего списка у сервиса нет,
// а ссылки "Назад" на страницах ведут на /orders.
func RedirectToList(log *slog.Logger, target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.order.list.RedirectToList"

		log.Debug("редирект на список заказов",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("target", target),
		)

		http.Redirect(w, r, target, http.StatusFound)
	}
}
