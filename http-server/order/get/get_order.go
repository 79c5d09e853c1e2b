package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"joyvision-web/internal/notify"
	"joyvision-web/internal/view"
)

type OrderLoader interface {
	LoadOrder(ctx context.Context, id int) view.Page
}

// GetOrderPage отдаёт страницу заказа либо панель ошибки.
func GetOrderPage(log *slog.Logger, loader OrderLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.order.get.GetOrderPage"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var page view.Page

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil || id <= 0 {
			log.Error("некорректный номер заказа", slog.String("id", chi.URLParam(r, "id")))
			page = view.Page{State: view.StateError, Error: "Некорректный номер заказа", Status: http.StatusBadRequest}
		} else {
			page = loader.LoadOrder(r.Context(), id)
		}

		page.Notifications = notify.Take(w, r)

		if err := view.WritePage(w, page); err != nil {
			log.Error("не удалось отрисовать страницу заказа", slog.String("error", err.Error()))
		}
	}
}
