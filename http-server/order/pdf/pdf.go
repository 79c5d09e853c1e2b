package pdf

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"joyvision-web/internal/service/orderview"
	"joyvision-web/internal/view"
)

var passHeaders = []string{"Content-Type", "Content-Disposition", "Content-Length"}

type DocumentOpener interface {
	OpenDocument(ctx context.Context, orderID int, kind string) (*http.Response, error)
}

// DownloadPDF открывается в новой вкладке и отдаёт документ бэкенда как есть.
func DownloadPDF(log *slog.Logger, opener DocumentOpener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.order.pdf.DownloadPDF"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil || id <= 0 {
			log.Error("некорректный номер заказа", slog.String("id", chi.URLParam(r, "id")))
			writeError(log, w, view.Page{State: view.StateError, Error: "Некорректный номер заказа", Status: http.StatusBadRequest})
			return
		}

		kind := chi.URLParam(r, "kind")

		resp, err := opener.OpenDocument(r.Context(), id, kind)
		if err != nil {
			log.Error("не удалось получить документ", slog.Int("order_id", id), slog.String("kind", kind), slog.String("error", err.Error()))
			writeError(log, w, view.Page{
				State:  view.StateError,
				Error:  orderview.UserMessage(err, orderview.TransportMessage),
				Status: orderview.ErrorStatus(err),
			})
			return
		}
		defer resp.Body.Close()

		for _, h := range passHeaders {
			if v := resp.Header.Get(h); v != "" {
				w.Header().Set(h, v)
			}
		}
		w.WriteHeader(resp.StatusCode)

		if _, err := io.Copy(w, resp.Body); err != nil {
			log.Error("обрыв при отдаче документа", slog.String("error", err.Error()))
		}
	}
}

func writeError(log *slog.Logger, w http.ResponseWriter, page view.Page) {
	if err := view.WritePage(w, page); err != nil {
		log.Error("не удалось отрисовать страницу ошибки", slog.String("error", err.Error()))
	}
}
