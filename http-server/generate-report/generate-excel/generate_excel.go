package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"joyvision-web/internal/service/orderview"
	"joyvision-web/internal/view"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type GenerateExcelHandler interface {
	GenerateSystems(ctx context.Context, orderID int) ([]byte, error)
}

func GenerateSystemsExcel(log *slog.Logger, gen GenerateExcelHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateSystemsExcel"

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

		// На Excel можно побольше времени
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		excelBytes, err := gen.GenerateSystems(ctx, id)
		if err != nil {
			log.Error("failed to generate excel", slog.Int("order_id", id), slog.String("error", err.Error()))
			writeError(log, w, view.Page{
				State:  view.StateError,
				Error:  orderview.UserMessage(err, orderview.TransportMessage),
				Status: orderview.ErrorStatus(err),
			})
			return
		}

		fileName := fmt.Sprintf("Systems_%d_%s.xlsx", id, time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(excelBytes)
	}
}

func writeError(log *slog.Logger, w http.ResponseWriter, page view.Page) {
	if err := view.WritePage(w, page); err != nil {
		log.Error("не удалось отрисовать страницу ошибки", slog.String("error", err.Error()))
	}
}
