package sync

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

type BitrixSyncer interface {
	SyncBitrix(ctx context.Context, orderID int) (*storage.SyncResult, error)
}

var actionLabels = map[string]string{
	"created": "сделка создана",
	"updated": "сделка обновлена",
}

// SyncToBitrix отправляет заказ в Битрикс24. Подтверждение спрашивает страница.
func SyncToBitrix(log *slog.Logger, syncer BitrixSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.bitrix.sync.SyncToBitrix"

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

		result, err := syncer.SyncBitrix(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, orderview.ErrBusy):
				notify.Show(w, r, orderview.ErrBusy.Error(), notify.Warning)
			default:
				log.Error("ошибка синхронизации с Битрикс24", slog.Int("order_id", id), slog.String("error", err.Error()))

				msg := "Произошла ошибка при синхронизации"
				if text := orderview.UserMessage(err, ""); text != "" {
					msg = "Ошибка: " + text
				}
				notify.Show(w, r, msg, notify.Danger)
			}
			http.Redirect(w, r, orderURL, http.StatusSeeOther)
			return
		}

		log.Info("заказ синхронизирован", slog.Int("order_id", id), slog.String("deal_id", string(result.BitrixDealID)))
		notify.Show(w, r, SuccessMessage(result), notify.Success)
		http.Redirect(w, r, orderURL, http.StatusSeeOther)
	}
}

func SuccessMessage(result *storage.SyncResult) string {
	msg := fmt.Sprintf("Успешно синхронизировано! ID сделки: %s. Загружено файлов: %d", result.BitrixDealID, len(result.FilesUploaded))
	if label, ok := actionLabels[result.Action]; ok {
		msg += " (" + label + ")"
	}
	return msg
}
