package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	bitrixsync "joyvision-web/http-server/bitrix/sync"
	generate_excel "joyvision-web/http-server/generate-report/generate-excel"
	"joyvision-web/http-server/health"
	getorder "joyvision-web/http-server/order/get"
	"joyvision-web/http-server/order/list"
	"joyvision-web/http-server/order/pdf"
	savesystem "joyvision-web/http-server/order/systems/save"
	"joyvision-web/internal/config"
	"joyvision-web/internal/middleware/auth"
	"joyvision-web/internal/middleware/csrf"
	generate_excel2 "joyvision-web/internal/service/generate-excel"
	"joyvision-web/internal/service/orderview"
)

func routes(cfg config.Config, log *slog.Logger, ctrl *orderview.Controller, genService *generate_excel2.GenerateExcelService) *chi.Mux {
	router := chi.NewRouter()

	if len(cfg.AllowedOrigins) > 0 {
		corsHandler := cors.New(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
		})
		router.Use(corsHandler.Handler)
	}

	router.Use(middleware.RequestID)
	//ip пользователя
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/health", health.Health())

	router.Group(func(r chi.Router) {
		r.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

		r.Get("/", list.RedirectToList(log, cfg.Backend.ListURL()))
		r.Get("/orders", list.RedirectToList(log, cfg.Backend.ListURL()))
		r.Get("/orders/{id}", getorder.GetOrderPage(log, ctrl))

		// мутации отвечают 303 на страницу заказа
		r.With(csrf.SameOrigin(cfg.AllowedOrigins)).Post("/orders/{id}/systems", savesystem.AddSystem(log, ctrl))
		r.With(csrf.SameOrigin(cfg.AllowedOrigins)).Post("/orders/{id}/sync", bitrixsync.SyncToBitrix(log, ctrl))

		r.Get("/orders/{id}/pdf/{kind}", pdf.DownloadPDF(log, ctrl))
		r.Get("/orders/{id}/export/xlsx", generate_excel.GenerateSystemsExcel(log, genService))
	})

	return router
}
