package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"joyvision-web/internal/apiclient"
	"joyvision-web/internal/config"
	generate_excel "joyvision-web/internal/service/generate-excel"
	"joyvision-web/internal/service/orderview"
	"joyvision-web/internal/storage/mysql"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustConfig()

	log := setupLogger(cfg.Env, "errors.log")

	client := apiclient.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)

	var opts []orderview.Option
	if cfg.Journal.DSN != "" {
		storage, err := mysql.New(cfg.Journal)
		if err != nil {
			log.Error("failed to open journal db", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer storage.Close()

		opts = append(opts, orderview.WithJournal(storage, cfg.Journal.RecentLimit))
	} else {
		log.Info("journal disabled: JOURNAL_DSN is empty")
	}

	ctrl := orderview.New(log, client, opts...)
	genService := generate_excel.NewGenerateService(ctrl)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, ctrl, genService),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.Backend.Timeout + cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server started",
			slog.String("address", cfg.Address),
			slog.String("backend", cfg.Backend.BaseURL),
			slog.String("env", cfg.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped")
}
