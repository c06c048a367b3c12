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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/AngelCh415/socialreport/internal/config"
	"github.com/AngelCh415/socialreport/internal/httpx"
	"github.com/AngelCh415/socialreport/internal/ingest"
	"github.com/AngelCh415/socialreport/internal/metrics"
	"github.com/AngelCh415/socialreport/internal/sink"
	"github.com/AngelCh415/socialreport/internal/store"
	"github.com/AngelCh415/socialreport/internal/telemetry"
	"github.com/AngelCh415/socialreport/internal/utils"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("config", slog.String("err", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	tel := telemetry.New(reg)

	cl := ingest.NewHTTPClient(cfg.HTTPTimeout())
	fetchCl := ingest.NewGuardedHTTPClient(cfg.HTTPTimeout())
	if cfg.FetchAllowPrivate {
		logger.Warn("remote fetch may reach private addresses")
		fetchCl = cl
	}
	r := httpx.NewRouter(httpx.Deps{
		Log:      logger,
		Cfg:      cfg,
		Store:    store.NewMemoryStore(),
		ETL:      ingest.NewETL(logger, tel, cfg.DecodeWorkers, cfg.MaxUploadBytes()),
		Fetcher:  ingest.NewFetcher(fetchCl, utils.NewBackoff(cfg.FetchBackoff, cfg.FetchRetries), cfg.MaxUploadBytes(), tel),
		Reports:  metrics.NewService(logger, tel),
		Sink:     sink.New(cl, cfg.SinkURL, cfg.SinkSecret),
		Gatherer: reg,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("err", err.Error()))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", slog.String("err", err.Error()))
	}
}
