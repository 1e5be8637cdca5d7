package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "code_reviewer/internal/adapters/http_server"
	"code_reviewer/internal/adapters/observability"
	"code_reviewer/internal/shared"
	"code_reviewer/internal/wiring"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	agg, closeProviders, err := wiring.NewAggregator(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("provider wiring failed")
	}
	defer func() {
		if err := closeProviders(); err != nil {
			log.Warn().Err(err).Msg("closing providers")
		}
	}()

	// http
	srv := server.New(server.Options{AllowedOrigins: cfg.AllowedOrigins, Timeout: cfg.HTTPTimeout})
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Reviewer:           agg,
		DefaultInstruction: cfg.Instruction,
		ReviewPath:         cfg.ReviewPath,
		MaxBodyBytes:       cfg.MaxBodyBytes,
	})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("review_path", cfg.ReviewPath).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("server shutdown incomplete")
	}
	log.Info().Msg("server stopped")
}
