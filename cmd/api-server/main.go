package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"trustreviews/internal/router"
	"trustreviews/pkg/utils"
)

func main() {
	logCfg, logErr := utils.LoadLogConfig()
	log := utils.NewLogger(logCfg, nil)
	if logErr != nil {
		log.WithError(logErr).Fatal("invalid log config")
	}

	cfg, err := utils.LoadServerConfig()
	if err != nil {
		log.WithError(err).Fatal("invalid server config")
	}

	httpSrv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router.New(cfg, log),
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr).Info("HTTP API server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.WithField("signal", sig.String()).Info("shutdown signal received")
	case err := <-errCh:
		log.WithError(err).Error("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("http shutdown error")
	}
	log.Info("server stopped")
}
