package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"yieldboard/logging"
)

func main() {
	cfg := mustConfig()
	log := logging.New(cfg.Environment, cfg.LogLevel).With("service", "yieldboard")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	app, err := newApp(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("mongo connect error")
	}
	defer app.close(context.Background())

	if cfg.BypassAuth {
		log.Warn("API_BYPASS_AUTH is set: requests are not authenticated")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.WithField("addr", srv.Addr).Info("yieldboard API listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server terminated")
	}
}
