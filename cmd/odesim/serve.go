package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/odesim/internal/api"
	"github.com/san-kum/odesim/internal/config"
	"github.com/san-kum/odesim/internal/sim"
)

const shutdownTimeout = 5 * time.Second

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	cfg.Log.Level, cfg.Log.Format = logLevel, logFormat
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	handler := api.NewHandler(sim.New(sim.WithLogger(logger)), logger)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-cmd.Context().Done():
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
