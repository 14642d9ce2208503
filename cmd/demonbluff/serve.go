// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/duskline/demonbluff-engine/internal/httpapi"
	"github.com/duskline/demonbluff-engine/internal/telemetry"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the inference engine over HTTP (POST /v1/predict, GET /v1/debug/stream)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		providers, err := telemetry.Setup(ctx, cfg.Config.Service.Name, telemetry.ModePrometheus)
		if err != nil {
			return err
		}
		defer providers.Shutdown(context.Background())

		srv := httpapi.NewServer(serveRoot(), cfg.Config, cfg.Logger)

		httpSrv := &http.Server{
			Addr:    serveAddr,
			Handler: srv.Handler(),
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			cfg.Logger.Info("serve: listening", "addr", serveAddr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpSrv.Shutdown(shutdownCtx)
		})

		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "address to serve /v1/predict and /v1/debug/stream on")
}
