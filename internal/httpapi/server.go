// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package httpapi exposes the inference engine over HTTP: a synchronous
// prediction endpoint, a websocket stream of the evaluator's debugger
// events, and a Prometheus metrics endpoint.
package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/duskline/demonbluff-engine/internal/config"
	"github.com/duskline/demonbluff-engine/internal/engine"
	"github.com/duskline/demonbluff-engine/pkg/logging"
)

// Server wires the engine to an HTTP mux. Root is the hypothesis this
// server evaluates against every submitted game state; this repository's
// hypothesis catalog (internal/hypotheses) is demonstrative only, so Root
// is supplied by the caller rather than hardcoded here.
type Server struct {
	root   engine.HypothesisBuilder
	cfg    config.EngineConfig
	log    *logging.Logger
	stream *debugStream
}

// NewServer builds a Server. A cfg.Service.DebugBufSize of zero or less is
// raised to 1, so each debug stream connection buffers one event.
func NewServer(root engine.HypothesisBuilder, cfg config.EngineConfig, log *logging.Logger) *Server {
	bufSize := cfg.Service.DebugBufSize
	if bufSize <= 0 {
		bufSize = 1
	}
	return &Server{
		root:   root,
		cfg:    cfg,
		log:    log,
		stream: newDebugStream(bufSize, rate.NewLimiter(rate.Limit(20), 5)),
	}
}

// Handler returns the complete, OTel-instrumented HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/predict", s.handlePredict)
	mux.HandleFunc("GET /v1/debug/stream", s.stream.handle)
	mux.Handle("GET /metrics", promhttp.Handler())

	return otelhttp.NewHandler(mux, "demonbluff.httpapi")
}
