// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package telemetry wires up OpenTelemetry tracing and metrics for the
// demonbluff-engine CLI and server components.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter, mirroring the teacher's
// services/trace/dag package-var pattern: one named tracer/meter per
// package, set up once at process start and read by every call site.
var (
	tracer = otel.Tracer("demonbluff.engine")
	meter  = otel.Meter("demonbluff.engine")
)

// Tracer returns the package tracer used to start iteration spans.
func Tracer() trace.Tracer { return tracer }

// Meter returns the package meter used for engine counters/histograms.
func Meter() metric.Meter { return meter }

// Mode selects which metrics exporter backs the MeterProvider.
type Mode int

const (
	// ModeStdout writes traces and metrics to stdout, for predict/watch.
	ModeStdout Mode = iota
	// ModePrometheus exposes metrics on a /metrics endpoint, for serve.
	ModePrometheus
)

// Providers bundles the constructed TracerProvider and MeterProvider and
// installs them as the global otel providers. Shutdown must be called to
// flush exporters on exit.
type Providers struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
}

// Setup constructs tracing and metrics providers for serviceName and
// installs them globally. mode selects the metrics exporter; tracing
// always uses the stdout exporter, since this repository has no tracing
// backend configured by default.
func Setup(ctx context.Context, serviceName string, mode Mode) (*Providers, error) {
	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(
		attribute.String("service.name", serviceName),
	))
	if err != nil {
		return nil, fmt.Errorf("telemetry: build resource: %w", err)
	}

	traceExporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("telemetry: build trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)

	var mp *sdkmetric.MeterProvider
	switch mode {
	case ModePrometheus:
		promExporter, err := prometheus.New()
		if err != nil {
			return nil, fmt.Errorf("telemetry: build prometheus exporter: %w", err)
		}
		mp = sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(promExporter),
			sdkmetric.WithResource(res),
		)
	default:
		metricExporter, err := stdoutmetric.New()
		if err != nil {
			return nil, fmt.Errorf("telemetry: build stdout metric exporter: %w", err)
		}
		mp = sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
			sdkmetric.WithResource(res),
		)
	}

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	tracer = tp.Tracer("demonbluff.engine")
	meter = mp.Meter("demonbluff.engine")

	return &Providers{tracerProvider: tp, meterProvider: mp}, nil
}

// Shutdown flushes and stops both providers.
func (p *Providers) Shutdown(ctx context.Context) error {
	if err := p.tracerProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("telemetry: shutdown tracer provider: %w", err)
	}
	if err := p.meterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("telemetry: shutdown meter provider: %w", err)
	}
	return nil
}
