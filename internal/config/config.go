// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config loads the engine's runtime settings: the convergence
// loop's stability threshold and iteration budget, logging, and the
// service name reported to telemetry. Priority is env > file > defaults.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// EngineConfig is the top-level configuration for demonbluff-engine's CLI
// and server commands.
type EngineConfig struct {
	// StabilityThreshold caps consecutive still-changing iterations before
	// the controller forces a cycle-break or desire-collapse decision; an
	// unchanged iteration forces that decision at once.
	StabilityThreshold int `json:"stability_threshold" yaml:"stability_threshold"`
	// MaxIterations bounds the convergence loop.
	MaxIterations int `json:"max_iterations" yaml:"max_iterations"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level" yaml:"log_level"`
	// Service names this process to telemetry (resource service.name).
	Service ServiceConfig `json:"service" yaml:"service"`
}

// ServiceConfig names the process for telemetry and the debug HTTP API.
type ServiceConfig struct {
	Name         string `json:"name" yaml:"name"`
	MetricsAddr  string `json:"metrics_addr" yaml:"metrics_addr"`
	DebugBufSize int    `json:"debug_buffer_size" yaml:"debug_buffer_size"`
}

// Default returns EngineConfig's defaults, matching the convergence
// controller's own fallbacks (100 stability iterations, 10000 iteration
// budget) so a zero-value file or missing config file still behaves
// identically to calling engine.Evaluate with a zero Options.
func Default() EngineConfig {
	return EngineConfig{
		StabilityThreshold: 100,
		MaxIterations:      10000,
		LogLevel:           "info",
		Service: ServiceConfig{
			Name:         "demonbluff-engine",
			MetricsAddr:  ":9090",
			DebugBufSize: 256,
		},
	}
}

// Load reads EngineConfig with priority env > file > defaults. An empty
// path or a path that does not exist is not an error: the defaults (as
// overridden by environment variables) are returned as-is.
func Load(path string) (EngineConfig, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("config: load file: %w", err)
		}
	}

	loadEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: invalid: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *EngineConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

func loadEnv(cfg *EngineConfig) {
	if v := os.Getenv("DEMONBLUFF_STABILITY_THRESHOLD"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.StabilityThreshold = i
		}
	}
	if v := os.Getenv("DEMONBLUFF_MAX_ITERATIONS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.MaxIterations = i
		}
	}
	if v := os.Getenv("DEMONBLUFF_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DEMONBLUFF_SERVICE_NAME"); v != "" {
		cfg.Service.Name = v
	}
	if v := os.Getenv("DEMONBLUFF_METRICS_ADDR"); v != "" {
		cfg.Service.MetricsAddr = v
	}
}

// Validate checks that the loaded configuration is usable.
func (c EngineConfig) Validate() error {
	if c.StabilityThreshold <= 0 {
		return fmt.Errorf("stability_threshold must be positive, got %d", c.StabilityThreshold)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max_iterations must be positive, got %d", c.MaxIterations)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	if c.Service.Name == "" {
		return fmt.Errorf("service.name must not be empty")
	}
	return nil
}
