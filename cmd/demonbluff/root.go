// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package main is the demonbluff-engine CLI: predict runs one evaluation
// against a saved game-state snapshot, serve exposes the engine over HTTP,
// and watch re-runs predict whenever a snapshot file changes.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/duskline/demonbluff-engine/internal/config"
	"github.com/duskline/demonbluff-engine/pkg/logging"
)

var (
	configPath         string
	stabilityThreshold int
	maxIterations      int

	cfg EngineRuntime

	rootCmd = &cobra.Command{
		Use:   "demonbluff",
		Short: "Hypothesis-graph inference engine for Demon Bluff",
		Long: `demonbluff-engine evaluates a Demon Bluff game state against a
hypothesis-and-desire graph and reports the actions the evaluation
concluded on.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if stabilityThreshold > 0 {
				loaded.StabilityThreshold = stabilityThreshold
			}
			if maxIterations > 0 {
				loaded.MaxIterations = maxIterations
			}
			if err := loaded.Validate(); err != nil {
				return err
			}
			cfg = EngineRuntime{
				Config: loaded,
				Logger: logging.New(logging.Config{
					Level:   logLevel(loaded.LogLevel),
					Service: cmd.Name(),
				}),
			}
			return nil
		},
	}
)

// EngineRuntime bundles the resolved configuration and logger shared by
// every subcommand's RunE.
type EngineRuntime struct {
	Config config.EngineConfig
	Logger *logging.Logger
}

func logLevel(name string) logging.Level {
	switch name {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().IntVar(&stabilityThreshold, "stability-threshold", 0, "override the configured stability threshold")
	rootCmd.PersistentFlags().IntVar(&maxIterations, "max-iterations", 0, "override the configured iteration budget")

	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
