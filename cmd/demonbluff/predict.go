// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/duskline/demonbluff-engine/internal/engine"
	"github.com/duskline/demonbluff-engine/internal/gamestate"
)

var predictInput string

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Evaluate a single game-state snapshot and print the resulting actions",
	RunE: func(cmd *cobra.Command, args []string) error {
		gs, err := loadSnapshotFile(predictInput)
		if err != nil {
			return err
		}
		return runPredict(cmd.Context(), gs, os.Stdout)
	},
}

func init() {
	predictCmd.Flags().StringVar(&predictInput, "input", "", "path to the game-state JSON snapshot")
	predictCmd.MarkFlagRequired("input")
}

func loadSnapshotFile(path string) (*gamestate.StaticGameState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	gs, err := gamestate.LoadSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return gs, nil
}

func runPredict(ctx context.Context, gs *gamestate.StaticGameState, out *os.File) error {
	root := buildRoot(gs)
	actions, err := engine.Evaluate(ctx, root, gs, engine.Options{
		StabilityThreshold: cfg.Config.StabilityThreshold,
		MaxIterations:      cfg.Config.MaxIterations,
		Logger:             cfg.Logger,
	})
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}
	for _, act := range actions.Slice() {
		fmt.Fprintln(out, act.String())
	}
	return nil
}
