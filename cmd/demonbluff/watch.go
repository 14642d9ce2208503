// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/duskline/demonbluff-engine/internal/telemetry"
)

var (
	watchInput    string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run predict every time the input snapshot file changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		providers, err := telemetry.Setup(ctx, cfg.Config.Service.Name, telemetry.ModeStdout)
		if err != nil {
			return err
		}
		defer providers.Shutdown(context.Background())

		return watchSnapshot(ctx, watchInput, watchDebounce)
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchInput, "input", "", "path to the game-state JSON snapshot to watch")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 100*time.Millisecond, "how long to wait for writes to settle before re-running predict")
	watchCmd.MarkFlagRequired("input")
}

// watchSnapshot watches path's containing directory and re-runs predict
// against path every time events settle for debounce. Watching the
// directory rather than the file directly survives editors that replace
// the file (rename over it) instead of writing in place.
func watchSnapshot(ctx context.Context, path string, debounce time.Duration) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return err
	}

	if err := runPredictFile(ctx, path); err != nil {
		cfg.Logger.Error("watch: initial predict failed", "error", err)
	}

	var timer *time.Timer
	var timerC <-chan time.Time
	resetTimer := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
		} else {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)
		}
		timerC = timer.C
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			evAbs, err := filepath.Abs(ev.Name)
			if err != nil || evAbs != abs {
				continue
			}
			resetTimer()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			cfg.Logger.Warn("watch: fsnotify error", "error", err)
		case <-timerC:
			if err := runPredictFile(ctx, path); err != nil {
				cfg.Logger.Error("watch: predict failed", "error", err)
			}
		}
	}
}

func runPredictFile(ctx context.Context, path string) error {
	gs, err := loadSnapshotFile(path)
	if err != nil {
		return err
	}
	return runPredict(ctx, gs, os.Stdout)
}
