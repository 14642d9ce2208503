// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/duskline/demonbluff-engine/internal/action"
	"github.com/duskline/demonbluff-engine/internal/fitness"
	"github.com/duskline/demonbluff-engine/internal/gamestate"
	"github.com/duskline/demonbluff-engine/internal/hypotheses"
)

// buildRoot returns a placeholder root hypothesis: the full archetype
// catalog this engine is meant to run against is out of scope here, so
// predict/watch vote to reveal the first hidden villager in the snapshot.
// This is enough to exercise engine.Evaluate end to end against real,
// user-supplied game states.
func buildRoot(gs *gamestate.StaticGameState) hypotheses.ConstantBuilder {
	for _, idx := range gs.Villagers() {
		if gs.Villager(idx).State == gamestate.StateHidden {
			act := action.NewTryReveal(idx)
			return hypotheses.ConstantBuilder{
				Label:  "reveal-first-hidden",
				Result: fitness.Conclusive(fitness.New(0.75, &act)),
			}
		}
	}
	return hypotheses.ConstantBuilder{
		Label:  "no-hidden-villagers",
		Result: fitness.Conclusive(fitness.Impossible()),
	}
}

// serveRoot is the root serve binds at startup. Unlike predict/watch,
// which rebuild their root from each loaded snapshot, serve constructs
// one HypothesisBuilder up front and reuses it across every /v1/predict
// request: the per-request game state flows through engine.Evaluate's gs
// argument, not through the builder itself.
func serveRoot() hypotheses.ConstantBuilder {
	act := action.NewTryReveal(gamestate.VillagerIndex(0))
	return hypotheses.ConstantBuilder{
		Label:  "reveal-seat-zero",
		Result: fitness.Conclusive(fitness.New(0.75, &act)),
	}
}
