// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package hypotheses

import (
	"github.com/duskline/demonbluff-engine/internal/action"
	"github.com/duskline/demonbluff-engine/internal/engine"
	"github.com/duskline/demonbluff-engine/internal/fitness"
	"github.com/duskline/demonbluff-engine/internal/gamestate"
	"github.com/duskline/demonbluff-engine/pkg/logging"
)

// MutualSuspicionBuilder builds one half of a two-hypothesis cycle: each
// side sub-evaluates the other and ANDs that result with a certain vote for
// its own action. Building either half registers the other, so the
// Registrar discovers a genuine two-cycle with no designated leaf.
type MutualSuspicionBuilder struct {
	engine.HypothesisBuilderBase
	Label       string
	OtherLabel  string
	OwnAction   action.Action
	OtherAction action.Action
}

func (b MutualSuspicionBuilder) Build(gs gamestate.GameState, r *engine.Registrar) engine.Hypothesis {
	other := MutualSuspicionBuilder{
		Label:       b.OtherLabel,
		OtherLabel:  b.Label,
		OwnAction:   b.OtherAction,
		OtherAction: b.OwnAction,
	}
	otherRef := r.Register(other)
	return &MutualSuspicionHypothesis{label: b.Label, other: otherRef, ownAction: b.OwnAction}
}

func (b MutualSuspicionBuilder) Equal(o engine.HypothesisBuilder) bool {
	other, ok := o.(MutualSuspicionBuilder)
	if !ok {
		return false
	}
	return other.Label == b.Label && other.OtherLabel == b.OtherLabel &&
		other.OwnAction == b.OwnAction && other.OtherAction == b.OtherAction
}

var _ engine.HypothesisBuilder = MutualSuspicionBuilder{}

// MutualSuspicionHypothesis is one half of the cycle built above.
type MutualSuspicionHypothesis struct {
	engine.HypothesisBase
	label     string
	other     engine.HypothesisReference
	ownAction action.Action
}

func (h *MutualSuspicionHypothesis) Describe() string { return h.label }

func (h *MutualSuspicionHypothesis) Wip() bool { return false }

func (h *MutualSuspicionHypothesis) Evaluate(log *logging.Logger, depth int, gs gamestate.GameState, repo engine.HypothesisRepository) engine.HypothesisResult {
	repo.RequireSubEvaluation(fitness.New(fitness.Unknown, nil))
	otherResult := repo.SubEvaluate(h.other)
	own := fitness.Certainty(&h.ownAction)
	combined := fitness.AndResult(otherResult, fitness.Conclusive(own))
	return repo.Finalize(combined)
}

var _ engine.Hypothesis = (*MutualSuspicionHypothesis)(nil)
