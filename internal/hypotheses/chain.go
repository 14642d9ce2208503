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

// ChainBuilder builds a ChainHypothesis: a single-dependency hop that
// sub-evaluates Child and ANDs the result with a certain vote for Action.
// This is the one-deep chain referenced in SPEC_FULL.md's scenario walk:
// the root depends on exactly one child and contributes nothing of its own
// beyond that certain vote for Action.
type ChainBuilder struct {
	engine.HypothesisBuilderBase
	Label  string
	Child  engine.HypothesisBuilder
	Action action.Action
}

func (b ChainBuilder) Build(gs gamestate.GameState, r *engine.Registrar) engine.Hypothesis {
	childRef := r.Register(b.Child)
	return &ChainHypothesis{label: b.Label, child: childRef, action: b.Action}
}

func (b ChainBuilder) Equal(other engine.HypothesisBuilder) bool {
	o, ok := other.(ChainBuilder)
	if !ok {
		return false
	}
	return o.Label == b.Label && o.Action == b.Action && o.Child.Equal(b.Child)
}

var _ engine.HypothesisBuilder = ChainBuilder{}

// ChainHypothesis depends on exactly one sub-hypothesis and combines its
// result with a certain action vote of its own via AND.
type ChainHypothesis struct {
	engine.HypothesisBase
	label  string
	child  engine.HypothesisReference
	action action.Action
}

func (h *ChainHypothesis) Describe() string { return h.label }

func (h *ChainHypothesis) Wip() bool { return false }

func (h *ChainHypothesis) Evaluate(log *logging.Logger, depth int, gs gamestate.GameState, repo engine.HypothesisRepository) engine.HypothesisResult {
	repo.RequireSubEvaluation(fitness.New(fitness.Unknown, nil))
	childResult := repo.SubEvaluate(h.child)
	own := fitness.Certainty(&h.action)
	combined := fitness.AndResult(childResult, fitness.Conclusive(own))
	return repo.Finalize(combined)
}

var _ engine.Hypothesis = (*ChainHypothesis)(nil)
