// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package hypotheses

import (
	"github.com/duskline/demonbluff-engine/internal/engine"
	"github.com/duskline/demonbluff-engine/internal/gamestate"
	"github.com/duskline/demonbluff-engine/pkg/logging"
)

// ConstantBuilder builds a ConstantHypothesis: a leaf that returns the same
// result on every call, regardless of game state or iteration. Two
// ConstantBuilders with the same Label and an identical result are Equal,
// so the Registrar collapses repeated references to the same constant into
// one hypothesis.
type ConstantBuilder struct {
	engine.HypothesisBuilderBase
	Label  string
	Result engine.HypothesisResult
}

func (b ConstantBuilder) Build(gs gamestate.GameState, r *engine.Registrar) engine.Hypothesis {
	return &ConstantHypothesis{label: b.Label, result: b.Result}
}

func (b ConstantBuilder) Equal(other engine.HypothesisBuilder) bool {
	o, ok := other.(ConstantBuilder)
	if !ok {
		return false
	}
	return o.Label == b.Label && o.Result.String() == b.Result.String()
}

var _ engine.HypothesisBuilder = ConstantBuilder{}

// ConstantHypothesis always finalizes to the result it was built with. It
// models the base case of the evaluator: a hypothesis that needs no
// sub-evaluation and is conclusive on its very first visit.
type ConstantHypothesis struct {
	engine.HypothesisBase
	label  string
	result engine.HypothesisResult
}

func (h *ConstantHypothesis) Describe() string { return h.label }

func (h *ConstantHypothesis) Wip() bool { return false }

func (h *ConstantHypothesis) Evaluate(log *logging.Logger, depth int, gs gamestate.GameState, repo engine.HypothesisRepository) engine.HypothesisResult {
	return repo.Finalize(h.result)
}

var _ engine.Hypothesis = (*ConstantHypothesis)(nil)
