// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"github.com/duskline/demonbluff-engine/internal/fitness"
	"github.com/duskline/demonbluff-engine/internal/gamestate"
	"github.com/duskline/demonbluff-engine/pkg/logging"
)

// HypothesisResult and FitnessAndAction are the engine-facing names for the
// fitness package's Pending/Conclusive envelope and probability-with-actions
// value; hypotheses never need to import internal/fitness directly.
type (
	HypothesisResult = fitness.Result
	FitnessAndAction = fitness.And
)

// HypothesisBase is embedded by every concrete Hypothesis implementation.
// It carries the unexported marker method that closes the Hypothesis
// interface to this module: a type in another package can still satisfy
// Hypothesis by embedding HypothesisBase (the marker method promotes with
// its original package intact), but cannot declare isHypothesis() itself.
type HypothesisBase struct{}

func (HypothesisBase) isHypothesis() {}

// Hypothesis is a node computing a probability, with associated action
// candidates, that some proposition holds in the current game state.
// Concrete kinds embed HypothesisBase.
type Hypothesis interface {
	// Describe renders a short, human-readable label for diagnostics.
	Describe() string
	// Wip reports whether this hypothesis is a known-incomplete stub; such
	// hypotheses are still evaluated but typically return Unimplemented.
	Wip() bool
	// Evaluate computes this hypothesis's result for the current iteration.
	// depth is the current recursion depth (for log indentation only).
	Evaluate(log *logging.Logger, depth int, gs gamestate.GameState, repo HypothesisRepository) HypothesisResult

	isHypothesis()
}

// HypothesisBuilderBase is embedded by every concrete HypothesisBuilder.
// See HypothesisBase for why embedding, not declaration, is required.
type HypothesisBuilderBase struct{}

func (HypothesisBuilderBase) isHypothesisBuilder() {}

// HypothesisBuilder is a value-equal, cloneable recipe that produces exactly
// one Hypothesis given a GameState and a Registrar. Equal builders are
// deduplicated by the Registrar into a single HypothesisReference: this is
// how shared sub-hypotheses collapse a tree of builders into a DAG, or,
// where the graph genuinely requires it, a cyclic graph.
type HypothesisBuilder interface {
	// Build constructs this builder's Hypothesis, registering any
	// sub-builders and desires it depends on through r.
	Build(gs gamestate.GameState, r *Registrar) Hypothesis
	// Equal reports structural equality with another builder. Builders must
	// not capture any mutable game-state reference in a way that would
	// break this, since deduplication and the two-registrar-pass contract
	// both depend on it.
	Equal(other HypothesisBuilder) bool

	isHypothesisBuilder()
}

// DesireBase is embedded by every concrete Desire. See HypothesisBase for
// why embedding, not declaration, is required.
type DesireBase struct{}

func (DesireBase) isDesire() {}

// Desire is a declarative wish (for example, "acquire testimony of villager
// N") that hypotheses coordinate through: producers vote on it, consumers
// read its aggregate.
type Desire interface {
	Describe() string
	Equal(other Desire) bool

	isDesire()
}

// HypothesisRepository is the capability a Hypothesis is given during
// Evaluate: the only way it may read sub-hypothesis results, read or write
// desire tallies, or submit its final result.
type HypothesisRepository interface {
	// RequireSubEvaluation seeds this hypothesis's own current-iteration
	// entry to a Pending result with the given initial fitness, unless it
	// is already set or already conclusive from a previous iteration.
	RequireSubEvaluation(initial FitnessAndAction)
	// SubEvaluate returns the result to use for a sub-hypothesis reference
	// this builder previously registered.
	SubEvaluate(ref HypothesisReference) HypothesisResult
	// SetDesire moves this hypothesis's vote on a desire it produces into
	// desired (wants=true) or undesired (wants=false).
	SetDesire(producer DesireProducerReference, wants bool)
	// DesireResult reads the aggregated tally of a desire this hypothesis
	// consumes.
	DesireResult(consumer DesireConsumerReference) HypothesisResult
	// Finalize wraps result into the envelope Evaluate must return. Calling
	// Evaluate without ending in Finalize is a programmer error.
	Finalize(result HypothesisResult) HypothesisResult
}
