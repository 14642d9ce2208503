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

// WaitingProducerBuilder builds a hypothesis that declares itself a
// producer of a named desire and then never votes on it: its own Evaluate
// always returns Pending. Paired with a WaitingConsumerBuilder that depends
// on nothing else, this is the desire-deadlock shape: the only way forward
// is for the controller to collapse the desire outright.
type WaitingProducerBuilder struct {
	engine.HypothesisBuilderBase
	Label      string
	DesireName string
}

func (b WaitingProducerBuilder) Build(gs gamestate.GameState, r *engine.Registrar) engine.Hypothesis {
	producerRef := r.RegisterDesireProducer(NamedDesire{Name: b.DesireName})
	return &WaitingProducerHypothesis{label: b.Label, producer: producerRef}
}

func (b WaitingProducerBuilder) Equal(o engine.HypothesisBuilder) bool {
	other, ok := o.(WaitingProducerBuilder)
	return ok && other.Label == b.Label && other.DesireName == b.DesireName
}

var _ engine.HypothesisBuilder = WaitingProducerBuilder{}

// WaitingProducerHypothesis holds a desire producer slot open and never
// resolves it; nothing in the graph ever calls SubEvaluate on it, so it is
// never even visited during an iteration, but its producer slot still
// counts toward the desire's pending tally from the moment the graph is
// built.
type WaitingProducerHypothesis struct {
	engine.HypothesisBase
	label    string
	producer engine.DesireProducerReference
}

func (h *WaitingProducerHypothesis) Describe() string { return h.label }

func (h *WaitingProducerHypothesis) Wip() bool { return false }

func (h *WaitingProducerHypothesis) Evaluate(log *logging.Logger, depth int, gs gamestate.GameState, repo engine.HypothesisRepository) engine.HypothesisResult {
	repo.RequireSubEvaluation(fitness.New(fitness.Unknown, nil))
	return repo.Finalize(fitness.Pending(fitness.New(fitness.Unknown, nil)))
}

var _ engine.Hypothesis = (*WaitingProducerHypothesis)(nil)

// WaitingConsumerBuilder builds the hypothesis that reads the shared
// desire's aggregate and ANDs it with a certain vote for Action. It also
// registers every producer in Producers so their Build runs and their
// producer slots are counted, even though this hypothesis never
// sub-evaluates them directly.
type WaitingConsumerBuilder struct {
	engine.HypothesisBuilderBase
	Label      string
	DesireName string
	Producers  []WaitingProducerBuilder
	Action     action.Action
}

func (b WaitingConsumerBuilder) Build(gs gamestate.GameState, r *engine.Registrar) engine.Hypothesis {
	consumerRef := r.RegisterDesireConsumer(NamedDesire{Name: b.DesireName})
	for _, p := range b.Producers {
		r.Register(p)
	}
	return &WaitingConsumerHypothesis{label: b.Label, consumer: consumerRef, action: b.Action}
}

func (b WaitingConsumerBuilder) Equal(o engine.HypothesisBuilder) bool {
	other, ok := o.(WaitingConsumerBuilder)
	if !ok {
		return false
	}
	if other.Label != b.Label || other.DesireName != b.DesireName || other.Action != b.Action {
		return false
	}
	if len(other.Producers) != len(b.Producers) {
		return false
	}
	for i := range b.Producers {
		if !other.Producers[i].Equal(b.Producers[i]) {
			return false
		}
	}
	return true
}

var _ engine.HypothesisBuilder = WaitingConsumerBuilder{}

// WaitingConsumerHypothesis reads the shared desire's tally every
// iteration and combines it with its own certain action vote.
type WaitingConsumerHypothesis struct {
	engine.HypothesisBase
	label    string
	consumer engine.DesireConsumerReference
	action   action.Action
}

func (h *WaitingConsumerHypothesis) Describe() string { return h.label }

func (h *WaitingConsumerHypothesis) Wip() bool { return false }

func (h *WaitingConsumerHypothesis) Evaluate(log *logging.Logger, depth int, gs gamestate.GameState, repo engine.HypothesisRepository) engine.HypothesisResult {
	repo.RequireSubEvaluation(fitness.New(fitness.Unknown, nil))
	desireResult := repo.DesireResult(h.consumer)
	own := fitness.Certainty(&h.action)
	combined := fitness.AndResult(desireResult, fitness.Conclusive(own))
	return repo.Finalize(combined)
}

var _ engine.Hypothesis = (*WaitingConsumerHypothesis)(nil)
