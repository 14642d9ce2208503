// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"fmt"

	"github.com/duskline/demonbluff-engine/internal/gamestate"
)

// Graph is the Registrar's frozen output: the hypothesis table, the
// dependency data recorded while building it, and the desire definitions
// discovered along the way.
type Graph struct {
	Root       HypothesisReference
	Hypotheses []Hypothesis
	Deps       *DependencyData
	DesireDefs []DesireDefinition

	producerDesire []int
	consumerDesire []int
}

// producerDesireIndex returns the desire index the given producer slot
// belongs to.
func (g *Graph) producerDesireIndex(p DesireProducerReference) int {
	return g.producerDesire[p]
}

// consumerDesireIndex returns the desire index the given consumer slot
// belongs to.
func (g *Graph) consumerDesireIndex(c DesireConsumerReference) int {
	return g.consumerDesire[c]
}

type desireSlot struct {
	desireIdx int
	hyp       HypothesisReference
}

// Registrar builds a hypothesis graph in two passes, both driven by
// BuildGraph. Pass one (collection) calls Build on each builder, so that
// Register and the desire-slot methods collect and deduplicate builders,
// desires, and dependency edges, walking the builder list as it grows.
// Pass two (materialize) replays the
// same builders with dependency recording disabled, so inner Register calls
// become idempotent lookups instead of graph mutations, and keeps the
// Hypothesis each builder produces.
type Registrar struct {
	gs gamestate.GameState

	builders  []HypothesisBuilder
	desires   []Desire
	producers []desireSlot
	consumers []desireSlot

	deps      *DependencyData
	recording bool
	cursor    HypothesisReference
}

// BuildGraph runs both Registrar passes over root and returns the
// materialized graph. A builder whose second Build call registers a
// builder, desire, or desire slot that the first pass never saw is a
// programmer error and panics (caught and rewrapped only by Evaluate);
// a second call that registers fewer references is not detected.
func BuildGraph(gs gamestate.GameState, root HypothesisBuilder) *Graph {
	r := &Registrar{
		gs:   gs,
		deps: NewDependencyData(),
	}
	r.builders = append(r.builders, root)

	r.recording = true
	for cursor := 0; cursor < len(r.builders); cursor++ {
		r.cursor = HypothesisReference(cursor)
		r.builders[cursor].Build(gs, r)
	}

	r.recording = false
	hyps := make([]Hypothesis, len(r.builders))
	for i, b := range r.builders {
		r.cursor = HypothesisReference(i)
		hyps[i] = b.Build(gs, r)
	}

	producerDesire := make([]int, len(r.producers))
	for i, slot := range r.producers {
		producerDesire[i] = slot.desireIdx
	}
	consumerDesire := make([]int, len(r.consumers))
	for i, slot := range r.consumers {
		consumerDesire[i] = slot.desireIdx
	}

	return &Graph{
		Root:           0,
		Hypotheses:     hyps,
		Deps:           r.deps,
		DesireDefs:     r.desireDefinitions(),
		producerDesire: producerDesire,
		consumerDesire: consumerDesire,
	}
}

// Register returns the reference for b, deduplicating by value equality
// against every builder already known. During pass one this may mint a new
// reference and always records a dependency edge from the builder currently
// being built. During pass two it is a read-only lookup: if b was not seen
// during pass one, the graph was unstable across passes and this panics.
func (r *Registrar) Register(b HypothesisBuilder) HypothesisReference {
	if idx := r.findBuilder(b); idx >= 0 {
		ref := HypothesisReference(idx)
		if r.recording {
			r.deps.AddHypothesisDependency(r.cursor, ref)
		}
		return ref
	}

	if !r.recording {
		panic(fmt.Sprintf("engine: registrar: builder %v registered during materialize that was never seen during collection", b))
	}

	r.builders = append(r.builders, b)
	ref := HypothesisReference(len(r.builders) - 1)
	r.deps.AddHypothesisDependency(r.cursor, ref)
	return ref
}

func (r *Registrar) findBuilder(b HypothesisBuilder) int {
	for i, existing := range r.builders {
		if existing.Equal(b) {
			return i
		}
	}
	return -1
}

func (r *Registrar) findOrAddDesire(d Desire) int {
	for i, existing := range r.desires {
		if existing.Equal(d) {
			return i
		}
	}
	if !r.recording {
		panic(fmt.Sprintf("engine: registrar: desire %v registered during materialize that was never seen during collection", d))
	}
	r.desires = append(r.desires, d)
	return len(r.desires) - 1
}

// RegisterDesireProducer returns the producer slot through which the
// hypothesis currently being built votes on d, minting one if this is the
// first time this hypothesis has declared itself a producer of d.
func (r *Registrar) RegisterDesireProducer(d Desire) DesireProducerReference {
	desireIdx := r.findOrAddDesire(d)
	for i, slot := range r.producers {
		if slot.desireIdx == desireIdx && slot.hyp == r.cursor {
			return DesireProducerReference(i)
		}
	}

	if !r.recording {
		panic(fmt.Sprintf("engine: registrar: desire producer for %v registered during materialize that was never seen during collection", d))
	}

	r.producers = append(r.producers, desireSlot{desireIdx: desireIdx, hyp: r.cursor})
	ref := DesireProducerReference(len(r.producers) - 1)
	r.deps.AddDesireProducer(r.cursor, ref)
	return ref
}

// RegisterDesireConsumer returns the consumer slot through which the
// hypothesis currently being built reads d's aggregate tally.
func (r *Registrar) RegisterDesireConsumer(d Desire) DesireConsumerReference {
	desireIdx := r.findOrAddDesire(d)
	for i, slot := range r.consumers {
		if slot.desireIdx == desireIdx && slot.hyp == r.cursor {
			return DesireConsumerReference(i)
		}
	}

	if !r.recording {
		panic(fmt.Sprintf("engine: registrar: desire consumer for %v registered during materialize that was never seen during collection", d))
	}

	r.consumers = append(r.consumers, desireSlot{desireIdx: desireIdx, hyp: r.cursor})
	ref := DesireConsumerReference(len(r.consumers) - 1)
	r.deps.AddDesireConsumer(r.cursor, ref)
	return ref
}

func (r *Registrar) desireDefinitions() []DesireDefinition {
	defs := make([]DesireDefinition, len(r.desires))
	for i, d := range r.desires {
		defs[i].Name = d.Describe()
	}
	for i, slot := range r.producers {
		defs[slot.desireIdx].ProducerRefs = append(defs[slot.desireIdx].ProducerRefs, DesireProducerReference(i))
	}
	for i, slot := range r.consumers {
		defs[slot.desireIdx].ConsumerRefs = append(defs[slot.desireIdx].ConsumerRefs, DesireConsumerReference(i))
	}
	return defs
}
