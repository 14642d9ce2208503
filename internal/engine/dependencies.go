// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

// DependencyData is the frozen dependency graph produced by the Registrar's
// first (collection) pass: for every hypothesis, the other hypotheses it
// reads during evaluation, and the desires it produces into or consumes
// from. Edges are recorded the first time a builder is built and are
// immutable for the lifetime of the evaluation: dependency recording is
// disabled before the materialize pass starts, so dynamic dependencies
// discovered only during evaluation are never represented here.
type DependencyData struct {
	hypothesisDeps map[HypothesisReference][]HypothesisReference
	producesInto   map[HypothesisReference][]DesireProducerReference
	consumesFrom   map[HypothesisReference][]DesireConsumerReference
}

// NewDependencyData returns an empty dependency table.
func NewDependencyData() *DependencyData {
	return &DependencyData{
		hypothesisDeps: make(map[HypothesisReference][]HypothesisReference),
		producesInto:   make(map[HypothesisReference][]DesireProducerReference),
		consumesFrom:   make(map[HypothesisReference][]DesireConsumerReference),
	}
}

// AddHypothesisDependency records that from reads to, as observed during
// the collection pass.
func (d *DependencyData) AddHypothesisDependency(from, to HypothesisReference) {
	if indexOf(d.hypothesisDeps[from], to) >= 0 {
		return
	}
	d.hypothesisDeps[from] = append(d.hypothesisDeps[from], to)
}

// AddDesireProducer records that hyp casts a desire vote through producer.
func (d *DependencyData) AddDesireProducer(hyp HypothesisReference, producer DesireProducerReference) {
	d.producesInto[hyp] = append(d.producesInto[hyp], producer)
}

// AddDesireConsumer records that hyp reads a desire's aggregate through
// consumer.
func (d *DependencyData) AddDesireConsumer(hyp HypothesisReference, consumer DesireConsumerReference) {
	d.consumesFrom[hyp] = append(d.consumesFrom[hyp], consumer)
}

// HypothesisDependencies returns the hypotheses ref reads, in the order
// first observed.
func (d *DependencyData) HypothesisDependencies(ref HypothesisReference) []HypothesisReference {
	return append([]HypothesisReference(nil), d.hypothesisDeps[ref]...)
}

// DesireProducers returns the desire-producer slots ref casts votes
// through.
func (d *DependencyData) DesireProducers(ref HypothesisReference) []DesireProducerReference {
	return append([]DesireProducerReference(nil), d.producesInto[ref]...)
}

// DesireConsumers returns the desire-consumer slots ref reads from.
func (d *DependencyData) DesireConsumers(ref HypothesisReference) []DesireConsumerReference {
	return append([]DesireConsumerReference(nil), d.consumesFrom[ref]...)
}
