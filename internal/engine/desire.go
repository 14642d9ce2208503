// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import "github.com/duskline/demonbluff-engine/internal/fitness"

// DesireDefinition names a desire registered by the Registrar: its producer
// count (pre-counted from dependency data, one slot per hypothesis that
// declares it) and whether any hypothesis reads it.
type DesireDefinition struct {
	Name         string
	ProducerRefs []DesireProducerReference
	ConsumerRefs []DesireConsumerReference
}

// DesireData is one desire's running tally: every producer slot falls into
// exactly one of pending, desired, or undesired, and the tally persists
// across outer iterations — a producer's vote from a prior iteration stands
// until it votes again, so a cyclic graph's evidence accumulates instead of
// resetting every pass.
type DesireData struct {
	pending   []DesireProducerReference
	desired   []DesireProducerReference
	undesired []DesireProducerReference
}

// NewDesireData seeds a tally with every one of producers pending, per the
// partition invariant (pending ∪ desired ∪ undesired == producer set).
func NewDesireData(producers []DesireProducerReference) *DesireData {
	return &DesireData{pending: append([]DesireProducerReference(nil), producers...)}
}

func removeProducer(slice []DesireProducerReference, p DesireProducerReference) []DesireProducerReference {
	for i, r := range slice {
		if r == p {
			return append(slice[:i], slice[i+1:]...)
		}
	}
	return slice
}

func (d *DesireData) clear(p DesireProducerReference) {
	d.pending = removeProducer(d.pending, p)
	d.desired = removeProducer(d.desired, p)
	d.undesired = removeProducer(d.undesired, p)
}

// SetDesire moves p into desired (wants=true) or undesired (wants=false).
// Idempotent: calling it again with the same value is a no-op in effect,
// though it still re-clears and re-inserts p in its current bucket.
func (d *DesireData) SetDesire(p DesireProducerReference, wants bool) {
	d.clear(p)
	if wants {
		d.desired = append(d.desired, p)
	} else {
		d.undesired = append(d.undesired, p)
	}
}

// Pending, Desired, and Undesired return each bucket's producers.
func (d *DesireData) Pending() []DesireProducerReference {
	return append([]DesireProducerReference(nil), d.pending...)
}
func (d *DesireData) Desired() []DesireProducerReference {
	return append([]DesireProducerReference(nil), d.desired...)
}
func (d *DesireData) Undesired() []DesireProducerReference {
	return append([]DesireProducerReference(nil), d.undesired...)
}

// Result computes desire_result: fitness = |desired|/total, where total is
// the full producer count (pending+desired+undesired); 0 when desired is
// empty. Conclusive iff pending is empty.
func (d *DesireData) Result() fitness.Result {
	total := len(d.pending) + len(d.desired) + len(d.undesired)

	var f float64
	if total > 0 {
		f = float64(len(d.desired)) / float64(total)
	}

	value := fitness.New(f, nil)
	if len(d.pending) == 0 {
		return fitness.Conclusive(value)
	}
	return fitness.Pending(value)
}
