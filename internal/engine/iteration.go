// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import "github.com/duskline/demonbluff-engine/internal/fitness"

// VisitState tracks whether a hypothesis has been visited yet in the
// current outer iteration of the evaluation loop.
type VisitState int

const (
	Unvisited VisitState = iota
	Visiting
	Visited
)

func (s VisitState) String() string {
	switch s {
	case Unvisited:
		return "Unvisited"
	case Visiting:
		return "Visiting"
	case Visited:
		return "Visited"
	default:
		return "Unknown"
	}
}

// IterationData is one hypothesis's bookkeeping for a single outer
// iteration: its visit state, the result computed this iteration (if any),
// and the full reference-stack walks recorded whenever a detected re-entry
// produced a cycle that this hypothesis is a member of (retraced through
// DeriveFromFullCycle when a later call reaches this hypothesis after it
// is already Visited).
type IterationData struct {
	State      VisitState
	Result     *fitness.Result
	FullCycles []Cycle
}

// newIterationData returns a fresh, unvisited entry for the start of an
// outer iteration.
func newIterationData() IterationData {
	return IterationData{State: Unvisited}
}

// CurrentIterationData is the evaluator's working state for the outer
// iteration in progress: one IterationData per registered hypothesis,
// indexed by HypothesisReference.
type CurrentIterationData struct {
	entries []IterationData
}

// NewCurrentIterationData allocates iteration bookkeeping for hypothesisCount
// hypotheses, all starting Unvisited.
func NewCurrentIterationData(hypothesisCount int) *CurrentIterationData {
	entries := make([]IterationData, hypothesisCount)
	for i := range entries {
		entries[i] = newIterationData()
	}
	return &CurrentIterationData{entries: entries}
}

// Reset returns every entry to Unvisited with no result, for the start of
// the next outer iteration. Recorded full cycles are cleared along with it:
// a cycle detected in one iteration may no longer exist once a dependency's
// fitness has moved.
func (d *CurrentIterationData) Reset() {
	for i := range d.entries {
		d.entries[i] = newIterationData()
	}
}

// Get returns the iteration entry for ref.
func (d *CurrentIterationData) Get(ref HypothesisReference) IterationData {
	return d.entries[ref]
}

// SetState updates ref's visit state.
func (d *CurrentIterationData) SetState(ref HypothesisReference, state VisitState) {
	d.entries[ref].State = state
}

// SetResult records ref's result for this iteration and marks it Visited.
func (d *CurrentIterationData) SetResult(ref HypothesisReference, result fitness.Result) {
	d.entries[ref].State = Visited
	d.entries[ref].Result = &result
}

// RecordFullCycle appends a full reference-stack walk observed when a
// re-entry detected a cycle that ref is a member of.
func (d *CurrentIterationData) RecordFullCycle(ref HypothesisReference, cycle Cycle) {
	d.entries[ref].FullCycles = append(d.entries[ref].FullCycles, cycle)
}

// Len returns the number of tracked hypotheses.
func (d *CurrentIterationData) Len() int { return len(d.entries) }
