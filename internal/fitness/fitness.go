// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package fitness implements the probability-with-actions algebra that the
// inference engine uses to combine hypothesis results: a fitness in [0,1]
// tagged with the set of player actions that would achieve it, plus
// AND/OR/NOT/fittest/average/sum combinators over Pending/Conclusive results.
package fitness

import (
	"fmt"
	"strings"

	"github.com/duskline/demonbluff-engine/internal/action"
)

// Unknown is a neutral fitness value for hypotheses that have not yet formed
// an opinion but need to seed a pending result.
const Unknown = 0.5

// unimplementedFitness is a diagnostic-only sentinel. It must never be
// compared against to drive control flow (see design notes); only String
// special-cases it.
const unimplementedFitness = 0.000123456789

// And carries a probability in [0,1] together with the set of player
// actions that realize it.
type And struct {
	fitness float64
	actions action.Set
}

// New constructs a fitness value, optionally with a single associated action.
func New(fitness float64, act *action.Action) And {
	actions := action.NewSet()
	if act != nil {
		actions.Add(*act)
	}
	return And{fitness: fitness, actions: actions}
}

// NewWithActions constructs a fitness value from a pre-built action set.
func NewWithActions(fitness float64, actions action.Set) And {
	return And{fitness: fitness, actions: actions.Clone()}
}

// Impossible is the sentinel for a proposition that cannot hold.
func Impossible() And {
	return And{fitness: 0.0, actions: action.NewSet()}
}

// Unimplemented is the sentinel for a hypothesis with no real evaluation yet.
func Unimplemented() And {
	return And{fitness: unimplementedFitness, actions: action.NewSet()}
}

// Certainty is the sentinel for a proposition that definitely holds.
func Certainty(act *action.Action) And {
	return New(1.0, act)
}

// Invert returns 1-fitness with the action set unchanged.
func (f And) Invert() And {
	f.fitness = 1.0 - f.fitness
	return f
}

// IsCertain reports whether this fitness is exactly 1.0.
func (f And) IsCertain() bool {
	return f.fitness == 1.0
}

// Fitness returns the raw probability value.
func (f And) Fitness() float64 {
	return f.fitness
}

// Actions returns the action set backing this fitness.
func (f And) Actions() action.Set {
	return f.actions
}

// String renders the diagnostic display format used throughout this
// package: "Impossible", "UNIMPLEMENTED", or "{:.2}% - [action], ...".
func (f And) String() string {
	if f.fitness == 0.0 {
		return "Impossible"
	}
	if f.fitness == unimplementedFitness {
		return "UNIMPLEMENTED"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%.2f%%", f.fitness*100.0)

	acts := f.actions.Slice()
	if len(acts) > 0 {
		b.WriteString(" - ")
		for i, a := range acts {
			if i != 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "[%s]", a)
		}
	}
	return b.String()
}

// andFitness combines two fitness values under P(A and B) = P(A)*P(B),
// unioning their action sets.
func andFitness(lhs, rhs And) And {
	merged := action.NewSet()
	merged.AddAll(lhs.actions)
	merged.AddAll(rhs.actions)
	return And{fitness: lhs.fitness * rhs.fitness, actions: merged}
}

// orFitness combines two fitness values under P(A or B) = P(A)+P(B)-P(A)*P(B),
// unioning their action sets.
func orFitness(lhs, rhs And) And {
	merged := action.NewSet()
	merged.AddAll(lhs.actions)
	merged.AddAll(rhs.actions)
	return And{fitness: lhs.fitness + rhs.fitness - (lhs.fitness * rhs.fitness), actions: merged}
}

// Result is the Pending/Conclusive envelope that combinators operate over.
type Result struct {
	conclusive bool
	value      And
}

// Pending wraps a fitness as a non-terminal result.
func Pending(f And) Result { return Result{conclusive: false, value: f} }

// Conclusive wraps a fitness as a terminal result.
func Conclusive(f And) Result { return Result{conclusive: true, value: f} }

// IsConclusive reports whether this result is terminal.
func (r Result) IsConclusive() bool { return r.conclusive }

// Value returns the underlying fitness-and-action value.
func (r Result) Value() And { return r.value }

// Map applies f to the wrapped fitness, preserving Pending/Conclusive.
func (r Result) Map(f func(And) And) Result {
	r.value = f(r.value)
	return r
}

// String renders "Pending: ..." or "Conclusive: ...".
func (r Result) String() string {
	if r.conclusive {
		return "Conclusive: " + r.value.String()
	}
	return "Pending: " + r.value.String()
}

// AndResult combines two results with P(A and B) = P(A)*P(B). Conclusive only if
// both inputs are Conclusive.
func AndResult(lhs, rhs Result) Result {
	merged := andFitness(lhs.value, rhs.value)
	return Result{conclusive: lhs.conclusive && rhs.conclusive, value: merged}
}

// OrResult combines two results with P(A or B) = P(A)+P(B)-P(A)*P(B). Conclusive
// only if both inputs are Conclusive.
func OrResult(lhs, rhs Result) Result {
	merged := orFitness(lhs.value, rhs.value)
	return Result{conclusive: lhs.conclusive && rhs.conclusive, value: merged}
}

// NotResult inverts fitness, preserving Pending/Conclusive.
func NotResult(r Result) Result {
	return Result{conclusive: r.conclusive, value: r.value.Invert()}
}

// Fittest returns whichever result has the greater fitness, ties favoring
// lhs. Conclusive only if both inputs are Conclusive.
func Fittest(lhs, rhs Result) Result {
	winner := lhs.value
	if rhs.value.fitness > lhs.value.fitness {
		winner = rhs.value
	}
	return Result{conclusive: lhs.conclusive && rhs.conclusive, value: winner}
}

// Decide is Fittest used for top-level action selection between candidate
// outcomes; semantics are identical to Fittest.
func Decide(lhs, rhs Result) Result {
	return Fittest(lhs, rhs)
}

// Average returns the arithmetic mean of the fitnesses in results; actions
// are not combined. Conclusive only if every input is Conclusive. Returns
// false if results is empty.
func Average(results []Result) (Result, bool) {
	if len(results) == 0 {
		return Result{}, false
	}

	sum := 0.0
	allConclusive := true
	for _, r := range results {
		sum += r.value.fitness
		if !r.conclusive {
			allConclusive = false
		}
	}

	mean := New(sum/float64(len(results)), nil)
	return Result{conclusive: allConclusive, value: mean}, true
}

// Sum returns the sum of fitnesses in results (not clamped to [0,1], since
// this combinator serves count-style desire aggregation rather than
// probability composition), unioning every input's actions. Conclusive only
// if every input is Conclusive. An empty slice yields Conclusive(Impossible()).
func Sum(results []Result) Result {
	if len(results) == 0 {
		return Conclusive(Impossible())
	}

	total := 0.0
	actions := action.NewSet()
	allConclusive := true
	for _, r := range results {
		total += r.value.fitness
		actions.AddAll(r.value.actions)
		if !r.conclusive {
			allConclusive = false
		}
	}

	return Result{conclusive: allConclusive, value: And{fitness: total, actions: actions}}
}
