// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package fitness

import (
	"math"
	"testing"

	"github.com/duskline/demonbluff-engine/internal/action"
	"github.com/duskline/demonbluff-engine/internal/gamestate"
)

const epsilon = 1e-9

func closeEnough(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func sampleAction() action.Action {
	return action.NewTryReveal(gamestate.VillagerIndex(3))
}

func TestNotIsInvolution(t *testing.T) {
	r := Conclusive(New(0.37, nil))
	twice := NotResult(NotResult(r))
	if !closeEnough(twice.Value().Fitness(), r.Value().Fitness()) {
		t.Fatalf("not(not(r)) fitness = %v, want %v", twice.Value().Fitness(), r.Value().Fitness())
	}
	if twice.IsConclusive() != r.IsConclusive() {
		t.Fatalf("not(not(r)) conclusive = %v, want %v", twice.IsConclusive(), r.IsConclusive())
	}
}

func TestAndWithCertaintyIsIdentity(t *testing.T) {
	act := sampleAction()
	r := Conclusive(New(0.6, &act))
	certain := Conclusive(Certainty(nil))
	combined := AndResult(r, certain)
	if !closeEnough(combined.Value().Fitness(), r.Value().Fitness()) {
		t.Fatalf("and(r, certainty()) fitness = %v, want %v", combined.Value().Fitness(), r.Value().Fitness())
	}
	if combined.Value().Actions().Len() != r.Value().Actions().Len() {
		t.Fatalf("and(r, certainty()) dropped actions: got %d, want %d",
			combined.Value().Actions().Len(), r.Value().Actions().Len())
	}
}

func TestOrWithImpossibleIsIdentity(t *testing.T) {
	act := sampleAction()
	r := Conclusive(New(0.42, &act))
	impossible := Conclusive(Impossible())
	combined := OrResult(r, impossible)
	if !closeEnough(combined.Value().Fitness(), r.Value().Fitness()) {
		t.Fatalf("or(r, impossible()) fitness = %v, want %v", combined.Value().Fitness(), r.Value().Fitness())
	}
}

func TestAndIsCommutative(t *testing.T) {
	a := Conclusive(New(0.3, nil))
	b := Conclusive(New(0.8, nil))
	ab := AndResult(a, b)
	ba := AndResult(b, a)
	if !closeEnough(ab.Value().Fitness(), ba.Value().Fitness()) {
		t.Fatalf("and not commutative: %v vs %v", ab.Value().Fitness(), ba.Value().Fitness())
	}
}

func TestAndIsAssociative(t *testing.T) {
	a := Conclusive(New(0.5, nil))
	b := Conclusive(New(0.2, nil))
	c := Conclusive(New(0.9, nil))
	left := AndResult(AndResult(a, b), c)
	right := AndResult(a, AndResult(b, c))
	if !closeEnough(left.Value().Fitness(), right.Value().Fitness()) {
		t.Fatalf("and not associative: %v vs %v", left.Value().Fitness(), right.Value().Fitness())
	}
}

func TestOrIsCommutative(t *testing.T) {
	a := Conclusive(New(0.3, nil))
	b := Conclusive(New(0.8, nil))
	ab := OrResult(a, b)
	ba := OrResult(b, a)
	if !closeEnough(ab.Value().Fitness(), ba.Value().Fitness()) {
		t.Fatalf("or not commutative: %v vs %v", ab.Value().Fitness(), ba.Value().Fitness())
	}
}

func TestPendingPropagatesThroughCombinators(t *testing.T) {
	pending := Pending(New(0.5, nil))
	conclusive := Conclusive(New(0.5, nil))

	if AndResult(pending, conclusive).IsConclusive() {
		t.Fatal("and(pending, conclusive) should stay pending")
	}
	if OrResult(pending, conclusive).IsConclusive() {
		t.Fatal("or(pending, conclusive) should stay pending")
	}
	if NotResult(pending).IsConclusive() {
		t.Fatal("not(pending) should stay pending")
	}
}

func TestFittestPicksGreaterFitnessTieFavorsLHS(t *testing.T) {
	low := Conclusive(New(0.2, nil))
	high := Conclusive(New(0.9, nil))
	tieA := Conclusive(New(0.5, nil))
	tieB := Conclusive(New(0.5, nil))

	if got := Fittest(low, high); !closeEnough(got.Value().Fitness(), 0.9) {
		t.Fatalf("fittest(low, high) = %v, want 0.9", got.Value().Fitness())
	}
	if got := Fittest(tieA, tieB); got.Value().Fitness() != tieA.Value().Fitness() {
		t.Fatalf("fittest tie should favor lhs")
	}
}

func TestFitnessBoundedByConstruction(t *testing.T) {
	cases := []And{Impossible(), Certainty(nil), New(Unknown, nil)}
	for _, c := range cases {
		if c.Fitness() < 0 || c.Fitness() > 1 {
			t.Fatalf("fitness %v out of [0,1]", c.Fitness())
		}
	}
}

func TestSumOfEmptyIsConclusiveImpossible(t *testing.T) {
	got := Sum(nil)
	if !got.IsConclusive() {
		t.Fatal("sum([]) should be conclusive")
	}
	if got.Value().Fitness() != 0.0 {
		t.Fatalf("sum([]) fitness = %v, want 0", got.Value().Fitness())
	}
}

func TestAverageOfEmptyReportsFalse(t *testing.T) {
	_, ok := Average(nil)
	if ok {
		t.Fatal("average([]) should report false")
	}
}
