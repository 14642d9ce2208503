// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"fmt"

	"github.com/duskline/demonbluff-engine/internal/fitness"
	"github.com/duskline/demonbluff-engine/internal/gamestate"
	"github.com/duskline/demonbluff-engine/pkg/logging"
)

// stackData is the evaluator's working state for a single outer iteration:
// the hypothesis table, the persistent desire tallies, this iteration's
// visit bookkeeping, the previous iteration's final results (for
// memoization and cycle-break fallback), the explicit reference stack that
// stands in for the recursive call chain, and the cycle set accumulated so
// far this iteration.
type stackData struct {
	graph    *Graph
	gs       gamestate.GameState
	log      *logging.Logger
	debugger Debugger
	runID    string
	iterNum  int

	desires  []*DesireData
	current  *CurrentIterationData
	previous *CurrentIterationData
	breakAt  *HypothesisReference

	stack  []HypothesisReference
	cycles []Cycle
}

func (s *stackData) emit(bp Breakpoint) {
	if s.debugger == nil {
		return
	}
	bp.RunID = s.runID
	bp.Iteration = s.iterNum
	s.debugger.Emit(bp)
}

// addCycle deduplicates c into the iteration's cycle set by structural
// equality of its ordered reference list.
func (s *stackData) addCycle(c Cycle) {
	for _, existing := range s.cycles {
		if cycleEqual(existing, c) {
			return
		}
	}
	s.cycles = append(s.cycles, c)
}

func cycleEqual(a, b Cycle) bool {
	ao, bo := a.OrderFromRoot(), b.OrderFromRoot()
	if len(ao) != len(bo) {
		return false
	}
	for i := range ao {
		if ao[i] != bo[i] {
			return false
		}
	}
	return true
}

// evaluateRoot drives the evaluator from the graph's root reference and
// returns its result for this iteration.
func (s *stackData) evaluateRoot() HypothesisResult {
	return s.subEvaluate(s.graph.Root)
}

// subEvaluate is the recursive heart of the evaluator (§4.3).
func (s *stackData) subEvaluate(ref HypothesisReference) HypothesisResult {
	// 1. Cycle-break check: if the caller (the node at the top of the active
	// stack, whose Evaluate call is already in progress) is the node the
	// controller chose to break, force ref - its in-cycle successor - to a
	// conclusive result using ref's own latest known value rather than
	// letting ref recurse back into the cycle. The caller itself is left to
	// keep running normally; only the successor it is calling into is
	// short-circuited.
	if s.breakAt != nil && len(s.stack) > 0 && *s.breakAt == s.stack[len(s.stack)-1] {
		entry := s.current.Get(ref)
		var value FitnessAndAction
		switch {
		case entry.Result != nil:
			value = entry.Result.Value()
		case s.previous != nil && s.previous.Get(ref).Result != nil:
			value = s.previous.Get(ref).Result.Value()
		default:
			panic(fmt.Sprintf("engine: cycle break forcing %s with no prior value to fall back on", ref))
		}
		full := s.fullCycleFromStack(ref)
		s.emit(Breakpoint{Kind: BreakpointBreakCycle, Hypothesis: ref, Cycle: full})
		result := fitness.Conclusive(value)
		s.current.SetResult(ref, result)
		return result
	}

	// 2. Previous-iteration conclusive results are permanent: reuse without
	// re-invoking the hypothesis (invariant 4, result promotion).
	if s.previous != nil {
		prevEntry := s.previous.Get(ref)
		if prevEntry.Result != nil && prevEntry.Result.IsConclusive() {
			s.current.SetResult(ref, *prevEntry.Result)
			return *prevEntry.Result
		}
	}

	entry := s.current.Get(ref)

	// 3. Already visited this iteration (Visited: finished via another path
	// through the graph). Retrace any cycles recorded under ref relative to
	// the current stack, then return the stored result unchanged.
	if entry.State == Visited {
		for _, full := range entry.FullCycles {
			s.addCycle(DeriveFromFullCycle(full, s.stack, ref))
		}
		return *entry.Result
	}

	// 5. Re-entry: ref is already Visiting, meaning it is on the active
	// stack right now and its exclusive borrow cannot be acquired again.
	if entry.State == Visiting {
		full := s.fullCycleFromStack(ref)
		minimal := DeriveFromFullCycle(full, s.stack, ref)
		s.emit(Breakpoint{Kind: BreakpointDetectCycle, Hypothesis: ref, Cycle: minimal})
		s.addCycle(minimal)
		for _, member := range minimal.OrderFromRoot() {
			s.current.RecordFullCycle(member, full)
		}
		if entry.Result == nil {
			panic(fmt.Sprintf("engine: %s re-entered before seeding an initial fitness", ref))
		}
		return *entry.Result
	}

	// 4. Fresh visit: acquire ref exclusively, push it, recurse, pop.
	s.current.SetState(ref, Visiting)
	s.stack = append(s.stack, ref)
	s.emit(Breakpoint{Kind: BreakpointEnterHypothesis, Hypothesis: ref})

	hyp := s.graph.Hypotheses[ref]
	repo := &hypothesisRepo{stack: s, self: ref}
	result := hyp.Evaluate(s.log, len(s.stack), s.gs, repo)

	if result.IsConclusive() {
		s.checkProducersVoted(ref)
	}

	s.stack = s.stack[:len(s.stack)-1]
	s.current.SetResult(ref, result)
	s.emit(Breakpoint{Kind: BreakpointExitHypothesis, Hypothesis: ref})
	return result
}

// checkProducersVoted enforces the producer-vote invariant: a hypothesis
// that declares a desire-producer slot (via RegisterDesireProducer when its
// builder is built) must have cast a vote through every slot it declared by
// the time it concludes. A producer still pending here is a catalog bug -
// it would otherwise silently mis-aggregate its desire's tally forever,
// since nothing else ever clears it.
func (s *stackData) checkProducersVoted(ref HypothesisReference) {
	for _, producer := range s.graph.Deps.DesireProducers(ref) {
		desireIdx := s.graph.producerDesireIndex(producer)
		for _, pending := range s.desires[desireIdx].Pending() {
			if pending == producer {
				panic(fmt.Sprintf("engine: %s concluded without voting on declared producer %s", ref, producer))
			}
		}
	}
}

// fullCycleFromStack builds the "full cycle" recording for a re-entry into
// ref: the entire active reference stack (from the outer root) with ref
// appended once more to make the repeat explicit. This is the form stored
// for later retracing via DeriveFromFullCycle, not the minimal cycle itself.
func (s *stackData) fullCycleFromStack(ref HypothesisReference) Cycle {
	full := append(append([]HypothesisReference(nil), s.stack...), ref)
	return NewCycle(full)
}

// hypothesisRepo implements HypothesisRepository for one hypothesis's
// Evaluate call.
type hypothesisRepo struct {
	stack *stackData
	self  HypothesisReference
}

func (r *hypothesisRepo) RequireSubEvaluation(initial FitnessAndAction) {
	entry := r.stack.current.Get(r.self)
	if entry.Result != nil {
		return
	}
	result := fitness.Pending(initial)
	r.stack.current.entries[r.self].Result = &result
}

func (r *hypothesisRepo) SubEvaluate(ref HypothesisReference) HypothesisResult {
	return r.stack.subEvaluate(ref)
}

func (r *hypothesisRepo) SetDesire(producer DesireProducerReference, wants bool) {
	desireIdx := r.stack.graph.producerDesireIndex(producer)
	r.stack.desires[desireIdx].SetDesire(producer, wants)
	r.stack.emit(Breakpoint{Kind: BreakpointDesireUpdate, Hypothesis: r.self, Desire: desireIdx})
}

func (r *hypothesisRepo) DesireResult(consumer DesireConsumerReference) HypothesisResult {
	desireIdx := r.stack.graph.consumerDesireIndex(consumer)
	r.stack.emit(Breakpoint{Kind: BreakpointDesireRead, Hypothesis: r.self, Desire: desireIdx})
	return r.stack.desires[desireIdx].Result()
}

func (r *hypothesisRepo) Finalize(result HypothesisResult) HypothesisResult {
	return result
}

var _ HypothesisRepository = (*hypothesisRepo)(nil)
