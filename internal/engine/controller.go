// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duskline/demonbluff-engine/internal/action"
	"github.com/duskline/demonbluff-engine/internal/gamestate"
	"github.com/duskline/demonbluff-engine/internal/telemetry"
	"github.com/duskline/demonbluff-engine/pkg/logging"
)

// defaultStabilityThreshold and defaultMaxIterations are the spec's
// defaults (§4.4, §11.2); Options overrides either by setting it non-zero.
const (
	defaultStabilityThreshold = 100
	defaultMaxIterations      = 10000
)

// Options configures one Evaluate call.
type Options struct {
	// StabilityThreshold caps how many consecutive still-changing
	// iterations are tolerated before the controller forces a cycle-break
	// or desire-collapse decision; an unchanged iteration forces that
	// decision at once. Zero uses the default of 100.
	StabilityThreshold int
	// MaxIterations stops Evaluate with ErrIterationBudgetExceeded once
	// exceeded. Zero uses the default of 10000.
	MaxIterations int
	// Debugger, if set, receives breakpoint events for this run. Must not
	// block (see Debugger).
	Debugger Debugger
	// Logger receives structured diagnostics. Defaults to logging.Default().
	Logger *logging.Logger
}

// Evaluate runs the convergence loop over root against gs until the root
// reaches a conclusive, non-empty action set, the context is cancelled, or
// the iteration budget is exhausted. A panic from inside the engine (a
// programmer fault in the hypothesis catalog) is recovered here and
// returned as *InvariantError rather than crashing the caller.
func Evaluate(ctx context.Context, root HypothesisBuilder, gs gamestate.GameState, opts Options) (result action.Set, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &InvariantError{Cause: r}
		}
	}()

	log := opts.Logger
	if log == nil {
		log = logging.Default()
	}
	stabilityThreshold := opts.StabilityThreshold
	if stabilityThreshold <= 0 {
		stabilityThreshold = defaultStabilityThreshold
	}
	maxIterations := opts.MaxIterations
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}

	runID := uuid.NewString()
	log = log.With("run_id", runID)

	graph := BuildGraph(gs, root)

	desires := make([]*DesireData, len(graph.DesireDefs))
	for i, def := range graph.DesireDefs {
		desires[i] = NewDesireData(def.ProducerRefs)
	}

	if opts.Debugger != nil {
		opts.Debugger.Emit(Breakpoint{Kind: BreakpointInitialize, RunID: runID})
		for i := range graph.Hypotheses {
			opts.Debugger.Emit(Breakpoint{Kind: BreakpointRegisterHypothesis, RunID: runID, Hypothesis: HypothesisReference(i)})
		}
		for i := range graph.DesireDefs {
			opts.Debugger.Emit(Breakpoint{Kind: BreakpointRegisterDesire, RunID: runID, Desire: i})
		}
	}

	var previous *CurrentIterationData
	var breakAt *HypothesisReference
	stability := 0

	for iter := 1; ; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if iter > maxIterations {
			return nil, ErrIterationBudgetExceeded
		}

		iterCtx, span := telemetry.Tracer().Start(ctx, "engine.iteration",
			trace.WithAttributes(attribute.Int("iteration", iter), attribute.Int("hypothesis_count", len(graph.Hypotheses))))
		_ = iterCtx

		if opts.Debugger != nil {
			opts.Debugger.Emit(Breakpoint{Kind: BreakpointIterationStart, RunID: runID, Iteration: iter})
		}

		sd := &stackData{
			graph:    graph,
			gs:       gs,
			log:      log,
			debugger: opts.Debugger,
			runID:    runID,
			iterNum:  iter,
			desires:  desires,
			current:  NewCurrentIterationData(len(graph.Hypotheses)),
			previous: previous,
			breakAt:  breakAt,
		}

		rootResult := sd.evaluateRoot()
		span.End()

		if rootResult.IsConclusive() {
			actions := rootResult.Value().Actions()
			if actions.Len() == 0 {
				return nil, ErrConclusiveNoAction
			}
			log.Info("evaluation concluded", "iteration", iter, "action_count", actions.Len())
			return actions, nil
		}

		stable := previous != nil && iterationResultsEqual(sd.current, previous)
		if !stable {
			stability++
			previous = sd.current
			breakAt = nil
			if stability < stabilityThreshold {
				continue
			}
		}
		stability = 0
		previous = sd.current

		if len(sd.cycles) > 0 {
			ref := chooseCycleBreak(sd.cycles, sd.current)
			breakAt = &ref
			log.Info("breaking cycle", "iteration", iter, "hypothesis", ref.String())
			if opts.Debugger != nil {
				opts.Debugger.Emit(Breakpoint{Kind: BreakpointBreakCycle, RunID: runID, Iteration: iter, Hypothesis: ref})
			}
			continue
		}

		desireIdx := chooseDesireCollapse(desires)
		if desireIdx < 0 {
			panic("engine: stable iteration is pending with no cycle and no pending desire to collapse")
		}
		for _, p := range desires[desireIdx].Pending() {
			desires[desireIdx].SetDesire(p, false)
		}
		breakAt = nil
		log.Info("collapsing desire", "iteration", iter, "desire", graph.DesireDefs[desireIdx].Name)
		if opts.Debugger != nil {
			opts.Debugger.Emit(Breakpoint{Kind: BreakpointCollapseDesire, RunID: runID, Iteration: iter, Desire: desireIdx})
		}
	}
}

// iterationResultsEqual reports whether every hypothesis's stored result is
// bit-identical between two iteration tables, the stability test the
// controller uses to detect a fixpoint.
func iterationResultsEqual(a, b *CurrentIterationData) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		ref := HypothesisReference(i)
		ea, eb := a.Get(ref), b.Get(ref)
		if (ea.Result == nil) != (eb.Result == nil) {
			return false
		}
		if ea.Result == nil {
			continue
		}
		if ea.Result.IsConclusive() != eb.Result.IsConclusive() {
			return false
		}
		if ea.Result.Value().Fitness() != eb.Result.Value().Fitness() {
			return false
		}
		if !actionsEqual(ea.Result.Value().Actions(), eb.Result.Value().Actions()) {
			return false
		}
	}
	return true
}

func actionsEqual(a, b action.Set) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, act := range a.Slice() {
		if !b.Contains(act) {
			return false
		}
	}
	return true
}

// chooseCycleBreak picks the (cycle, hypothesis) pair with the highest
// current fitness, tie-breaking toward the shorter cycle and, failing that,
// toward the first candidate encountered in the deterministic cycle-set
// and cycle-member order (invariant 13).
func chooseCycleBreak(cycles []Cycle, current *CurrentIterationData) HypothesisReference {
	var (
		best       HypothesisReference
		bestFit    float64
		bestLen    int
		haveBest   bool
	)

	for _, c := range cycles {
		for _, ref := range c.OrderFromRoot() {
			entry := current.Get(ref)
			if entry.Result == nil {
				continue
			}
			fit := entry.Result.Value().Fitness()
			switch {
			case !haveBest:
				best, bestFit, bestLen, haveBest = ref, fit, c.Len(), true
			case fit > bestFit:
				best, bestFit, bestLen = ref, fit, c.Len()
			case fit == bestFit && c.Len() < bestLen:
				best, bestLen = ref, c.Len()
			}
		}
	}

	if !haveBest {
		panic(fmt.Sprintf("engine: cycle set non-empty but no member had a current-iteration result: %v", cycles))
	}
	return best
}

// chooseDesireCollapse returns the index of the desire with the smallest
// non-empty pending set, or -1 if none has any pending producers.
func chooseDesireCollapse(desires []*DesireData) int {
	best := -1
	for i, d := range desires {
		pending := len(d.Pending())
		if pending == 0 {
			continue
		}
		if best < 0 || pending < len(desires[best].Pending()) {
			best = i
		}
	}
	return best
}
