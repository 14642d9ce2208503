// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"errors"
	"fmt"
)

// ErrConclusiveNoAction is returned when the root hypothesis reaches a
// Conclusive result with an empty action set: the engine is certain, but
// certain of nothing actionable.
var ErrConclusiveNoAction = errors.New("engine: root concluded with no action")

// ErrIterationBudgetExceeded is returned when the convergence loop exhausts
// its configured maximum iteration count without a conclusive root.
var ErrIterationBudgetExceeded = errors.New("engine: iteration budget exceeded")

// InvariantError wraps a recovered panic from inside Evaluate. Panics
// inside the engine indicate a programmer fault in the hypothesis catalog
// (a missing desire vote, an unregistered reference, a registrar pass that
// disagreed with itself) rather than bad input, so Evaluate is the single
// point where they are converted into a returned error instead of crashing
// the host process.
type InvariantError struct {
	Cause any
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("engine: invariant violated: %v", e.Cause)
}

// Unwrap supports errors.As/errors.Is when the panic value was itself an
// error.
func (e *InvariantError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}
