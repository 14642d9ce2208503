// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package engine implements the probabilistic hypothesis-graph inference
// engine: a fixpoint evaluator over a directed, potentially cyclic
// dependency graph of hypotheses and desires.
package engine

import (
	"encoding/json"
	"fmt"
)

// HypothesisReference is an opaque, Registrar-assigned index into the
// hypothesis table.
type HypothesisReference int

// String renders "H-00001", 1-based, zero-padded to 5 digits.
func (r HypothesisReference) String() string {
	return fmt.Sprintf("H-%05d", int(r)+1)
}

// MarshalJSON renders the same "H-00001" form String uses, so breakpoints
// sent over the debug websocket stream are human-readable without a
// client-side lookup table.
func (r HypothesisReference) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// DesireProducerReference is the slot through which a hypothesis votes
// (desires / does-not-desire / pending) on a desire.
type DesireProducerReference int

// String renders "D-00001", 1-based, zero-padded to 5 digits.
func (r DesireProducerReference) String() string {
	return fmt.Sprintf("D-%05d", int(r)+1)
}

// DesireConsumerReference is the slot through which a hypothesis reads the
// aggregated state of a desire.
type DesireConsumerReference int

// String renders "D-00001", 1-based, zero-padded to 5 digits.
func (r DesireConsumerReference) String() string {
	return fmt.Sprintf("D-%05d", int(r)+1)
}
