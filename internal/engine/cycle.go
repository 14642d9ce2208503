// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"encoding/json"
	"fmt"
)

// Cycle is an ordered list of hypothesis references describing a dependency
// cycle, rooted at the hypothesis whose re-entry closed the loop.
type Cycle struct {
	orderFromRoot []HypothesisReference
}

// NewCycle builds a Cycle from an explicit order.
func NewCycle(orderFromRoot []HypothesisReference) Cycle {
	return Cycle{orderFromRoot: append([]HypothesisReference(nil), orderFromRoot...)}
}

// OrderFromRoot returns the cycle's references, root first.
func (c Cycle) OrderFromRoot() []HypothesisReference {
	return append([]HypothesisReference(nil), c.orderFromRoot...)
}

// Len returns the number of hypotheses in the cycle.
func (c Cycle) Len() int { return len(c.orderFromRoot) }

// Clone returns an independent copy of c.
func (c Cycle) Clone() Cycle {
	return NewCycle(c.orderFromRoot)
}

func (c Cycle) String() string {
	return fmt.Sprintf("%v", c.orderFromRoot)
}

// MarshalJSON renders the cycle as its ordered reference list, so it
// displays sensibly in debug-stream breakpoint payloads.
func (c Cycle) MarshalJSON() ([]byte, error) {
	if c.orderFromRoot == nil {
		return json.Marshal([]HypothesisReference{})
	}
	return json.Marshal(c.orderFromRoot)
}

func indexOf(refs []HypothesisReference, ref HypothesisReference) int {
	for i, r := range refs {
		if r == ref {
			return i
		}
	}
	return -1
}

// DeriveFromFullCycle narrows a full reference walk down to the minimal
// cycle rooted at attemptedReferenceVisit.
//
// fullCycle is every hypothesis reference visited, in order, from the root
// of the current outer-evaluation walk down to the re-entry that triggered
// cycle detection. referenceStack is the chain of references currently
// held exclusively (the active recursive call chain).
//
// The walk has two parts. First, referenceStack is replayed into the
// result up to (but excluding) attemptedReferenceVisit - this is the
// portion of the live call chain that precedes the cycle's root. Second,
// fullCycle is replayed starting at attemptedReferenceVisit, appending
// each reference to the result until one is encountered that the result
// already contains; the result is then trimmed so it starts at that
// repeated reference, which is the closing edge of the cycle. If that
// replay runs off the end of fullCycle without ever re-encountering
// anything (the live stack rejoins the loop somewhere past its root), the
// replay resumes from the result's last accumulated reference and repeats
// the same trim rule against the rest of fullCycle.
func DeriveFromFullCycle(fullCycle Cycle, referenceStack []HypothesisReference, attemptedReferenceVisit HypothesisReference) Cycle {
	full := fullCycle.orderFromRoot

	var order []HypothesisReference
	for _, visited := range referenceStack {
		if visited == attemptedReferenceVisit {
			break
		}
		order = append(order, visited)
	}

	adding := false
	foundEnd := false
	for _, ref := range full {
		if adding {
			if idx := indexOf(order, ref); idx >= 0 {
				order = order[idx:]
				foundEnd = true
				break
			}
			order = append(order, ref)
		} else if ref == attemptedReferenceVisit {
			order = append(order, ref)
			adding = true
		}
	}

	if !foundEnd {
		if len(order) == 0 {
			panic(fmt.Sprintf("engine: could not derive cycle from full cycle %s starting at %s (stack %v)", fullCycle, attemptedReferenceVisit, referenceStack))
		}
		afterStartBeforeEnd := order[len(order)-1]
		adding = false
		for _, ref := range full {
			if ref == afterStartBeforeEnd {
				adding = true
			} else if adding {
				if idx := indexOf(order, ref); idx >= 0 {
					order = order[idx:]
					foundEnd = true
					break
				}
				order = append(order, ref)
			}
		}
		if !foundEnd {
			panic(fmt.Sprintf("engine: could not derive cycle from full cycle %s starting at %s (stack %v)", fullCycle, attemptedReferenceVisit, referenceStack))
		}
	}

	return NewCycle(order)
}
