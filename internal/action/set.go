// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package action

import "sort"

// Set is an unordered collection of actions. Go map iteration order is
// randomized, so callers that need a deterministic order (display, tests)
// must use Slice rather than ranging over the set directly.
type Set map[Action]struct{}

// NewSet constructs an empty action set.
func NewSet() Set {
	return make(Set)
}

// Add inserts a into the set.
func (s Set) Add(a Action) {
	s[a] = struct{}{}
}

// AddAll inserts every action in other into s.
func (s Set) AddAll(other Set) {
	for a := range other {
		s[a] = struct{}{}
	}
}

// Contains reports whether a is in the set.
func (s Set) Contains(a Action) bool {
	_, ok := s[a]
	return ok
}

// Len returns the number of actions in the set.
func (s Set) Len() int {
	return len(s)
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for a := range s {
		out[a] = struct{}{}
	}
	return out
}

// Slice returns the set's members in a deterministic order: reveal/execute
// actions before abilities, then by subject index, then by target key.
func (s Set) Slice() []Action {
	out := make([]Action, 0, len(s))
	for a := range s {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].kind != out[j].kind {
			return out[i].kind < out[j].kind
		}
		if out[i].subject != out[j].subject {
			return out[i].subject < out[j].subject
		}
		return out[i].targetKey < out[j].targetKey
	})
	return out
}
