// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package hypotheses provides a small set of demonstrative Hypothesis and
// HypothesisBuilder kinds that exercise every path through internal/engine:
// an immediate answer, a one-hop dependency chain, a pair that cycles off
// each other, and a pair that shares a desire neither side ever votes on.
// It is not a catalog of real Demon Bluff reasoning; the real catalog is
// out of scope for this repository (see SPEC_FULL.md).
package hypotheses

import "github.com/duskline/demonbluff-engine/internal/engine"

// NamedDesire is a Desire identified solely by a string name: two
// NamedDesires are Equal iff their names match.
type NamedDesire struct {
	engine.DesireBase
	Name string
}

func (d NamedDesire) Describe() string { return d.Name }

func (d NamedDesire) Equal(other engine.Desire) bool {
	o, ok := other.(NamedDesire)
	return ok && o.Name == d.Name
}

var _ engine.Desire = NamedDesire{}
