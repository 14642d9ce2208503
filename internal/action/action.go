// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package action defines the player actions the inference engine can
// recommend: reveal a seat, execute a seat, or use an archetype's ability
// against a set of targets.
package action

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/duskline/demonbluff-engine/internal/gamestate"
)

// Kind distinguishes the three shapes of PlayerAction.
type Kind int

const (
	TryReveal Kind = iota
	TryExecute
	Ability
)

// Action is a candidate player move. It is a plain comparable struct
// (usable as a map key directly) rather than a hashable-trait pair: ability
// target sets are folded into a canonical, sorted, deduplicated string key
// at construction time, so structural equality of the struct already
// implies the target-set equality the original engine gets from a custom
// Hash/PartialEq impl.
type Action struct {
	kind      Kind
	subject   gamestate.VillagerIndex
	targetKey string
}

// NewTryReveal builds an action that reveals the given seat.
func NewTryReveal(v gamestate.VillagerIndex) Action {
	return Action{kind: TryReveal, subject: v}
}

// NewTryExecute builds an action that executes the given seat.
func NewTryExecute(v gamestate.VillagerIndex) Action {
	return Action{kind: TryExecute, subject: v}
}

// NewAbility builds an action that uses source's ability against targets.
// Target order does not affect equality or hashing: targets are sorted and
// deduplicated before the canonical key is computed.
func NewAbility(source gamestate.VillagerIndex, targets []gamestate.VillagerIndex) Action {
	sorted := append([]gamestate.VillagerIndex(nil), targets...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	parts := make([]string, 0, len(sorted))
	var last gamestate.VillagerIndex
	first := true
	for _, t := range sorted {
		if !first && t == last {
			continue
		}
		parts = append(parts, strconv.Itoa(int(t)))
		last = t
		first = false
	}

	return Action{kind: Ability, subject: source, targetKey: strings.Join(parts, ",")}
}

// Kind returns which shape of action this is.
func (a Action) Kind() Kind { return a.kind }

// Subject returns the reveal/execute seat, or the ability source.
func (a Action) Subject() gamestate.VillagerIndex { return a.subject }

// Targets parses the canonical target key back into villager indices, in
// ascending order. Only meaningful for Kind() == Ability.
func (a Action) Targets() []gamestate.VillagerIndex {
	if a.targetKey == "" {
		return nil
	}
	parts := strings.Split(a.targetKey, ",")
	out := make([]gamestate.VillagerIndex, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		out = append(out, gamestate.VillagerIndex(n))
	}
	return out
}

// String renders the action for diagnostics.
func (a Action) String() string {
	switch a.kind {
	case TryReveal:
		return fmt.Sprintf("TryReveal(%s)", a.subject)
	case TryExecute:
		return fmt.Sprintf("TryExecute(%s)", a.subject)
	case Ability:
		targets := a.Targets()
		rendered := make([]string, len(targets))
		for i, t := range targets {
			rendered[i] = t.String()
		}
		return fmt.Sprintf("Ability{source: %s, targets: [%s]}", a.subject, strings.Join(rendered, ", "))
	default:
		return "Unknown"
	}
}
