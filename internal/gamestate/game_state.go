// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package gamestate

import "fmt"

// VillagersMin and VillagersMax are the legal player-count bounds for a
// Demon Bluff game.
const (
	VillagersMin = 7
	VillagersMax = 9
)

// VillagerState is the visibility state of a seat.
type VillagerState int

const (
	StateHidden VillagerState = iota
	StateActive
	StateConfirmed
)

// VillagerInstance is a read-only view of one seat: its visibility state,
// its claimed archetype (if revealed), and its testimony expression (if any
// has been given).
//
// Testimony is narrowly typed as *Expression[fmt.Stringer]: the engine only
// needs a testimony expression to be displayable, not its full claim
// grammar.
type VillagerInstance struct {
	State      VillagerState
	Archetype  VillagerArchetype
	Testimony  *Expression[fmt.Stringer]
	HasActed   bool
	Dead       bool
	CantReveal bool
	CantKill   bool
}

// DrawStats summarizes how many of each alignment are present in the
// current game's deck / seating.
type DrawStats struct {
	Villagers int
	Outcasts  int
	Minions   int
	Demons    int
}

// GameState is the read-only view the inference engine consumes. No
// mutation, deck-drawing, or win-condition method is exposed here; those
// belong to the full gameplay engine and are out of scope for this
// repository.
type GameState interface {
	// Villagers returns every seat index at the table, in seating order.
	Villagers() []VillagerIndex
	// Villager returns the read-only instance at the given seat.
	Villager(VillagerIndex) VillagerInstance
	// TotalVillagers is the seat count (equivalently len(Villagers())).
	TotalVillagers() int
	// DrawStats summarizes deck composition by alignment.
	DrawStats() DrawStats
	// Deck returns the multiset of archetypes in play.
	Deck() []VillagerArchetype
	// Day returns the current day number (1-indexed).
	Day() int
	// NightActionsInPlay reports whether any seated archetype has a night
	// action this game (drives whether the night phase can matter at all).
	NightActionsInPlay() bool
}

// StaticGameState is an immutable snapshot implementation of GameState,
// built once from a loaded DTO (see dto.go) and never mutated again. It
// exists to exercise the engine end-to-end without depending on the full
// mutable gameplay engine.
type StaticGameState struct {
	villagers []VillagerIndex
	instances map[VillagerIndex]VillagerInstance
	deck      []VillagerArchetype
	day       int
}

// NewStaticGameState constructs a snapshot from the given seating (indexed
// by seat order) and deck.
func NewStaticGameState(instances []VillagerInstance, deck []VillagerArchetype, day int) *StaticGameState {
	s := &StaticGameState{
		instances: make(map[VillagerIndex]VillagerInstance, len(instances)),
		deck:      append([]VillagerArchetype(nil), deck...),
		day:       day,
	}
	for i, inst := range instances {
		idx := VillagerIndex(i)
		s.villagers = append(s.villagers, idx)
		s.instances[idx] = inst
	}
	return s
}

func (s *StaticGameState) Villagers() []VillagerIndex {
	return append([]VillagerIndex(nil), s.villagers...)
}

func (s *StaticGameState) Villager(idx VillagerIndex) VillagerInstance {
	return s.instances[idx]
}

func (s *StaticGameState) TotalVillagers() int {
	return len(s.villagers)
}

func (s *StaticGameState) DrawStats() DrawStats {
	var stats DrawStats
	for _, a := range s.deck {
		switch a.Category() {
		case CategoryGoodVillager:
			stats.Villagers++
		case CategoryOutcast:
			stats.Outcasts++
		case CategoryMinion:
			stats.Minions++
		case CategoryDemon:
			stats.Demons++
		}
	}
	return stats
}

func (s *StaticGameState) Deck() []VillagerArchetype {
	return append([]VillagerArchetype(nil), s.deck...)
}

func (s *StaticGameState) Day() int {
	return s.day
}

func (s *StaticGameState) NightActionsInPlay() bool {
	for _, a := range s.deck {
		if a.HasNightAction() {
			return true
		}
	}
	return false
}

var _ GameState = (*StaticGameState)(nil)
