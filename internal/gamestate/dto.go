// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package gamestate

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// VillagerDTO is the wire representation of one seat, loaded from JSON by
// the CLI and HTTP layers.
type VillagerDTO struct {
	Archetype  string `json:"archetype" validate:"required"`
	State      string `json:"state" validate:"required,oneof=hidden active confirmed"`
	HasActed   bool   `json:"has_acted"`
	Dead       bool   `json:"dead"`
	CantReveal bool   `json:"cant_reveal"`
	CantKill   bool   `json:"cant_kill"`
}

// GameStateDTO is the wire representation of a full snapshot, loaded from
// JSON by the predict/serve/watch commands.
type GameStateDTO struct {
	Villagers []VillagerDTO `json:"villagers" validate:"required,min=7,max=9,dive"`
	Deck      []string      `json:"deck" validate:"required,min=1,dive"`
	Day       int           `json:"day" validate:"min=1"`
}

var dtoValidator = validator.New()

// archetypeByName is the inverse of VillagerArchetype.String, built once.
var archetypeByName = func() map[string]VillagerArchetype {
	m := map[string]VillagerArchetype{}
	for a := range archetypeNames {
		m[a.String()] = a
	}
	return m
}()

func parseArchetype(name string) (VillagerArchetype, error) {
	a, ok := archetypeByName[name]
	if !ok {
		return 0, fmt.Errorf("%w: unknown archetype %q", ErrInvalidSnapshot, name)
	}
	return a, nil
}

func parseState(name string) (VillagerState, error) {
	switch name {
	case "hidden":
		return StateHidden, nil
	case "active":
		return StateActive, nil
	case "confirmed":
		return StateConfirmed, nil
	default:
		return 0, fmt.Errorf("%w: unknown villager state %q", ErrInvalidSnapshot, name)
	}
}

// LoadSnapshot parses and validates a JSON game-state snapshot, returning
// an immutable StaticGameState.
func LoadSnapshot(data []byte) (*StaticGameState, error) {
	var dto GameStateDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	if err := dtoValidator.Struct(dto); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	instances := make([]VillagerInstance, 0, len(dto.Villagers))
	for i, v := range dto.Villagers {
		archetype, err := parseArchetype(v.Archetype)
		if err != nil {
			return nil, fmt.Errorf("villager %d: %w", i, err)
		}
		state, err := parseState(v.State)
		if err != nil {
			return nil, fmt.Errorf("villager %d: %w", i, err)
		}
		instances = append(instances, VillagerInstance{
			State:      state,
			Archetype:  archetype,
			HasActed:   v.HasActed,
			Dead:       v.Dead,
			CantReveal: v.CantReveal,
			CantKill:   v.CantKill,
		})
	}

	deck := make([]VillagerArchetype, 0, len(dto.Deck))
	for i, name := range dto.Deck {
		archetype, err := parseArchetype(name)
		if err != nil {
			return nil, fmt.Errorf("deck entry %d: %w", i, err)
		}
		deck = append(deck, archetype)
	}

	return NewStaticGameState(instances, deck, dto.Day), nil
}
