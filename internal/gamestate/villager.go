// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package gamestate provides the read-only game-state view the inference
// engine consumes: villager indices and archetypes, draw statistics, deck
// composition, and day/night context. It does not implement game-state
// mutation, deck drawing, or win-condition resolution; those belong to the
// full gameplay engine, which this package treats as out of scope.
package gamestate

import "fmt"

// VillagerIndex identifies a seat at the table. It is zero-based internally
// but displays 1-based, matching the original engine's convention.
type VillagerIndex int

// String renders "#N", 1-based.
func (v VillagerIndex) String() string {
	return fmt.Sprintf("#%d", int(v)+1)
}

// VillagerArchetype is a closed enumeration of every concrete role in the
// deck: good villagers, outcasts, minions, and demons.
type VillagerArchetype int

const (
	// Good villagers.
	Alchemist VillagerArchetype = iota
	Architect
	Baker
	Bard
	Bishop
	Confessor
	Dreamer
	Druid
	Empress
	Enlightened
	FortuneTeller
	Gemcrafter
	Hunter
	Jester
	Judge
	Knight
	Knitter
	Lover
	Medium
	Oracle
	Poet
	Scout
	Slayer
	Witness

	// Outcasts.
	Drunk
	Wretch
	Bombardier
	Doppelganger
	PlagueDoctor

	// Minions. MinionRole is the "Minion" named-role variant, renamed to
	// avoid colliding with the Minion archetype category.
	Counsellor
	Witch
	MinionRole
	Poisoner
	Twinion
	Shaman
	Puppeteer
	Puppet

	// Demons.
	Baa
	Pooka
	Lilis
)

// ArchetypeCategory groups archetypes into the four broad alignments.
type ArchetypeCategory int

const (
	CategoryGoodVillager ArchetypeCategory = iota
	CategoryOutcast
	CategoryMinion
	CategoryDemon
)

var archetypeNames = map[VillagerArchetype]string{
	Alchemist: "Alchemist", Architect: "Architect", Baker: "Baker", Bard: "Bard",
	Bishop: "Bishop", Confessor: "Confessor", Dreamer: "Dreamer", Druid: "Druid",
	Empress: "Empress", Enlightened: "Enlightened", FortuneTeller: "FortuneTeller",
	Gemcrafter: "Gemcrafter", Hunter: "Hunter", Jester: "Jester", Judge: "Judge",
	Knight: "Knight", Knitter: "Knitter", Lover: "Lover", Medium: "Medium",
	Oracle: "Oracle", Poet: "Poet", Scout: "Scout", Slayer: "Slayer", Witness: "Witness",
	Drunk: "Drunk", Wretch: "Wretch", Bombardier: "Bombardier",
	Doppelganger: "Doppelganger", PlagueDoctor: "PlagueDoctor",
	Counsellor: "Counsellor", Witch: "Witch", MinionRole: "Minion",
	Poisoner: "Poisoner", Twinion: "Twinion", Shaman: "Shaman",
	Puppeteer: "Puppeteer", Puppet: "Puppet",
	Baa: "Baa", Pooka: "Pooka", Lilis: "Lilis",
}

// String renders the archetype's role name.
func (a VillagerArchetype) String() string {
	if name, ok := archetypeNames[a]; ok {
		return name
	}
	return "Unknown"
}

var archetypeCategory = func() map[VillagerArchetype]ArchetypeCategory {
	m := map[VillagerArchetype]ArchetypeCategory{}
	for _, a := range []VillagerArchetype{
		Alchemist, Architect, Baker, Bard, Bishop, Confessor, Dreamer, Druid,
		Empress, Enlightened, FortuneTeller, Gemcrafter, Hunter, Jester, Judge,
		Knight, Knitter, Lover, Medium, Oracle, Poet, Scout, Slayer, Witness,
	} {
		m[a] = CategoryGoodVillager
	}
	for _, a := range []VillagerArchetype{Drunk, Wretch, Bombardier, Doppelganger, PlagueDoctor} {
		m[a] = CategoryOutcast
	}
	for _, a := range []VillagerArchetype{Counsellor, Witch, MinionRole, Poisoner, Twinion, Shaman, Puppeteer, Puppet} {
		m[a] = CategoryMinion
	}
	for _, a := range []VillagerArchetype{Baa, Pooka, Lilis} {
		m[a] = CategoryDemon
	}
	return m
}()

// Category returns which of the four alignments this archetype belongs to.
func (a VillagerArchetype) Category() ArchetypeCategory {
	return archetypeCategory[a]
}

// IsEvil reports whether the archetype plays for the demon team: all
// minions and demons are evil, all good villagers and outcasts are not.
func (a VillagerArchetype) IsEvil() bool {
	switch a.Category() {
	case CategoryMinion, CategoryDemon:
		return true
	default:
		return false
	}
}

// AppearsEvil reports whether the archetype reads as evil under
// investigative abilities: true for Wretch (despite not being evil) and
// for every genuinely evil archetype.
func (a VillagerArchetype) AppearsEvil() bool {
	return a == Wretch || a.IsEvil()
}

var liesSet = setOf(
	Drunk,
	Counsellor, Witch, MinionRole, Poisoner, Twinion, Shaman, Puppeteer,
	Baa, Pooka, Lilis,
)

// Lies reports whether the archetype's testimony cannot be trusted at face
// value (drunk unreliability, or evil deception). Puppet does not lie: it
// testifies honestly despite being a minion.
func (a VillagerArchetype) Lies() bool {
	return liesSet[a]
}

var disguisesSet = setOf(
	Drunk,
	Counsellor, Witch, MinionRole, Poisoner, Twinion, Shaman, Puppeteer, Puppet,
	Baa, Pooka, Lilis,
)

// Disguises reports whether the archetype can present as a different role
// (Drunk believing itself a villager role, any evil archetype disguising).
func (a VillagerArchetype) Disguises() bool {
	return disguisesSet[a]
}

// StartsCorrupted reports whether the archetype enters play already
// corrupted. Only the Drunk does.
func (a VillagerArchetype) StartsCorrupted() bool {
	return a == Drunk
}

// CanBeCorrupted reports whether the archetype is a valid corruption
// target. Demons and minions cannot be corrupted (they are already evil);
// Wretch and Bombardier cannot be corrupted; every other good villager and
// the Drunk can.
//
// TODO: whether Doppelganger and PlagueDoctor can be corrupted is an open
// question in the original engine (unresolved there too); both are treated
// as not corruptible until that is settled.
func (a VillagerArchetype) CanBeCorrupted() bool {
	switch a.Category() {
	case CategoryGoodVillager:
		return true
	case CategoryOutcast:
		return a == Drunk
	default:
		return false
	}
}

var nightActionSet = setOf(Lilis)

// HasNightAction reports whether the archetype acts during the night phase.
func (a VillagerArchetype) HasNightAction() bool {
	return nightActionSet[a]
}

var dayActionSet = setOf(Bard, Dreamer, Druid, FortuneTeller, Jester, Judge, Slayer, PlagueDoctor)

// HasAction reports whether the archetype has any player-invocable ability
// (day action; night actions are reported separately by HasNightAction).
func (a VillagerArchetype) HasAction() bool {
	return dayActionSet[a]
}

func setOf(archetypes ...VillagerArchetype) map[VillagerArchetype]bool {
	m := make(map[VillagerArchetype]bool, len(archetypes))
	for _, a := range archetypes {
		m[a] = true
	}
	return m
}
