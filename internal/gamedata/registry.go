package gamedata

import (
	"errors"
	"math/rand"
)

// CreatureRegistry holds loaded creature definitions and provides spawning utilities.
type CreatureRegistry struct {
	creatures   []CreatureDef
	totalWeight int
}

// NewCreatureRegistry creates a registry from loaded creature definitions.
// Heroes never count towards the spawn weight.
func NewCreatureRegistry(creatures []CreatureDef) *CreatureRegistry {
	totalWeight := 0
	for _, c := range creatures {
		if !c.Hero {
			totalWeight += c.SpawnWeight
		}
	}
	return &CreatureRegistry{
		creatures:   creatures,
		totalWeight: totalWeight,
	}
}

// LoadCreatureRegistry loads and creates a registry from the embedded creatures.json.
func LoadCreatureRegistry() (*CreatureRegistry, error) {
	creatures, err := LoadCreatures()
	if err != nil {
		return nil, err
	}
	if len(creatures) == 0 {
		return nil, errors.New("no creatures loaded from creatures.json")
	}
	return NewCreatureRegistry(creatures), nil
}

// SpawnRandom selects a random non-hero creature using weighted probability.
// Creatures with higher spawnWeight are more likely to be selected.
func (r *CreatureRegistry) SpawnRandom(rng *rand.Rand) *CreatureDef {
	if r.totalWeight <= 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)

	cumulative := 0
	for i := range r.creatures {
		if r.creatures[i].Hero {
			continue
		}
		cumulative += r.creatures[i].SpawnWeight
		if roll < cumulative {
			return &r.creatures[i]
		}
	}

	return nil
}

// Heroes returns the player-controlled definitions in file order.
func (r *CreatureRegistry) Heroes() []*CreatureDef {
	var heroes []*CreatureDef
	for i := range r.creatures {
		if r.creatures[i].Hero {
			heroes = append(heroes, &r.creatures[i])
		}
	}
	return heroes
}

// byID returns the creature definition with the given ID, or nil.
func (r *CreatureRegistry) byID(id string) *CreatureDef {
	for i := range r.creatures {
		if r.creatures[i].ID == id {
			return &r.creatures[i]
		}
	}
	return nil
}
