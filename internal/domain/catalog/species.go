package catalog

import (
	"fmt"
	"strings"
)

// DefaultSpecies es la plantilla que se usa cuando la especie pedida no existe.
const DefaultSpecies = "cat"

// Species es la plantilla de arranque de una mascota.
type Species struct {
	Key           string  `yaml:"key" json:"key"`
	MaxEnergy     float64 `yaml:"max_energy" json:"max_energy"`
	BaseHunger    float64 `yaml:"base_hunger" json:"base_hunger"`
	BaseHappiness float64 `yaml:"base_happiness" json:"base_happiness"`
	EvolveAt      int     `yaml:"evolve_at" json:"evolve_at"`
	Evolution     string  `yaml:"evolution" json:"evolution"`
}

func (s Species) validate() error {
	if s.Key == "" {
		return fmt.Errorf("species key required")
	}
	if s.MaxEnergy <= 0 {
		return fmt.Errorf("species %q: max_energy must be > 0", s.Key)
	}
	if s.BaseHunger < 0 || s.BaseHunger > 100 {
		return fmt.Errorf("species %q: base_hunger must be within [0,100]", s.Key)
	}
	if s.BaseHappiness < 0 || s.BaseHappiness > 100 {
		return fmt.Errorf("species %q: base_happiness must be within [0,100]", s.Key)
	}
	if s.EvolveAt < 1 {
		return fmt.Errorf("species %q: evolve_at must be >= 1", s.Key)
	}
	return nil
}

func defaultSpecies() map[string]Species {
	return map[string]Species{
		"cat": {
			Key:           "cat",
			MaxEnergy:     100,
			BaseHunger:    30,
			BaseHappiness: 60,
			EvolveAt:      5,
			Evolution:     "Big Cat",
		},
		"dog": {
			Key:           "dog",
			MaxEnergy:     120,
			BaseHunger:    35,
			BaseHappiness: 55,
			EvolveAt:      6,
			Evolution:     "Wolfhound",
		},
		"dragon": {
			Key:           "dragon",
			MaxEnergy:     200,
			BaseHunger:    20,
			BaseHappiness: 65,
			EvolveAt:      4,
			Evolution:     "Elder Dragon",
		},
	}
}

// NormalizeSpecies deja la clave en minúsculas y sin espacios.
func NormalizeSpecies(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
