package catalog

import (
	"fmt"
	"strings"
)

// ItemKind define el efecto de un artículo de la tienda.
// @Enum food, toy, energy_drink
type ItemKind string

const (
	ItemFood        ItemKind = "food"
	ItemToy         ItemKind = "toy"
	ItemEnergyDrink ItemKind = "energy_drink"
)

func (k ItemKind) Valid() bool {
	switch k {
	case ItemFood, ItemToy, ItemEnergyDrink:
		return true
	default:
		return false
	}
}

// Item es un artículo ya resuelto: la clave se traduce a Kind una sola vez
// al cargar el catálogo, así Buy no ramifica sobre strings.
type Item struct {
	Key   string   `yaml:"key" json:"key"`
	Kind  ItemKind `yaml:"kind" json:"kind"`
	Price int      `yaml:"price" json:"price"`

	HungerRestore float64 `yaml:"hunger_restore" json:"hunger_restore,omitempty"`
	EnergyRestore float64 `yaml:"energy_restore" json:"energy_restore,omitempty"`
	EnergyCost    float64 `yaml:"energy_cost" json:"energy_cost,omitempty"`
	Happiness     float64 `yaml:"happiness" json:"happiness,omitempty"`
	XP            int     `yaml:"xp" json:"xp"`
}

// Label es la clave legible ("energy_drink" -> "energy drink").
func (it Item) Label() string {
	return strings.ReplaceAll(it.Key, "_", " ")
}

func (it Item) validate() error {
	if it.Key == "" {
		return fmt.Errorf("item key required")
	}
	if !it.Kind.Valid() {
		return fmt.Errorf("item %q: unknown kind %q", it.Key, it.Kind)
	}
	if it.Price < 0 {
		return fmt.Errorf("item %q: negative price", it.Key)
	}
	if it.HungerRestore < 0 || it.EnergyRestore < 0 || it.EnergyCost < 0 || it.Happiness < 0 || it.XP < 0 {
		return fmt.Errorf("item %q: effects must be >= 0", it.Key)
	}
	return nil
}

func defaultShop() map[string]Item {
	return map[string]Item{
		"food": {
			Key:           "food",
			Kind:          ItemFood,
			Price:         5,
			HungerRestore: 25,
			Happiness:     5,
			XP:            5,
		},
		"toy": {
			Key:        "toy",
			Kind:       ItemToy,
			Price:      10,
			EnergyCost: 5,
			Happiness:  20,
			XP:         10,
		},
		"energy_drink": {
			Key:           "energy_drink",
			Kind:          ItemEnergyDrink,
			Price:         8,
			EnergyRestore: 30,
			Happiness:     2,
			XP:            7,
		},
	}
}
