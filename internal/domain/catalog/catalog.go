// Package catalog contiene los datos de configuración del juego:
// plantillas de especies, artículos de la tienda y reglas de simulación.
package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog es inmutable una vez construido; se comparte entre todas las mascotas.
type Catalog struct {
	species map[string]Species
	shop    map[string]Item
	rules   Rules
}

func Default() *Catalog {
	return &Catalog{
		species: defaultSpecies(),
		shop:    defaultShop(),
		rules:   DefaultRules(),
	}
}

// fileFormat es el layout del YAML. Las reglas se decodifican sobre los
// defaults, así que el archivo solo necesita los campos que cambia.
type fileFormat struct {
	Rules   Rules     `yaml:"rules"`
	Species []Species `yaml:"species"`
	Shop    []Item    `yaml:"shop"`
}

// Parse aplica un documento YAML sobre el catálogo por defecto.
// Especies e ítems se mezclan por clave (reemplazan o agregan).
func Parse(b []byte) (*Catalog, error) {
	c := Default()

	doc := fileFormat{Rules: c.rules}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := doc.Rules.validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	c.rules = doc.Rules

	for _, s := range doc.Species {
		s.Key = NormalizeSpecies(s.Key)
		if err := s.validate(); err != nil {
			return nil, err
		}
		c.species[s.Key] = s
	}
	if _, ok := c.species[DefaultSpecies]; !ok {
		return nil, fmt.Errorf("default species %q missing", DefaultSpecies)
	}

	for _, it := range doc.Shop {
		it.Key = strings.TrimSpace(it.Key)
		if err := it.validate(); err != nil {
			return nil, err
		}
		c.shop[it.Key] = it
	}

	return c, nil
}

// LoadFile lee el catálogo desde disco. Path vacío => defaults.
func LoadFile(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(b)
}

func (c *Catalog) Rules() Rules {
	return c.rules
}

// Species resuelve la plantilla; si la clave no existe devuelve la de DefaultSpecies.
func (c *Catalog) Species(key string) Species {
	if s, ok := c.species[NormalizeSpecies(key)]; ok {
		return s
	}
	return c.species[DefaultSpecies]
}

func (c *Catalog) Item(key string) (Item, bool) {
	it, ok := c.shop[strings.TrimSpace(key)]
	return it, ok
}

// ListSpecies devuelve las plantillas ordenadas por clave.
func (c *Catalog) ListSpecies() []Species {
	out := make([]Species, 0, len(c.species))
	for _, s := range c.species {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// ListItems devuelve los artículos ordenados por precio y luego por clave.
func (c *Catalog) ListItems() []Item {
	out := make([]Item, 0, len(c.shop))
	for _, it := range c.shop {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Price != out[j].Price {
			return out[i].Price < out[j].Price
		}
		return out[i].Key < out[j].Key
	})
	return out
}
