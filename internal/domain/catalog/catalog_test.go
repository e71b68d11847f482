package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault_SpeciesFallbackToCat(t *testing.T) {
	c := Default()

	s := c.Species("hamster")
	if s.Key != DefaultSpecies {
		t.Fatalf("expected fallback to %q, got %q", DefaultSpecies, s.Key)
	}

	d := c.Species("  DRAGON ")
	if d.Key != "dragon" || d.MaxEnergy != 200 || d.Evolution != "Elder Dragon" {
		t.Fatalf("unexpected dragon template: %#v", d)
	}
}

func TestDefault_ShopItemsResolvedToKinds(t *testing.T) {
	c := Default()

	cases := map[string]ItemKind{
		"food":         ItemFood,
		"toy":          ItemToy,
		"energy_drink": ItemEnergyDrink,
	}
	for key, kind := range cases {
		it, ok := c.Item(key)
		if !ok {
			t.Fatalf("expected item %q", key)
		}
		if it.Kind != kind {
			t.Fatalf("item %q: expected kind %s, got %s", key, kind, it.Kind)
		}
	}

	if _, ok := c.Item("bone"); ok {
		t.Fatalf("expected unknown item to be absent")
	}

	items := c.ListItems()
	if len(items) != 3 || items[0].Key != "food" || items[2].Key != "toy" {
		t.Fatalf("unexpected item order: %#v", items)
	}
}

func TestParse_OverridesRulesAndMergesEntries(t *testing.T) {
	doc := []byte(`
rules:
  daily_reward: 50
  gift_display_window: 10s
species:
  - key: Axolotl
    max_energy: 80
    base_hunger: 10
    base_happiness: 70
    evolve_at: 3
    evolution: Mega Axolotl
shop:
  - key: food
    kind: food
    price: 3
    hunger_restore: 30
    happiness: 5
    xp: 5
`)

	c, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	r := c.Rules()
	if r.DailyReward != 50 {
		t.Fatalf("expected daily reward 50, got %d", r.DailyReward)
	}
	if r.GiftDisplayWindow != 10*time.Second {
		t.Fatalf("expected gift window 10s, got %s", r.GiftDisplayWindow)
	}
	// campos no mencionados conservan el default
	if r.FeedCost != 5 || r.HungerPerHour != 2.0 {
		t.Fatalf("expected untouched defaults, got %#v", r)
	}

	if s := c.Species("axolotl"); s.Key != "axolotl" || s.EvolveAt != 3 {
		t.Fatalf("expected axolotl template, got %#v", s)
	}
	if len(c.ListSpecies()) != 4 {
		t.Fatalf("expected 4 species after merge, got %d", len(c.ListSpecies()))
	}

	food, _ := c.Item("food")
	if food.Price != 3 || food.HungerRestore != 30 {
		t.Fatalf("expected overridden food, got %#v", food)
	}
}

func TestParse_RejectsUnknownItemKind(t *testing.T) {
	_, err := Parse([]byte(`
shop:
  - key: bone
    kind: chew
    price: 2
`))
	if err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestParse_RejectsInvalidRules(t *testing.T) {
	_, err := Parse([]byte("rules:\n  xp_per_level: 0\n"))
	if err == nil {
		t.Fatalf("expected error for xp_per_level 0")
	}
}

func TestParse_RejectsValuesThatBreakInvariants(t *testing.T) {
	cases := map[string]string{
		"negative gift_min":   "rules:\n  gift_min: -3\n",
		"negative feed_cost":  "rules:\n  feed_cost: -1\n",
		"hunger above 100":    "species:\n  - key: ox\n    max_energy: 90\n    base_hunger: 120\n    base_happiness: 50\n    evolve_at: 3\n",
		"negative happiness":  "species:\n  - key: ox\n    max_energy: 90\n    base_hunger: 20\n    base_happiness: -5\n    evolve_at: 3\n",
		"zero evolve_at":      "species:\n  - key: ox\n    max_energy: 90\n    base_hunger: 20\n    base_happiness: 50\n",
		"negative item xp":    "shop:\n  - key: food\n    kind: food\n    price: 5\n    xp: -10\n",
		"negative item boost": "shop:\n  - key: toy\n    kind: toy\n    price: 5\n    happiness: -20\n",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}

	if _, err := Parse([]byte("rules:\n  gift_min: 0\n  gift_max: 0\n")); err != nil {
		t.Fatalf("zero gift range should be valid: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	c, err := LoadFile("")
	if err != nil || c == nil {
		t.Fatalf("expected defaults for empty path, err=%v", err)
	}

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("rules:\n  level_up_bonus: 40\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err = LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if c.Rules().LevelUpBonus != 40 {
		t.Fatalf("expected level up bonus 40, got %d", c.Rules().LevelUpBonus)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
