package catalog

import (
	"fmt"
	"time"
)

// Rules agrupa todas las constantes de la simulación.
type Rules struct {
	// Decaimiento por hora
	HungerPerHour         float64 `yaml:"hunger_per_hour" json:"hunger_per_hour"`
	EnergyRecoverPerHour  float64 `yaml:"energy_recover_per_hour" json:"energy_recover_per_hour"`
	HappinessDecayPerHour float64 `yaml:"happiness_decay_per_hour" json:"happiness_decay_per_hour"`

	// Umbrales de "descuido": hunger > NeglectHunger o energy < NeglectEnergy
	NeglectHunger float64 `yaml:"neglect_hunger" json:"neglect_hunger"`
	NeglectEnergy float64 `yaml:"neglect_energy" json:"neglect_energy"`

	FeedCost     int     `yaml:"feed_cost" json:"feed_cost"`
	FeedStrength float64 `yaml:"feed_strength" json:"feed_strength"`
	FeedXP       int     `yaml:"feed_xp" json:"feed_xp"`

	PlayEnergyPerMinute    float64 `yaml:"play_energy_per_minute" json:"play_energy_per_minute"`
	PlayHappinessPerMinute float64 `yaml:"play_happiness_per_minute" json:"play_happiness_per_minute"`
	PlayReward             int     `yaml:"play_reward" json:"play_reward"`
	PlayBaseXP             int     `yaml:"play_base_xp" json:"play_base_xp"`

	RestEnergyPerMinute    float64 `yaml:"rest_energy_per_minute" json:"rest_energy_per_minute"`
	RestHappinessPerMinute float64 `yaml:"rest_happiness_per_minute" json:"rest_happiness_per_minute"`
	RestReward             int     `yaml:"rest_reward" json:"rest_reward"`

	WorkEnergyPerMinute float64 `yaml:"work_energy_per_minute" json:"work_energy_per_minute"`
	WorkMinutesPerCoin  int     `yaml:"work_minutes_per_coin" json:"work_minutes_per_coin"`

	DailyReward int `yaml:"daily_reward" json:"daily_reward"`

	XPPerLevel   int `yaml:"xp_per_level" json:"xp_per_level"`
	LevelUpBonus int `yaml:"level_up_bonus" json:"level_up_bonus"`

	GiftChance        float64       `yaml:"gift_chance" json:"gift_chance"`
	GiftMin           int           `yaml:"gift_min" json:"gift_min"`
	GiftMax           int           `yaml:"gift_max" json:"gift_max"`
	GiftDisplayWindow time.Duration `yaml:"gift_display_window" json:"gift_display_window"`
}

func DefaultRules() Rules {
	return Rules{
		HungerPerHour:         2.0,
		EnergyRecoverPerHour:  1.0,
		HappinessDecayPerHour: 0.5,

		NeglectHunger: 70,
		NeglectEnergy: 20,

		FeedCost:     5,
		FeedStrength: 20,
		FeedXP:       10,

		PlayEnergyPerMinute:    0.5,
		PlayHappinessPerMinute: 0.6,
		PlayReward:             1,
		PlayBaseXP:             15,

		RestEnergyPerMinute:    0.8,
		RestHappinessPerMinute: 0.03,
		RestReward:             1,

		WorkEnergyPerMinute: 0.3,
		WorkMinutesPerCoin:  5,

		DailyReward: 20,

		XPPerLevel:   100,
		LevelUpBonus: 20,

		GiftChance:        0.05,
		GiftMin:           1,
		GiftMax:           5,
		GiftDisplayWindow: 5 * time.Second,
	}
}

func (r Rules) validate() error {
	if r.XPPerLevel <= 0 {
		return fmt.Errorf("xp_per_level must be > 0")
	}
	if r.WorkMinutesPerCoin <= 0 {
		return fmt.Errorf("work_minutes_per_coin must be > 0")
	}
	if r.GiftChance < 0 || r.GiftChance > 1 {
		return fmt.Errorf("gift_chance must be within [0,1]")
	}
	if r.GiftMin < 0 {
		return fmt.Errorf("gift_min must be >= 0")
	}
	if r.GiftMin > r.GiftMax {
		return fmt.Errorf("gift_min must be <= gift_max")
	}
	if r.FeedCost < 0 || r.DailyReward < 0 || r.LevelUpBonus < 0 {
		return fmt.Errorf("costs and rewards must be >= 0")
	}
	return nil
}
