package pets

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"petverse/internal/domain/catalog"
)

// Defaults aplicados al decodificar registros a los que les faltan campos.
const (
	defaultHunger    = 50.0
	defaultHappiness = 50.0
	defaultMaxEnergy = 100.0
	defaultEvolveAt  = 999
)

// Record es la forma persistida de una mascota: solo primitivos, timestamps
// en segundos desde epoch. Los punteros permiten distinguir "campo ausente"
// de "cero" para poder aplicar defaults a documentos viejos.
type Record struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Species string `json:"species"`

	Hunger    *float64 `json:"hunger,omitempty"`
	Happiness *float64 `json:"happiness,omitempty"`
	Energy    *float64 `json:"energy,omitempty"`
	MaxEnergy *float64 `json:"max_energy,omitempty"`

	Level *int `json:"level,omitempty"`
	XP    *int `json:"xp,omitempty"`
	Coins *int `json:"coins,omitempty"`

	LastUpdated Epoch `json:"last_updated"`

	EvolveAt  *int   `json:"evolve_at,omitempty"`
	Evolution string `json:"evolution"`
	Evolved   *bool  `json:"evolved,omitempty"`

	LastDailyClaim Epoch `json:"last_daily_claim"`
	LastGiftTime   Epoch `json:"last_gift_time"`
	LastGiftAmount *int  `json:"last_gift_amount,omitempty"`
}

// Epoch es un timestamp en segundos (con fracción) desde epoch.
// Acepta número o string numérico; cualquier otra cosa queda como inválido
// en vez de romper la carga de todo el documento.
type Epoch struct {
	Seconds float64
	Valid   bool
}

func EpochOf(t time.Time) Epoch {
	if t.IsZero() {
		return Epoch{Seconds: 0, Valid: true}
	}
	return Epoch{Seconds: float64(t.UnixNano()) / 1e9, Valid: true}
}

// Time devuelve el instante y si es utilizable (válido y > 0).
func (e Epoch) Time() (time.Time, bool) {
	if !e.Valid || e.Seconds <= 0 || math.IsNaN(e.Seconds) || math.IsInf(e.Seconds, 0) {
		return time.Time{}, false
	}
	sec, frac := math.Modf(e.Seconds)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9))), true
}

func (e Epoch) MarshalJSON() ([]byte, error) {
	if !e.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(e.Seconds, 'f', -1, 64)), nil
}

func (e *Epoch) UnmarshalJSON(b []byte) error {
	*e = Epoch{}

	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*e = Epoch{Seconds: f, Valid: true}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*e = Epoch{Seconds: f, Valid: true}
		}
	}
	// malformado: queda inválido, sin error
	return nil
}

// Encode convierte el estado en su registro persistible.
func Encode(st State) Record {
	return Record{
		ID:      st.ID,
		Name:    st.Name,
		Species: st.Species,

		Hunger:    ptr(st.Hunger),
		Happiness: ptr(st.Happiness),
		Energy:    ptr(st.Energy),
		MaxEnergy: ptr(st.MaxEnergy),

		Level: ptr(st.Level),
		XP:    ptr(st.XP),
		Coins: ptr(st.Coins),

		LastUpdated: EpochOf(st.LastUpdated),

		EvolveAt:  ptr(st.EvolveAt),
		Evolution: st.Evolution,
		Evolved:   ptr(st.Evolved),

		LastDailyClaim: EpochOf(st.LastDailyClaim),
		LastGiftTime:   EpochOf(st.LastGiftTime),
		LastGiftAmount: ptr(st.LastGiftAmount),
	}
}

// Decode reconstruye el estado aplicando defaults a campos ausentes.
// LastUpdated ausente o inválido => now; reclamo y regalo => nunca.
// Los atributos acotados se recortan a su rango.
func Decode(r Record, now time.Time) State {
	maxEnergy := deref(r.MaxEnergy, defaultMaxEnergy)
	if maxEnergy <= 0 {
		maxEnergy = defaultMaxEnergy
	}

	species := catalog.NormalizeSpecies(r.Species)
	if species == "" {
		species = catalog.DefaultSpecies
	}

	st := State{
		ID:      strings.TrimSpace(r.ID),
		Name:    r.Name,
		Species: species,

		Hunger:    clamp(deref(r.Hunger, defaultHunger), 0, maxStat),
		Happiness: clamp(deref(r.Happiness, defaultHappiness), 0, maxStat),
		Energy:    clamp(deref(r.Energy, maxEnergy), 0, maxEnergy),
		MaxEnergy: maxEnergy,

		Level: max(1, deref(r.Level, 1)),
		XP:    max(0, deref(r.XP, 0)),
		Coins: max(0, deref(r.Coins, defaultCoins)),

		EvolveAt:  deref(r.EvolveAt, defaultEvolveAt),
		Evolution: r.Evolution,
		Evolved:   deref(r.Evolved, false),

		LastGiftAmount: deref(r.LastGiftAmount, 0),
	}

	if t, ok := r.LastUpdated.Time(); ok {
		st.LastUpdated = t
	} else {
		st.LastUpdated = now
	}
	if t, ok := r.LastDailyClaim.Time(); ok {
		st.LastDailyClaim = t
	}
	if t, ok := r.LastGiftTime.Time(); ok {
		st.LastGiftTime = t
	}

	return st
}

func ptr[T any](v T) *T { return &v }

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
