package pets

import "time"

// State es el estado completo de una mascota. Es un valor: Pet lo guarda
// internamente y solo lo muta a través de sus acciones.
type State struct {
	ID      string
	Name    string
	Species string

	Hunger    float64 // [0,100]
	Happiness float64 // [0,100]
	Energy    float64 // [0,MaxEnergy]
	MaxEnergy float64

	Level int
	XP    int
	Coins int

	EvolveAt  int
	Evolution string
	Evolved   bool

	LastUpdated    time.Time
	LastDailyClaim time.Time // zero = nunca
	LastGiftTime   time.Time
	LastGiftAmount int
}

// DisplayForm es el nombre que se muestra: la evolución si ya evolucionó.
func (s State) DisplayForm() string {
	if s.Evolved && s.Evolution != "" {
		return s.Evolution
	}
	return s.Species
}

// Snapshot es la vista de estado que se entrega a la capa HTTP.
type Snapshot struct {
	ID          string
	Name        string
	Species     string
	DisplayForm string

	Hunger    float64
	Happiness float64
	Energy    float64
	MaxEnergy float64

	Level   int
	XP      int
	Coins   int
	Evolved bool

	LastUpdated    time.Time
	GiftMessage    *string
	LastDailyClaim *time.Time
}

// Notice es un evento pasivo ocurrido durante una operación (regalo, subida
// de nivel, evolución). No se persiste; el Service lo reenvía al registro de actividad.
type Notice struct {
	Kind    string
	Message string
}

const (
	NoticeGift    = "gift"
	NoticeLevelUp = "level_up"
	NoticeEvolved = "evolved"
)
