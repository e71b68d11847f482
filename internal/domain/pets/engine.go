package pets

import (
	"math/rand/v2"
	"strings"
	"time"

	"petverse/internal/domain/catalog"

	"github.com/google/uuid"
)

// Clock abstrae el reloj para poder testear decaimiento y reclamos diarios.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// Rand es la fuente aleatoria del regalo. *rand.Rand (math/rand/v2) la cumple.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

// Engine reúne lo que comparten todas las mascotas: catálogo, reglas, reloj,
// azar y zona horaria para el reclamo diario.
type Engine struct {
	catalog *catalog.Catalog
	rules   catalog.Rules
	clock   Clock
	rnd     Rand
	loc     *time.Location
	newID   func() string
}

type Option func(*Engine)

func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

func WithRand(r Rand) Option {
	return func(e *Engine) { e.rnd = r }
}

// WithLocation fija la zona usada para comparar fechas del reclamo diario.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) { e.loc = loc }
}

func NewEngine(cat *catalog.Catalog, opts ...Option) *Engine {
	if cat == nil {
		cat = catalog.Default()
	}
	e := &Engine{
		catalog: cat,
		rules:   cat.Rules(),
		clock:   ClockFunc(time.Now),
		rnd:     globalRand{},
		loc:     time.Local,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

func (e *Engine) now() time.Time { return e.clock.Now() }

// NewPet construye una mascota desde la plantilla de su especie.
// Especies desconocidas conservan su nombre pero toman los valores de la
// plantilla por defecto.
func (e *Engine) NewPet(name, species string) *Pet {
	tpl := e.catalog.Species(species)
	key := catalog.NormalizeSpecies(species)
	if key == "" {
		key = tpl.Key
	}
	return &Pet{
		eng: e,
		st: State{
			ID:        e.newID(),
			Name:      strings.TrimSpace(name),
			Species:   key,
			Hunger:    tpl.BaseHunger,
			Happiness: tpl.BaseHappiness,
			Energy:    tpl.MaxEnergy,
			MaxEnergy: tpl.MaxEnergy,
			Level:     1,
			XP:        0,
			Coins:     defaultCoins,
			EvolveAt:  tpl.EvolveAt,
			Evolution: tpl.Evolution,
			Evolved:   false,

			LastUpdated: e.now(),
		},
	}
}

// Restore envuelve un estado ya decodificado (p.ej. desde el store).
// La XP acumulada de más se pasa a niveles, sin bono ni avisos.
func (e *Engine) Restore(st State) *Pet {
	if st.ID == "" {
		st.ID = e.newID()
	}
	if step := e.rules.XPPerLevel; st.XP >= step {
		st.Level += st.XP / step
		st.XP %= step
		if !st.Evolved && st.Level >= st.EvolveAt {
			st.Evolved = true
		}
	}
	return &Pet{eng: e, st: st}
}
