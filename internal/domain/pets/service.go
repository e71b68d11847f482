package pets

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"petverse/internal/domain/catalog"
	"petverse/internal/platform/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// PersistMode define cómo se escribe después de una operación exitosa.
type PersistMode string

const (
	// PersistFull reescribe el documento completo (SaveAll).
	PersistFull PersistMode = "full"
	// PersistIncremental escribe solo la mascota tocada (Put/Delete).
	PersistIncremental PersistMode = "incremental"
)

// ActivityRecorder recibe los hechos ocurridos; lo implementa activity.Service.
type ActivityRecorder interface {
	Record(ctx context.Context, petName, kind, message string) error
	Forget(ctx context.Context, petName string) error
}

type Options struct {
	Store    Store
	Logger   logger.Logger
	Mode     PersistMode
	Activity ActivityRecorder // opcional
	Tracer   trace.Tracer     // opcional; default otel global
}

// Service es la frontera que usa la capa HTTP. Serializa todo acceso al
// World con un mutex y persiste después de cada operación exitosa.
type Service struct {
	mu       sync.Mutex
	world    *World
	store    Store
	log      logger.Logger
	mode     PersistMode
	activity ActivityRecorder
	tracer   trace.Tracer

	// dirty son las mascotas con cambios todavía no escritos.
	dirty map[string]struct{}
	// degraded queda en true si la carga no pudo leer todo el store: desde
	// ahí solo se escribe mascota por mascota, nunca el documento completo.
	degraded bool
}

// NewService construye el servicio y carga lo guardado. Si el store está
// vacío o es ilegible se arranca sin mascotas; nunca falla por eso. Un
// documento corrupto se aparta si el store lo permite; si no, o si la carga
// fue parcial, el servicio no vuelve a reescribir el store completo.
func NewService(ctx context.Context, world *World, opts Options) *Service {
	s := &Service{
		world:    world,
		store:    opts.Store,
		log:      opts.Logger,
		mode:     opts.Mode,
		activity: opts.Activity,
		tracer:   opts.Tracer,
		dirty:    make(map[string]struct{}),
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	s.log = s.log.With(map[string]any{"component": "pets"})
	if s.mode == "" {
		s.mode = PersistFull
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer("petverse/pets")
	}

	s.load(ctx)
	return s
}

func (s *Service) load(ctx context.Context) {
	if s.store == nil {
		return
	}
	ctx, span := s.tracer.Start(ctx, "pets.load")
	defer span.End()

	records, err := s.store.LoadAll(ctx)

	var partial *PartialLoadError
	switch {
	case err == nil:
	case errors.Is(err, ErrNoData):
		s.log.Info("nothing loaded", map[string]any{"reason": "no saved data"})
		return
	case errors.As(err, &partial):
		for name, cause := range partial.Skipped {
			s.log.Warn("skipped unreadable pet", map[string]any{"pet": name, "error": cause})
		}
		s.degraded = true
	default:
		span.RecordError(err)
		s.log.Warn("nothing loaded", map[string]any{"error": err})
		s.quarantine(ctx, err)
		return
	}

	n, dropped := s.world.Restore(records)
	for _, key := range dropped {
		s.log.Warn("skipped duplicate pet name", map[string]any{"key": key})
		s.degraded = true
	}
	span.SetAttributes(attribute.Int("pets.count", n))
	s.log.Info("pets loaded", map[string]any{"count": n})
	if s.degraded {
		s.log.Warn("store not fully loaded; writes limited to touched pets", nil)
	}
}

// quarantine aparta un documento corrupto para no pisarlo. Si no se puede,
// el servicio queda degradado.
func (s *Service) quarantine(ctx context.Context, cause error) {
	q, ok := s.store.(Quarantiner)
	if !ok || !errors.Is(cause, ErrCorrupt) {
		s.degraded = true
		s.log.Warn("store not fully loaded; writes limited to touched pets", nil)
		return
	}
	path, err := q.Quarantine(ctx)
	if err != nil {
		s.degraded = true
		s.log.Error("quarantine failed", map[string]any{"error": err})
		return
	}
	s.log.Warn("moved unreadable store aside", map[string]any{"path": path})
}

func (s *Service) Catalog() *catalog.Catalog { return s.world.Engine().Catalog() }

// List devuelve el estado de todas las mascotas (aplica decaimiento).
func (s *Service) List(ctx context.Context) []Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.world.List()
	out := make([]Snapshot, 0, len(list))
	for _, p := range list {
		out = append(out, p.Status())
		s.flushNotices(ctx, p)
	}
	return out
}

func (s *Service) Get(ctx context.Context, name string) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.world.Get(name)
	if !ok {
		return Snapshot{}, false
	}
	snap := p.Status()
	s.flushNotices(ctx, p)
	return snap, true
}

func (s *Service) Create(ctx context.Context, name, species string) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.world.Create(name, species)
	if !out.OK {
		return out, nil
	}
	name = strings.TrimSpace(name)
	s.markDirty(name)
	s.record(ctx, name, "create", out.Message)
	return out, s.persist(ctx, "create")
}

func (s *Service) Delete(ctx context.Context, name string) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.world.Delete(name) {
		return reject(ReasonNotFound, "Pet not found."), nil
	}
	s.markDirty(name)
	if s.activity != nil {
		if err := s.activity.Forget(ctx, name); err != nil {
			s.log.Warn("activity forget failed", map[string]any{"pet": name, "error": err})
		}
	}
	return succeed("Pet deleted."), s.persist(ctx, "delete")
}

func (s *Service) Feed(ctx context.Context, name string) (Outcome, error) {
	return s.act(ctx, name, "feed", (*Pet).Feed)
}

func (s *Service) Play(ctx context.Context, name string, minutes int) (Outcome, error) {
	return s.act(ctx, name, "play", func(p *Pet) Outcome { return p.Play(minutes) })
}

func (s *Service) Rest(ctx context.Context, name string, minutes int) (Outcome, error) {
	return s.act(ctx, name, "rest", func(p *Pet) Outcome { return p.Rest(minutes) })
}

func (s *Service) Work(ctx context.Context, name string, minutes int) (Outcome, error) {
	return s.act(ctx, name, "work", func(p *Pet) Outcome { return p.Work(minutes) })
}

func (s *Service) Buy(ctx context.Context, name, itemKey string) (Outcome, error) {
	return s.act(ctx, name, "buy", func(p *Pet) Outcome { return p.Buy(itemKey) })
}

func (s *Service) ClaimDaily(ctx context.Context, name string) (Outcome, error) {
	return s.act(ctx, name, "daily", (*Pet).ClaimDaily)
}

// Save escribe los cambios pendientes; sin cambios no toca el store. Con el
// store sano reescribe el documento completo, sin importar el modo.
func (s *Service) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil || len(s.dirty) == 0 {
		return nil
	}
	if s.degraded {
		return s.saveDirty(ctx, "save")
	}
	return s.saveAll(ctx)
}

// Pending devuelve cuántas mascotas tienen cambios sin escribir.
func (s *Service) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.dirty)
}

// act es el camino común: buscar, ejecutar, registrar y persistir si hubo éxito.
// Un error de escritura se devuelve junto al Outcome: la mutación en memoria se mantiene.
func (s *Service) act(ctx context.Context, name, action string, fn func(*Pet) Outcome) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.world.Get(name)
	if !ok {
		return reject(ReasonNotFound, "Pet not found."), nil
	}

	out := fn(p)
	s.flushNotices(ctx, p)
	if !out.OK {
		s.log.Debug("action rejected", map[string]any{"pet": name, "action": action, "reason": string(out.Reason)})
		return out, nil
	}

	s.markDirty(name)
	s.record(ctx, name, action, out.Message)
	s.log.Info("action applied", map[string]any{"pet": name, "action": action})
	return out, s.persist(ctx, action)
}

func (s *Service) markDirty(name string) { s.dirty[name] = struct{}{} }

// flushNotices reenvía los avisos y deja la mascota pendiente de escritura.
func (s *Service) flushNotices(ctx context.Context, p *Pet) {
	for _, n := range p.TakeNotices() {
		s.markDirty(p.Name())
		s.log.Info(n.Message, map[string]any{"pet": p.Name(), "event": n.Kind})
		s.record(ctx, p.Name(), n.Kind, n.Message)
	}
}

func (s *Service) record(ctx context.Context, name, kind, message string) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Record(ctx, name, kind, message); err != nil {
		s.log.Warn("activity record failed", map[string]any{"pet": name, "kind": kind, "error": err})
	}
}

func (s *Service) persist(ctx context.Context, action string) error {
	if s.store == nil {
		return nil
	}
	if s.mode == PersistIncremental || s.degraded {
		return s.saveDirty(ctx, action)
	}
	return s.saveAll(ctx)
}

// saveDirty escribe con Put/Delete cada mascota pendiente, en orden de nombre.
func (s *Service) saveDirty(ctx context.Context, action string) error {
	var errs []error
	for _, name := range slices.Sorted(maps.Keys(s.dirty)) {
		if err := s.saveOne(ctx, name, action); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Service) saveAll(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	ctx, span := s.tracer.Start(ctx, "pets.save_all")
	defer span.End()

	records := s.world.Records()
	span.SetAttributes(attribute.Int("pets.count", len(records)))

	if err := s.store.SaveAll(ctx, records); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.log.Error("save failed", map[string]any{"error": err, "count": len(records)})
		return fmt.Errorf("save pets: %w", err)
	}
	clear(s.dirty)
	return nil
}

func (s *Service) saveOne(ctx context.Context, name, action string) error {
	ctx, span := s.tracer.Start(ctx, "pets.save_one", trace.WithAttributes(
		attribute.String("pet.name", name),
		attribute.String("pet.action", action),
	))
	defer span.End()

	var err error
	if p, ok := s.world.Get(name); ok {
		err = s.store.Put(ctx, Encode(p.State()))
	} else {
		err = s.store.Delete(ctx, name)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.log.Error("save failed", map[string]any{"error": err, "pet": name})
		return fmt.Errorf("save pet %q: %w", name, err)
	}
	delete(s.dirty, name)
	return nil
}
