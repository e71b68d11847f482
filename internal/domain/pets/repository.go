package pets

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrRecordNotFound lo devuelven los stores en Get cuando no hay registro.
	ErrRecordNotFound = errors.New("record not found")
	// ErrNoData indica que todavía no se guardó nada (p.ej. el archivo no existe).
	ErrNoData = errors.New("no saved data")
	// ErrCorrupt marca un documento que existe pero no se puede interpretar.
	ErrCorrupt = errors.New("stored data is corrupt")
)

// Store es el puerto de persistencia. Los registros van indexados por nombre.
// SaveAll reemplaza el contenido completo; Put/Delete tocan una sola mascota.
type Store interface {
	Get(ctx context.Context, name string) (Record, error)
	Put(ctx context.Context, r Record) error
	Delete(ctx context.Context, name string) error
	LoadAll(ctx context.Context) (map[string]Record, error)
	SaveAll(ctx context.Context, records map[string]Record) error
}

// Quarantiner lo implementan los stores que pueden apartar un documento
// corrupto. Devuelve dónde quedó; después el store arranca vacío.
type Quarantiner interface {
	Quarantine(ctx context.Context) (string, error)
}

// PartialLoadError lo devuelve LoadAll junto con los registros que sí se
// pudieron leer cuando algunas entradas estaban corruptas.
type PartialLoadError struct {
	Skipped map[string]error
}

func (e *PartialLoadError) Error() string {
	names := make([]string, 0, len(e.Skipped))
	for n := range e.Skipped {
		names = append(names, n)
	}
	sort.Strings(names)
	return fmt.Sprintf("skipped %d unreadable records: %s", len(names), strings.Join(names, ", "))
}
