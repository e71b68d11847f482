package memory

import (
	"context"
	"errors"
	"slices"
	"sync"

	"petverse/internal/domain/activity"
)

// DefaultActivityCap es cuántas entradas se guardan por mascota antes de
// descartar las más viejas.
const DefaultActivityCap = 100

type activityRepo struct {
	mu    sync.RWMutex
	cap   int
	byPet map[string][]activity.Entry // orden de llegada, la más vieja primero
}

func NewActivityRepo(capPerPet int) activity.Repository {
	if capPerPet <= 0 {
		capPerPet = DefaultActivityCap
	}
	return &activityRepo{
		cap:   capPerPet,
		byPet: make(map[string][]activity.Entry),
	}
}

func (r *activityRepo) Append(ctx context.Context, e activity.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return errors.New("entry id required")
	}

	list := append(r.byPet[e.PetName], e)
	if len(list) > r.cap {
		list = slices.Clone(list[len(list)-r.cap:])
	}
	r.byPet[e.PetName] = list
	return nil
}

func (r *activityRepo) ListByPet(ctx context.Context, petName string, filter activity.ListFilter) ([]activity.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = activity.DefaultListLimit
	}

	list := r.byPet[petName]
	out := make([]activity.Entry, 0, min(limit, len(list)))

	// Más reciente primero
	for i := len(list) - 1; i >= 0 && len(out) < limit; i-- {
		e := list[i]
		if len(filter.Kinds) > 0 && !slices.Contains(filter.Kinds, e.Kind) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *activityRepo) DeleteByPet(ctx context.Context, petName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byPet, petName)
	return nil
}
