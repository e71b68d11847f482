package memory

import (
	"context"
	"errors"
	"maps"
	"strings"
	"sync"

	"petverse/internal/domain/pets"
)

var _ pets.Store = (*PetStore)(nil)

// PetStore guarda los registros en memoria. Sirve para dev y como doble en tests:
// saved indica si alguna vez se escribió, para imitar "no hay archivo todavía".
type PetStore struct {
	mu     sync.RWMutex
	byName map[string]pets.Record
	saved  bool
}

func NewPetStore() *PetStore {
	return &PetStore{
		byName: make(map[string]pets.Record),
	}
}

func (s *PetStore) Get(ctx context.Context, name string) (pets.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.byName[name]
	if !ok {
		return pets.Record{}, pets.ErrRecordNotFound
	}
	return r, nil
}

func (s *PetStore) Put(ctx context.Context, r pets.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(r.Name) == "" {
		return errors.New("pet name required")
	}
	s.byName[r.Name] = r
	s.saved = true
	return nil
}

func (s *PetStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byName, name)
	return nil
}

func (s *PetStore) LoadAll(ctx context.Context) (map[string]pets.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.saved {
		return nil, pets.ErrNoData
	}
	return maps.Clone(s.byName), nil
}

func (s *PetStore) SaveAll(ctx context.Context, records map[string]pets.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byName = maps.Clone(records)
	if s.byName == nil {
		s.byName = make(map[string]pets.Record)
	}
	s.saved = true
	return nil
}
