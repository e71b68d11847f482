package activity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Record agrega una entrada. kind llega como string porque el llamador
// (pets.Service) no conoce este paquete.
func (s *Service) Record(ctx context.Context, petName, kind, message string) error {
	petName = strings.TrimSpace(petName)
	if petName == "" || strings.TrimSpace(kind) == "" {
		return ErrInvalidInput
	}

	e := Entry{
		ID:         uuid.NewString(),
		PetName:    petName,
		Kind:       Kind(kind),
		Message:    strings.TrimSpace(message),
		OccurredAt: s.now(),
	}
	return s.repo.Append(ctx, e)
}

// Forget borra el historial de una mascota eliminada.
func (s *Service) Forget(ctx context.Context, petName string) error {
	petName = strings.TrimSpace(petName)
	if petName == "" {
		return ErrInvalidInput
	}
	return s.repo.DeleteByPet(ctx, petName)
}

func (s *Service) ListByPet(ctx context.Context, petName string, filter ListFilter) ([]Entry, error) {
	if strings.TrimSpace(petName) == "" {
		return nil, ErrInvalidInput
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}
	return s.repo.ListByPet(ctx, petName, filter)
}
