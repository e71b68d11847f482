package activity

import "context"

type Repository interface {
	Append(ctx context.Context, e Entry) error
	ListByPet(ctx context.Context, petName string, filter ListFilter) ([]Entry, error)
	DeleteByPet(ctx context.Context, petName string) error
}

type ListFilter struct {
	Kinds []Kind
	Limit int
}
