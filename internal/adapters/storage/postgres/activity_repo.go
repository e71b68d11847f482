package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"petverse/internal/domain/activity"
)

var _ activity.Repository = (*ActivityRepo)(nil)

type ActivityRepo struct {
	db *sql.DB
}

func NewActivityRepo(db *sql.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

func (r *ActivityRepo) Append(ctx context.Context, e activity.Entry) error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("entry id required")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pet_activity (id, pet_name, kind, message, occurred_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		e.ID,
		e.PetName,
		string(e.Kind),
		e.Message,
		e.OccurredAt,
	)
	return err
}

func (r *ActivityRepo) ListByPet(ctx context.Context, petName string, filter activity.ListFilter) ([]activity.Entry, error) {
	petName = strings.TrimSpace(petName)
	if petName == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT id, pet_name, kind, message, occurred_at
		FROM pet_activity
		WHERE pet_name = $1
	`)

	args := []any{petName}
	argN := 2

	if len(filter.Kinds) > 0 {
		placeholders := make([]string, 0, len(filter.Kinds))
		for _, k := range filter.Kinds {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(k))
			argN++
		}
		sb.WriteString(" AND kind IN (" + strings.Join(placeholders, ",") + ")")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = activity.DefaultListLimit
	}
	sb.WriteString(fmt.Sprintf(" ORDER BY occurred_at DESC, id DESC LIMIT $%d", argN))
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]activity.Entry, 0)
	for rows.Next() {
		var e activity.Entry
		var kind string
		if err := rows.Scan(&e.ID, &e.PetName, &kind, &e.Message, &e.OccurredAt); err != nil {
			return nil, err
		}
		e.Kind = activity.Kind(kind)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *ActivityRepo) DeleteByPet(ctx context.Context, petName string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pet_activity WHERE pet_name = $1`, petName)
	return err
}
