package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"petverse/internal/domain/pets"
)

var _ pets.Store = (*PetsRepo)(nil)

// PetsRepo guarda una fila por mascota. Las columnas numéricas son
// nullables para conservar la diferencia entre "ausente" y "cero" del registro.
type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	name, id, species,
	hunger, happiness, energy, max_energy,
	level, xp, coins,
	last_updated,
	evolve_at, evolution, evolved,
	last_daily_claim, last_gift_time, last_gift_amount`

const upsertPet = `
	INSERT INTO pets (` + petColumns + `, saved_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17, now())
	ON CONFLICT (name) DO UPDATE SET
		id = EXCLUDED.id,
		species = EXCLUDED.species,
		hunger = EXCLUDED.hunger,
		happiness = EXCLUDED.happiness,
		energy = EXCLUDED.energy,
		max_energy = EXCLUDED.max_energy,
		level = EXCLUDED.level,
		xp = EXCLUDED.xp,
		coins = EXCLUDED.coins,
		last_updated = EXCLUDED.last_updated,
		evolve_at = EXCLUDED.evolve_at,
		evolution = EXCLUDED.evolution,
		evolved = EXCLUDED.evolved,
		last_daily_claim = EXCLUDED.last_daily_claim,
		last_gift_time = EXCLUDED.last_gift_time,
		last_gift_amount = EXCLUDED.last_gift_amount,
		saved_at = now()
`

func (r *PetsRepo) Get(ctx context.Context, name string) (pets.Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return pets.Record{}, pets.ErrRecordNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE name = $1`, name)
	rec, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Record{}, pets.ErrRecordNotFound
		}
		return pets.Record{}, err
	}
	return rec, nil
}

func (r *PetsRepo) Put(ctx context.Context, rec pets.Record) error {
	if strings.TrimSpace(rec.Name) == "" {
		return errors.New("pet name required")
	}
	_, err := r.db.ExecContext(ctx, upsertPet, petArgs(rec.Name, rec)...)
	return err
}

func (r *PetsRepo) Delete(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE name = $1`, name)
	return err
}

func (r *PetsRepo) LoadAll(ctx context.Context) (map[string]pets.Record, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+petColumns+` FROM pets ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]pets.Record)
	for rows.Next() {
		rec, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out[rec.Name] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, pets.ErrNoData
	}
	return out, nil
}

// SaveAll reemplaza la tabla completa dentro de una transacción.
func (r *PetsRepo) SaveAll(ctx context.Context, records map[string]pets.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pets`); err != nil {
		return fmt.Errorf("clear pets: %w", err)
	}
	for name, rec := range records {
		if _, err := tx.ExecContext(ctx, upsertPet, petArgs(name, rec)...); err != nil {
			return fmt.Errorf("save pet %q: %w", name, err)
		}
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Record, error) {
	var (
		rec                                    pets.Record
		hunger, happiness, energy, maxEnergy   sql.NullFloat64
		level, xp, coins, evolveAt, giftAmount sql.NullInt64
		lastUpdated, lastDaily, lastGift       sql.NullFloat64
		evolved                                sql.NullBool
	)
	if err := row.Scan(
		&rec.Name, &rec.ID, &rec.Species,
		&hunger, &happiness, &energy, &maxEnergy,
		&level, &xp, &coins,
		&lastUpdated,
		&evolveAt, &rec.Evolution, &evolved,
		&lastDaily, &lastGift, &giftAmount,
	); err != nil {
		return pets.Record{}, err
	}

	rec.Hunger = fromNullFloat(hunger)
	rec.Happiness = fromNullFloat(happiness)
	rec.Energy = fromNullFloat(energy)
	rec.MaxEnergy = fromNullFloat(maxEnergy)
	rec.Level = fromNullInt(level)
	rec.XP = fromNullInt(xp)
	rec.Coins = fromNullInt(coins)
	rec.EvolveAt = fromNullInt(evolveAt)
	rec.LastGiftAmount = fromNullInt(giftAmount)
	rec.LastUpdated = pets.Epoch{Seconds: lastUpdated.Float64, Valid: lastUpdated.Valid}
	rec.LastDailyClaim = pets.Epoch{Seconds: lastDaily.Float64, Valid: lastDaily.Valid}
	rec.LastGiftTime = pets.Epoch{Seconds: lastGift.Float64, Valid: lastGift.Valid}
	if evolved.Valid {
		v := evolved.Bool
		rec.Evolved = &v
	}
	return rec, nil
}

func petArgs(name string, rec pets.Record) []any {
	return []any{
		name, rec.ID, rec.Species,
		toNullFloat(rec.Hunger), toNullFloat(rec.Happiness), toNullFloat(rec.Energy), toNullFloat(rec.MaxEnergy),
		toNullInt(rec.Level), toNullInt(rec.XP), toNullInt(rec.Coins),
		epochArg(rec.LastUpdated),
		toNullInt(rec.EvolveAt), rec.Evolution, toNullBool(rec.Evolved),
		epochArg(rec.LastDailyClaim), epochArg(rec.LastGiftTime), toNullInt(rec.LastGiftAmount),
	}
}

func toNullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func toNullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func toNullBool(p *bool) sql.NullBool {
	if p == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *p, Valid: true}
}

func epochArg(e pets.Epoch) sql.NullFloat64 {
	return sql.NullFloat64{Float64: e.Seconds, Valid: e.Valid}
}

func fromNullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func fromNullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
