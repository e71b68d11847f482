// Package storage elige el adapter según la configuración.
package storage

import (
	"context"
	"errors"
	"fmt"

	"petverse/internal/adapters/storage/jsonfile"
	mem "petverse/internal/adapters/storage/memory"
	pg "petverse/internal/adapters/storage/postgres"
	rd "petverse/internal/adapters/storage/redis"
	"petverse/internal/adapters/storage/sqlite"
	"petverse/internal/domain/activity"
	"petverse/internal/domain/pets"
	"petverse/internal/platform/config"
)

// Backend agrupa el store de mascotas y el repo de actividad abiertos.
type Backend struct {
	Driver   string
	Pets     pets.Store
	Activity activity.Repository

	closers []func() error
}

// Close libera conexiones en orden inverso.
func (b *Backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	b.closers = nil
	return errors.Join(errs...)
}

// Open abre el backend de cfg.Driver. La actividad va a Postgres cuando ese
// es el driver; en cualquier otro caso queda en memoria con tope por mascota.
func Open(ctx context.Context, cfg config.Store) (*Backend, error) {
	b := &Backend{Driver: cfg.Driver}

	switch cfg.Driver {
	case config.DriverMemory:
		b.Pets = mem.NewPetStore()

	case config.DriverJSONFile:
		b.Pets = jsonfile.New(cfg.Path)

	case config.DriverSQLite:
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		b.Pets = s
		b.closers = append(b.closers, s.Close)

	case config.DriverPostgres:
		db, err := pg.Open(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := pg.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		b.Pets = pg.NewPetsRepo(db)
		b.Activity = pg.NewActivityRepo(db)
		b.closers = append(b.closers, db.Close)

	case config.DriverRedis:
		rdb, err := rd.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		b.Pets = rd.New(rdb, cfg.RedisKey)
		b.closers = append(b.closers, rdb.Close)

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}

	if b.Activity == nil {
		b.Activity = mem.NewActivityRepo(cfg.ActivityCap)
	}
	return b, nil
}
