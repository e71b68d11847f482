// Package sqlite guarda cada mascota como una fila (nombre + registro JSON).
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"petverse/internal/adapters/storage/sqlite/migrations"
	"petverse/internal/domain/pets"

	_ "modernc.org/sqlite"
)

var _ pets.Store = (*Store)(nil)

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open abre (o crea) la base y aplica las migraciones embebidas.
// path ":memory:" sirve para tests.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Una sola conexión: con ":memory:" cada conexión sería otra base.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := migrate(db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Get(ctx context.Context, name string) (pets.Record, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM pets WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Record{}, pets.ErrRecordNotFound
	}
	if err != nil {
		return pets.Record{}, fmt.Errorf("get pet %q: %w", name, err)
	}

	var r pets.Record
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return pets.Record{}, fmt.Errorf("decode pet %q: %w", name, err)
	}
	return r, nil
}

func (s *Store) Put(ctx context.Context, r pets.Record) error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("pet name required")
	}
	return upsert(ctx, s.db, r.Name, r, s.now())
}

func (s *Store) Delete(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM pets WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete pet %q: %w", name, err)
	}
	return nil
}

// LoadAll devuelve ErrNoData si la tabla está vacía. Filas con JSON
// ilegible se saltean y se informan en *PartialLoadError.
func (s *Store) LoadAll(ctx context.Context) (map[string]pets.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, data FROM pets`)
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	defer rows.Close()

	out := map[string]pets.Record{}
	skipped := map[string]error{}
	for rows.Next() {
		var name, data string
		if err := rows.Scan(&name, &data); err != nil {
			return nil, fmt.Errorf("scan pet: %w", err)
		}
		var r pets.Record
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			skipped[name] = err
			continue
		}
		out[name] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}

	if len(out) == 0 && len(skipped) == 0 {
		return nil, pets.ErrNoData
	}
	if len(skipped) > 0 {
		return out, &pets.PartialLoadError{Skipped: skipped}
	}
	return out, nil
}

// SaveAll reemplaza el contenido en una transacción.
func (s *Store) SaveAll(ctx context.Context, records map[string]pets.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pets`); err != nil {
		return fmt.Errorf("clear pets: %w", err)
	}
	now := s.now()
	for name, r := range records {
		if err := upsert(ctx, tx, name, r, now); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsert(ctx context.Context, db execer, name string, r pets.Record, now time.Time) error {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode pet %q: %w", name, err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO pets (name, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, name, string(b), now.UnixMilli())
	if err != nil {
		return fmt.Errorf("save pet %q: %w", name, err)
	}
	return nil
}

// migrate aplica cada .sql embebido una sola vez, en orden de nombre.
func migrate(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at INTEGER NOT NULL
	)`); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, file := range files {
		var n int
		if err := db.QueryRow(`SELECT COUNT(1) FROM schema_migrations WHERE name = ?`, file).Scan(&n); err != nil {
			return fmt.Errorf("check migration %s: %w", file, err)
		}
		if n > 0 {
			continue
		}
		content, err := fs.ReadFile(fsys, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", file, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", file, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (name, applied_at) VALUES (?, ?)`, file, time.Now().UnixMilli()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", file, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}
	}
	return nil
}
