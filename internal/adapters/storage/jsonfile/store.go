// Package jsonfile guarda todas las mascotas en un único documento JSON
// indexado por nombre. Cada escritura reescribe el archivo completo.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"petverse/internal/domain/pets"
)

// DefaultPath es el archivo usado cuando no se configura otro.
const DefaultPath = "petverse_pets.json"

var (
	_ pets.Store       = (*Store)(nil)
	_ pets.Quarantiner = (*Store)(nil)
)

type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Store {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	return &Store{path: filepath.Clean(path)}
}

func (s *Store) Path() string { return s.path }

func (s *Store) Get(ctx context.Context, name string) (pets.Record, error) {
	all, err := s.LoadAll(ctx)
	var partial *pets.PartialLoadError
	if err != nil && !errors.As(err, &partial) {
		if errors.Is(err, pets.ErrNoData) {
			return pets.Record{}, pets.ErrRecordNotFound
		}
		return pets.Record{}, err
	}
	if partial != nil {
		if cause, bad := partial.Skipped[name]; bad {
			return pets.Record{}, fmt.Errorf("record %q: %w", name, cause)
		}
	}
	r, ok := all[name]
	if !ok {
		return pets.Record{}, pets.ErrRecordNotFound
	}
	return r, nil
}

// Put y Delete hacen leer-modificar-escribir del documento completo.
func (s *Store) Put(ctx context.Context, r pets.Record) error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("pet name required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.readRaw()
	if err != nil && !errors.Is(err, pets.ErrNoData) {
		return err
	}
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode %q: %w", r.Name, err)
	}
	if raw == nil {
		raw = map[string]json.RawMessage{}
	}
	raw[r.Name] = b
	return s.writeRaw(ctx, raw)
}

func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.readRaw()
	if errors.Is(err, pets.ErrNoData) {
		return nil
	}
	if err != nil {
		return err
	}
	if _, ok := raw[name]; !ok {
		return nil
	}
	delete(raw, name)
	return s.writeRaw(ctx, raw)
}

// LoadAll lee el documento. Si falta el archivo devuelve ErrNoData; si el
// documento no es un objeto JSON devuelve el error de parseo envuelto en
// ErrCorrupt. Las entradas que no se pueden decodificar se saltean y se
// informan en *PartialLoadError junto con el resto de los registros.
func (s *Store) LoadAll(ctx context.Context) (map[string]pets.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	raw, err := s.readRaw()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	out := make(map[string]pets.Record, len(raw))
	skipped := map[string]error{}
	for key, msg := range raw {
		var r pets.Record
		if err := json.Unmarshal(msg, &r); err != nil {
			skipped[key] = err
			continue
		}
		out[key] = r
	}
	if len(skipped) > 0 {
		return out, &pets.PartialLoadError{Skipped: skipped}
	}
	return out, nil
}

func (s *Store) SaveAll(ctx context.Context, records map[string]pets.Record) error {
	raw := make(map[string]json.RawMessage, len(records))
	for key, r := range records {
		b, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encode %q: %w", key, err)
		}
		raw[key] = b
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeRaw(ctx, raw)
}

// Quarantine renombra el documento a <path>.corrupt-<unix> sin tocar su
// contenido.
func (s *Store) Quarantine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	dst := fmt.Sprintf("%s.corrupt-%d", s.path, time.Now().Unix())
	if err := os.Rename(s.path, dst); err != nil {
		return "", fmt.Errorf("quarantine %s: %w", s.path, err)
	}
	return dst, nil
}

func (s *Store) readRaw() (map[string]json.RawMessage, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, pets.ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, pets.ErrNoData
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w: %w", s.path, pets.ErrCorrupt, err)
	}
	return raw, nil
}

// writeRaw escribe en un temporal del mismo directorio y renombra, así un
// corte a mitad de escritura nunca deja el documento truncado.
func (s *Store) writeRaw(ctx context.Context, raw map[string]json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// json.MarshalIndent ordena las claves del mapa.
	b, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(append(b, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
