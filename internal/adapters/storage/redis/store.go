// Package redis guarda el documento de mascotas en un hash: campo = nombre,
// valor = registro JSON.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"petverse/internal/domain/pets"

	"github.com/redis/go-redis/v9"
)

const DefaultKey = "petverse:pets"

var _ pets.Store = (*Store)(nil)

type Store struct {
	rdb *redis.Client
	key string
}

// Connect parsea la URL (redis://...), hace ping y devuelve el cliente.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(strings.TrimSpace(url))
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

func New(rdb *redis.Client, key string) *Store {
	if strings.TrimSpace(key) == "" {
		key = DefaultKey
	}
	return &Store{rdb: rdb, key: key}
}

func (s *Store) Get(ctx context.Context, name string) (pets.Record, error) {
	raw, err := s.rdb.HGet(ctx, s.key, name).Result()
	if errors.Is(err, redis.Nil) {
		return pets.Record{}, pets.ErrRecordNotFound
	}
	if err != nil {
		return pets.Record{}, fmt.Errorf("hget %q: %w", name, err)
	}
	var r pets.Record
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return pets.Record{}, fmt.Errorf("decode %q: %w", name, err)
	}
	return r, nil
}

func (s *Store) Put(ctx context.Context, r pets.Record) error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("pet name required")
	}
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode %q: %w", r.Name, err)
	}
	if err := s.rdb.HSet(ctx, s.key, r.Name, string(b)).Err(); err != nil {
		return fmt.Errorf("hset %q: %w", r.Name, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	if err := s.rdb.HDel(ctx, s.key, name).Err(); err != nil {
		return fmt.Errorf("hdel %q: %w", name, err)
	}
	return nil
}

func (s *Store) LoadAll(ctx context.Context) (map[string]pets.Record, error) {
	all, err := s.rdb.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall: %w", err)
	}
	if len(all) == 0 {
		return nil, pets.ErrNoData
	}

	out := make(map[string]pets.Record, len(all))
	skipped := map[string]error{}
	for name, raw := range all {
		var r pets.Record
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			skipped[name] = err
			continue
		}
		out[name] = r
	}
	if len(skipped) > 0 {
		return out, &pets.PartialLoadError{Skipped: skipped}
	}
	return out, nil
}

// SaveAll reemplaza el hash de forma atómica (MULTI/EXEC).
func (s *Store) SaveAll(ctx context.Context, records map[string]pets.Record) error {
	values := make(map[string]any, len(records))
	for name, r := range records {
		b, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encode %q: %w", name, err)
		}
		values[name] = string(b)
	}

	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, s.key)
		if len(values) > 0 {
			p.HSet(ctx, s.key, values)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save all: %w", err)
	}
	return nil
}
