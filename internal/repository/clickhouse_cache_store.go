package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domrepo "StockPulse/internal/domain/repository"
	pkgch "StockPulse/pkg/clickhouse"
	applogger "StockPulse/pkg/logger"
)

// CHCacheStore implements the append-only TTL cache on ClickHouse. Every Put
// inserts a fresh row; Get picks the most recent row under the age limit, so
// a concurrent reader sees either the previous row or the fully written new
// one, never a torn entry. Historical rows coexist until Purge removes them.
type CHCacheStore struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

// Schema returns the idempotent DDL for the cache table.
func Schema(database string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.cache_entries (
			kind LowCardinality(String),
			key String,
			payload String,
			created_at DateTime64(3) DEFAULT now64(3)
		) ENGINE = MergeTree
		ORDER BY (kind, key, created_at)
		TTL toDateTime(created_at) + INTERVAL 30 DAY`, database),
	}
}

func NewCHCacheStore(ch *pkgch.Client, database string) *CHCacheStore {
	return &CHCacheStore{db: ch.DB(), table: database + ".cache_entries"}
}

// SetLogger injects a structured logger.
func (s *CHCacheStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHCacheStore) Put(ctx context.Context, kind domrepo.RecordKind, key string, payload []byte) error {
	start := time.Now()
	q := fmt.Sprintf("INSERT INTO %s (kind, key, payload, created_at) VALUES (?, ?, ?, ?)", s.table)
	if _, err := s.db.ExecContext(ctx, q, string(kind), key, string(payload), time.Now()); err != nil {
		if s.l != nil {
			s.l.Error("cache put error",
				applogger.String("kind", string(kind)),
				applogger.String("key", key),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("cache put: %w", err)
	}
	if s.l != nil {
		s.l.Debug("cache put ok",
			applogger.String("kind", string(kind)),
			applogger.String("key", key),
			applogger.Int("bytes", len(payload)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

func (s *CHCacheStore) Get(ctx context.Context, kind domrepo.RecordKind, key string, maxAge time.Duration) ([]byte, error) {
	cutoff := time.Now().Add(-maxAge)
	q := fmt.Sprintf(`
        SELECT payload
        FROM %s
        WHERE kind = ? AND key = ? AND created_at > ?
        ORDER BY created_at DESC
        LIMIT 1
    `, s.table)

	var payload string
	err := s.db.QueryRowContext(ctx, q, string(kind), key, cutoff).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domrepo.ErrCacheMiss
	}
	if err != nil {
		if s.l != nil {
			s.l.Error("cache get error",
				applogger.String("kind", string(kind)),
				applogger.String("key", key),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}
	return []byte(payload), nil
}

func (s *CHCacheStore) Purge(ctx context.Context, olderThan time.Duration) error {
	start := time.Now()
	cutoff := time.Now().Add(-olderThan)
	q := fmt.Sprintf("ALTER TABLE %s DELETE WHERE created_at < ?", s.table)
	if _, err := s.db.ExecContext(ctx, q, cutoff); err != nil {
		return fmt.Errorf("cache purge: %w", err)
	}
	if s.l != nil {
		s.l.Info("cache purge submitted",
			applogger.String("older_than", olderThan.String()),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

func (s *CHCacheStore) Close() error { return nil }

var _ domrepo.CacheStore = (*CHCacheStore)(nil)

// PutJSON marshals a value and writes it through the store.
func PutJSON[T any](ctx context.Context, s domrepo.CacheStore, kind domrepo.RecordKind, key string, v *T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	return s.Put(ctx, kind, key, b)
}

// GetJSON reads the freshest entry under maxAge and unmarshals it.
// Returns ErrCacheMiss when nothing fresh enough exists.
func GetJSON[T any](ctx context.Context, s domrepo.CacheStore, kind domrepo.RecordKind, key string, maxAge time.Duration) (*T, error) {
	b, err := s.Get(ctx, kind, key, maxAge)
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("cache unmarshal: %w", err)
	}
	return &v, nil
}
