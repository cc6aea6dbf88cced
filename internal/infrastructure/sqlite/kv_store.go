package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/wayfarer/internal/kv"
	"github.com/zjrosen/wayfarer/internal/tracing"
)

// Store implements kv.Store on the kv table.
type Store struct {
	db         *sql.DB
	quotaBytes int
	tracer     trace.Tracer
}

// Ensure Store implements kv.Store.
var _ kv.Store = (*Store)(nil)

// Get implements kv.Store.
func (s *Store) Get(key string) (string, bool, error) {
	_, span := s.tracer.Start(context.Background(), tracing.SpanKVGet, trace.WithAttributes(attribute.String(tracing.AttrKVKey, key)))
	defer span.End()

	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		err = fmt.Errorf("getting %q: %w", key, err)
		tracing.RecordError(span, err)
		return "", false, err
	}
	return value, true, nil
}

// Set implements kv.Store. Returns an error wrapping kv.ErrQuotaExceeded
// when the write would push the table past its quota.
func (s *Store) Set(key, value string) error {
	_, span := s.tracer.Start(context.Background(), tracing.SpanKVSet, trace.WithAttributes(
		attribute.String(tracing.AttrKVKey, key),
		attribute.Int(tracing.AttrKVBytes, len(value)),
	))
	defer span.End()

	if s.quotaBytes > 0 {
		var used int64
		err := s.db.QueryRow(
			`SELECT COALESCE(SUM(LENGTH(CAST(key AS BLOB)) + LENGTH(CAST(value AS BLOB))), 0) FROM kv WHERE key != ?`,
			key,
		).Scan(&used)
		if err != nil {
			err = fmt.Errorf("measuring quota: %w", err)
			tracing.RecordError(span, err)
			return err
		}
		if int(used)+len(key)+len(value) > s.quotaBytes {
			err = fmt.Errorf("setting %q (%d bytes): %w", key, len(value), kv.ErrQuotaExceeded)
			tracing.RecordError(span, err)
			return err
		}
	}

	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UnixMilli(),
	)
	if err != nil {
		err = fmt.Errorf("setting %q: %w", key, err)
		tracing.RecordError(span, err)
		return err
	}
	return nil
}

// Remove implements kv.Store.
func (s *Store) Remove(key string) error {
	_, span := s.tracer.Start(context.Background(), tracing.SpanKVRemove, trace.WithAttributes(attribute.String(tracing.AttrKVKey, key)))
	defer span.End()

	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		err = fmt.Errorf("removing %q: %w", key, err)
		tracing.RecordError(span, err)
		return err
	}
	return nil
}

// Keys returns all stored keys in lexical order.
func (s *Store) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
