package casestore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/goccy/go-json"
	goredis "github.com/redis/go-redis/v9"

	"offboard/internal/record"
)

var (
	_ Store  = (*RedisStore)(nil)
	_ Lister = (*RedisStore)(nil)
)

// DefaultKeyPrefix prefixes every key written by [RedisStore].
const DefaultKeyPrefix = "offboard:"

// RedisStore keeps each case as a JSON string under {prefix}case:{id} and
// tracks open cases in the {prefix}case_ids set.
type RedisStore struct {
	client goredis.Cmdable
	prefix string
	logger *slog.Logger
}

// RedisOption configures a [RedisStore].
type RedisOption func(*RedisStore)

// WithKeyPrefix overrides [DefaultKeyPrefix].
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = prefix }
}

// WithRedisLogger sets the logger used by the store.
func WithRedisLogger(l *slog.Logger) RedisOption {
	return func(s *RedisStore) { s.logger = l }
}

// NewRedisStore creates a Redis-backed store. The caller owns the client
// lifecycle.
func NewRedisStore(client goredis.Cmdable, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, prefix: DefaultKeyPrefix, logger: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// caseKey returns {prefix}case:{id}.
func (s *RedisStore) caseKey(employeeID string) string { return s.prefix + "case:" + employeeID }

// indexKey returns the set tracking stored employee ids.
func (s *RedisStore) indexKey() string { return s.prefix + "case_ids" }

// Ping verifies the Redis connection is alive.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Load fetches and decodes the employee's case.
func (s *RedisStore) Load(ctx context.Context, employeeID string) (record.Record, error) {
	if err := ValidateEmployeeID(employeeID); err != nil {
		return record.Record{}, err
	}

	data, err := s.client.Get(ctx, s.caseKey(employeeID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return record.Record{}, ErrNotFound
		}
		return record.Record{}, fmt.Errorf("casestore/redis: load %s: %w", employeeID, err)
	}

	var rec record.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return record.Record{}, fmt.Errorf("casestore/redis: decode %s: %w", employeeID, err)
	}
	return rec.Normalize(), nil
}

// Save encodes the case and stores it together with the index entry.
func (s *RedisStore) Save(ctx context.Context, employeeID string, rec record.Record) error {
	if err := ValidateEmployeeID(employeeID); err != nil {
		return err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("casestore/redis: encode %s: %w", employeeID, err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.caseKey(employeeID), data, 0)
	pipe.SAdd(ctx, s.indexKey(), employeeID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("casestore/redis: save %s: %w", employeeID, err)
	}

	s.logger.Debug("case saved", slog.String("employee_id", employeeID), slog.String("backend", "redis"))
	return nil
}

// Remove deletes the case and its index entry.
func (s *RedisStore) Remove(ctx context.Context, employeeID string) error {
	if err := ValidateEmployeeID(employeeID); err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.caseKey(employeeID))
	pipe.SRem(ctx, s.indexKey(), employeeID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("casestore/redis: remove %s: %w", employeeID, err)
	}
	return nil
}

// List returns the indexed employee ids, sorted.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("casestore/redis: list: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}
