package cacheentry

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/social-post-fetcher/internal/domain"
	"github.com/orgball2608/social-post-fetcher/internal/repositories"
	"github.com/orgball2608/social-post-fetcher/pkg/logger"
)

type PgxRepository struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

func NewPgxRepository(pool *pgxpool.Pool, logger logger.Logger) *PgxRepository {
	return &PgxRepository{
		pool:   pool,
		logger: logger.WithComponent("CacheEntryRepo"),
	}
}

var _ Repository = (*PgxRepository)(nil)

func (r *PgxRepository) Get(ctx context.Context, key string, now time.Time) (*domain.CacheEntry, error) {
	query, args, err := repositories.SqBuilder.
		Select("key", "value", "expires_at", "created_at").
		From(tableName).
		Where(sq.Eq{"key": key}).
		Where(sq.Or{
			sq.Eq{"expires_at": nil},
			sq.Gt{"expires_at": now},
		}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var entry domain.CacheEntry
	err = r.pool.QueryRow(ctx, query, args...).Scan(&entry.Key, &entry.Value, &entry.ExpiresAt, &entry.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cache entry: %w", err)
	}

	return &entry, nil
}

func (r *PgxRepository) Upsert(ctx context.Context, entry domain.CacheEntry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query, args, err := repositories.SqBuilder.
		Insert(tableName).
		Columns("key", "value", "expires_at", "created_at").
		Values(entry.Key, entry.Value, entry.ExpiresAt, createdAt).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at, created_at = EXCLUDED.created_at").
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err = r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert cache entry: %w", err)
	}
	return nil
}

func (r *PgxRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := repositories.SqBuilder.
		Delete(tableName).
		Where(sq.NotEq{"expires_at": nil}).
		Where(sq.LtOrEq{"expires_at": now}).
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired cache entries: %w", err)
	}

	return result.RowsAffected(), nil
}
