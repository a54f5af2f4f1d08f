package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is the site_settings key/value store.
type Repository interface {
	// GetAll returns every stored key. Keys never saved are absent.
	GetAll(ctx context.Context) (map[string]string, error)
	// Upsert writes the given keys in one statement; other keys are untouched.
	Upsert(ctx context.Context, values map[string]string) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetAll(ctx context.Context) (map[string]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT key, value FROM site_settings`)
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings: %w", err)
	}
	return out, nil
}

const upsertSQL = `
	INSERT INTO site_settings (key, value, updated_at)
	SELECT k, v, now() FROM unnest($1::text[], $2::text[]) AS s(k, v)
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value, updated_at = now()`

func (r *postgresRepository) Upsert(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	keys, vals := upsertArgs(values)
	if _, err := r.pool.Exec(ctx, upsertSQL, keys, vals); err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}

// upsertArgs splits values into parallel arrays ordered by key.
func upsertArgs(values map[string]string) ([]string, []string) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	vals := make([]string, len(keys))
	for i, k := range keys {
		vals[i] = values[k]
	}
	return keys, vals
}

