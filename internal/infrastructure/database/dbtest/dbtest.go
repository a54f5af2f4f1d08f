// Package dbtest opens a migrated, empty database for integration tests.
// Tests are skipped unless TEST_DATABASE_URL is set.
package dbtest

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/infrastructure/database"
)

const EnvURL = "TEST_DATABASE_URL"

// Open connects, migrates and truncates every table. The pool is closed on cleanup.
func Open(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv(EnvURL)
	if url == "" {
		t.Skipf("%s not set", EnvURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.NewPostgresDB(&database.DBConfig{URL: url, MaxRetries: 1})
	require.NoError(t, db.Connect(ctx))
	require.NoError(t, db.Migrate(ctx))

	_, err := db.Pool.Exec(ctx, `TRUNCATE post_tags, posts, tags, categories, users, site_settings CASCADE`)
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })
	return db.Pool
}

// SeedUser inserts an admin user and returns its id.
func SeedUser(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()
	id := uuid.Must(uuid.NewV7())
	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, name, role) VALUES ($1, $2, 'Author', 'ADMIN')`,
		id, id.String()+"@example.com",
	)
	require.NoError(t, err)
	return id
}

// SeedCategory inserts a category and returns its id.
func SeedCategory(t *testing.T, pool *pgxpool.Pool, name, slug string) uuid.UUID {
	t.Helper()
	id := uuid.Must(uuid.NewV7())
	_, err := pool.Exec(context.Background(),
		`INSERT INTO categories (id, name, slug) VALUES ($1, $2, $3)`, id, name, slug,
	)
	require.NoError(t, err)
	return id
}

// SeedPost inserts a post with the given tags, without touching any counters.
func SeedPost(t *testing.T, pool *pgxpool.Pool, authorID, categoryID uuid.UUID, slug string, published bool, tagIDs ...uuid.UUID) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	id := uuid.Must(uuid.NewV7())
	_, err := pool.Exec(ctx, `
		INSERT INTO posts (id, title, slug, content, published, category_id, author_id, published_at)
		VALUES ($1, $2, $2, 'body', $3, $4, $5, CASE WHEN $3 THEN now() END)`,
		id, slug, published, categoryID, authorID,
	)
	require.NoError(t, err)
	for _, tagID := range tagIDs {
		_, err = pool.Exec(ctx, `INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`, id, tagID)
		require.NoError(t, err)
	}
	return id
}
