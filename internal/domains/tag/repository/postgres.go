package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/tag/model"
	"blog-backend/pkg/database"
	"blog-backend/pkg/logger"
)

const (
	pgUniqueViolation = "23505"

	constraintSlug = "tags_slug_key"
	constraintName = "tags_name_key"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// ========== Scanning ==========

type tagRow struct {
	ID                 uuid.UUID
	Name               string
	Slug               string
	PostCount          int32
	PublishedPostCount int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func scanTag(row pgx.Row) (*tagRow, error) {
	r := &tagRow{}
	err := row.Scan(
		&r.ID,
		&r.Name,
		&r.Slug,
		&r.PostCount,
		&r.PublishedPostCount,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

func (r *tagRow) toModel() model.Tag {
	return model.Tag{
		ID:                 r.ID,
		Name:               r.Name,
		Slug:               r.Slug,
		PostCount:          int(r.PostCount),
		PublishedPostCount: int(r.PublishedPostCount),
		CreatedAt:          r.CreatedAt.UTC(),
		UpdatedAt:          r.UpdatedAt.UTC(),
	}
}

func collectTags(rows pgx.Rows) ([]model.Tag, error) {
	defer rows.Close()

	tags := make([]model.Tag, 0)
	for rows.Next() {
		r, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, r.toModel())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}
	return tags, nil
}

// ========== READ ==========

func (r *postgresRepository) FindMany(ctx context.Context, q model.ListQuery) ([]model.Tag, int64, error) {
	listSQL, countSQL, args := buildListQuery(q)

	var total int64
	if err := r.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		logger.Error("FindMany: count tags failed", err)
		return nil, 0, fmt.Errorf("failed to count tags: %w", err)
	}

	rows, err := r.pool.Query(ctx, listSQL, append(args, pageArgs(q)...)...)
	if err != nil {
		logger.Error("FindMany: query tags failed", err)
		return nil, 0, fmt.Errorf("failed to list tags: %w", err)
	}

	tags, err := collectTags(rows)
	if err != nil {
		return nil, 0, err
	}
	return tags, total, nil
}

func (r *postgresRepository) findOne(ctx context.Context, where string, arg any) (*model.Tag, error) {
	query := "SELECT" + selectColumns + fromWithPosts + " WHERE " + where + " GROUP BY t.id"

	row, err := scanTag(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	tag := row.toModel()
	return &tag, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Tag, error) {
	return r.findOne(ctx, "t.id = $1", id)
}

func (r *postgresRepository) FindBySlug(ctx context.Context, slug string) (*model.Tag, error) {
	return r.findOne(ctx, "t.slug = $1", slug)
}

func (r *postgresRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Tag, error) {
	if len(ids) == 0 {
		return []model.Tag{}, nil
	}

	query := "SELECT" + selectColumns + fromWithPosts + " WHERE t.id = ANY($1) GROUP BY t.id ORDER BY t.name"
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags by ids: %w", err)
	}
	return collectTags(rows)
}

// ========== WRITE ==========

func (r *postgresRepository) Create(ctx context.Context, tag *model.Tag) (*model.Tag, error) {
	const query = `
		INSERT INTO tags (id, name, slug, post_count, created_at, updated_at)
		VALUES ($1, $2, $3, 0, now(), now())
	`

	if _, err := r.pool.Exec(ctx, query, tag.ID, tag.Name, tag.Slug); err != nil {
		return nil, mapWriteError(err, tag.Name, tag.Slug)
	}

	if err := RecountTags(ctx, r.pool, []uuid.UUID{tag.ID}); err != nil {
		return nil, err
	}

	return r.refetch(ctx, tag.ID)
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, patch model.TagPatch) (*model.Tag, error) {
	sets := []string{"updated_at = now()"}
	args := []any{id}

	if patch.Name != nil {
		args = append(args, *patch.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if patch.Slug != nil {
		args = append(args, *patch.Slug)
		sets = append(sets, fmt.Sprintf("slug = $%d", len(args)))
	}

	query := "UPDATE tags SET " + strings.Join(sets, ", ") + " WHERE id = $1"

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		name, slug := "", ""
		if patch.Name != nil {
			name = *patch.Name
		}
		if patch.Slug != nil {
			slug = *patch.Slug
		}
		return nil, mapWriteError(err, name, slug)
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrTagNotFound
	}

	return r.refetch(ctx, id)
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		logger.Error("Delete: database error", err)
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTagNotFound
	}
	return nil
}

// refetch reads back a row that was just written.
func (r *postgresRepository) refetch(ctx context.Context, id uuid.UUID) (*model.Tag, error) {
	tag, err := r.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrTagNotFound) {
			logger.Warn("refetch: tag vanished after write", map[string]interface{}{"tag_id": id.String()})
			return nil, model.ErrRefetchFailed
		}
		return nil, err
	}
	return tag, nil
}

func mapWriteError(err error, name, slug string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		switch pgErr.ConstraintName {
		case constraintSlug:
			return model.NewDuplicateSlug(slug)
		case constraintName:
			return model.NewDuplicateName(name)
		}
	}
	logger.Error("tag write failed", err)
	return fmt.Errorf("failed to write tag: %w", err)
}

// ========== EXISTS ==========

func (r *postgresRepository) ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	return r.exists(ctx, "slug", slug, excludeID)
}

func (r *postgresRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	return r.exists(ctx, "name", name, excludeID)
}

func (r *postgresRepository) exists(ctx context.Context, column, value string, excludeID *uuid.UUID) (bool, error) {
	query := fmt.Sprintf(
		`SELECT EXISTS (SELECT 1 FROM tags WHERE %s = $1 AND ($2::uuid IS NULL OR id <> $2))`,
		column,
	)

	var found bool
	if err := r.pool.QueryRow(ctx, query, value, excludeID).Scan(&found); err != nil {
		return false, fmt.Errorf("failed to check tag %s: %w", column, err)
	}
	return found, nil
}

// ========== COUNTERS ==========

func (r *postgresRepository) UpdatePostCount(ctx context.Context, id uuid.UUID) error {
	return RecountTags(ctx, r.pool, []uuid.UUID{id})
}

func (r *postgresRepository) UpdateMultiplePostCounts(ctx context.Context, ids []uuid.UUID) error {
	return RecountTags(ctx, r.pool, ids)
}

func (r *postgresRepository) ReconcileAll(ctx context.Context) (int64, error) {
	const query = `
		UPDATE tags t
		SET post_count = c.n
		FROM (
			SELECT t2.id, COUNT(pt.post_id)::int AS n
			FROM tags t2
			LEFT JOIN post_tags pt ON pt.tag_id = t2.id
			GROUP BY t2.id
		) c
		WHERE c.id = t.id AND t.post_count <> c.n
	`

	tag, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to reconcile tag counts: %w", err)
	}
	return tag.RowsAffected(), nil
}

// RecountTags recomputes post_count for ids from post_tags. db may be a
// transaction so the recount commits together with the association change.
func RecountTags(ctx context.Context, db database.DBTX, ids []uuid.UUID) error {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return nil
	}

	const query = `
		UPDATE tags t
		SET post_count = (SELECT COUNT(*) FROM post_tags pt WHERE pt.tag_id = t.id)
		WHERE t.id = ANY($1)
	`

	if _, err := db.Exec(ctx, query, ids); err != nil {
		return fmt.Errorf("failed to recount tags: %w", err)
	}
	return nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
