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

	"blog-backend/internal/domains/category/model"
	"blog-backend/pkg/database"
	"blog-backend/pkg/logger"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

type categoryRow struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description *string
	Color       *string
	PostCount   int32
	Published   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r *categoryRow) scan(row pgx.Row) error {
	return row.Scan(
		&r.ID, &r.Name, &r.Slug, &r.Description, &r.Color,
		&r.PostCount, &r.Published, &r.CreatedAt, &r.UpdatedAt,
	)
}

// toModel normalizes a row: blank optional strings become nil, times are UTC.
func (r *categoryRow) toModel() model.Category {
	return model.Category{
		ID:                 r.ID,
		Name:               r.Name,
		Slug:               r.Slug,
		Description:        nilIfBlank(r.Description),
		Color:              nilIfBlank(r.Color),
		PostCount:          int(r.PostCount),
		PublishedPostCount: int(r.Published),
		CreatedAt:          r.CreatedAt.UTC(),
		UpdatedAt:          r.UpdatedAt.UTC(),
	}
}

func nilIfBlank(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// ========== READ ==========

func (r *postgresRepository) FindMany(ctx context.Context, q model.ListQuery) ([]model.Category, int64, error) {
	listSQL, countSQL, args := buildListQuery(q)

	var total int64
	if err := r.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	rows, err := r.pool.Query(ctx, listSQL, append(args, limitOffset(q)...)...)
	if err != nil {
		logger.Error("FindMany: query categories failed", err)
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]model.Category, 0, q.Limit)
	for rows.Next() {
		var row categoryRow
		if err := row.scan(rows); err != nil {
			return nil, 0, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, row.toModel())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, total, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	return r.findOne(ctx, "c.id = $1", id)
}

func (r *postgresRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return r.findOne(ctx, "c.slug = $1", slug)
}

func (r *postgresRepository) findOne(ctx context.Context, cond string, arg any) (*model.Category, error) {
	var row categoryRow
	err := row.scan(r.pool.QueryRow(ctx, baseSelect+" WHERE "+cond+" GROUP BY c.id", arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	category := row.toModel()
	return &category, nil
}

// ========== WRITE ==========

func (r *postgresRepository) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	const query = `
		INSERT INTO categories (id, name, slug, description, color)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		category.ID,
		category.Name,
		category.Slug,
		category.Description,
		category.Color,
	)
	if err != nil {
		return nil, translateError(err, category.Name, category.Slug)
	}

	return r.refetch(ctx, category.ID)
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, patch model.CategoryPatch) (*model.Category, error) {
	sets := []string{"updated_at = now()"}
	args := []any{id}

	add := func(column string, value *string, nullable bool) {
		if value == nil {
			return
		}
		if nullable && *value == "" {
			sets = append(sets, column+" = NULL")
			return
		}
		args = append(args, *value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("name", patch.Name, false)
	add("slug", patch.Slug, false)
	add("description", patch.Description, true)
	add("color", patch.Color, true)

	tag, err := r.pool.Exec(ctx, "UPDATE categories SET "+strings.Join(sets, ", ")+" WHERE id = $1", args...)
	if err != nil {
		return nil, translateError(err, derefOr(patch.Name), derefOr(patch.Slug))
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrCategoryNotFound
	}

	return r.refetch(ctx, id)
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var inUse bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE category_id = $1)`, id).Scan(&inUse); err != nil {
		return fmt.Errorf("failed to check category usage: %w", err)
	}
	if inUse {
		return model.ErrCategoryHasPosts
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		// a post may have been attached between the check and the delete
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return model.ErrCategoryHasPosts
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}
	return nil
}

func (r *postgresRepository) refetch(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	category, err := r.FindByID(ctx, id)
	if errors.Is(err, model.ErrCategoryNotFound) {
		logger.Warn("category missing after write", map[string]interface{}{"category_id": id.String()})
		return nil, model.ErrRefetchFailed
	}
	return category, err
}

func translateError(err error, name, slug string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		switch pgErr.ConstraintName {
		case "categories_slug_key":
			return model.NewDuplicateSlug(slug)
		case "categories_name_key":
			return model.NewDuplicateName(name)
		}
	}
	logger.Error("category write failed", err)
	return fmt.Errorf("failed to write category: %w", err)
}

func derefOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ========== EXISTS ==========

func (r *postgresRepository) ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM categories WHERE slug = $1 AND ($2::uuid IS NULL OR id <> $2))`

	var found bool
	err := r.pool.QueryRow(ctx, query, slug, excludeID).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("failed to check category slug: %w", err)
	}
	return found, nil
}

func (r *postgresRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM categories WHERE name = $1 AND ($2::uuid IS NULL OR id <> $2))`

	var found bool
	err := r.pool.QueryRow(ctx, query, name, excludeID).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}
	return found, nil
}

// ========== COUNTERS ==========

func (r *postgresRepository) UpdatePostCount(ctx context.Context, id uuid.UUID) error {
	return RecountCategories(ctx, r.pool, id)
}

func (r *postgresRepository) ReconcileAll(ctx context.Context) (int64, error) {
	const query = `
		UPDATE categories c
		SET post_count = x.n
		FROM (
			SELECT c2.id, COUNT(p.id)::int AS n
			FROM categories c2
			LEFT JOIN posts p ON p.category_id = c2.id
			GROUP BY c2.id
		) x
		WHERE x.id = c.id AND c.post_count <> x.n
	`

	tag, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to reconcile category counts: %w", err)
	}
	return tag.RowsAffected(), nil
}

// RecountCategories recomputes post_count for the given categories. Passing
// a pgx.Tx keeps the recount inside the caller's unit of work.
func RecountCategories(ctx context.Context, db database.DBTX, ids ...uuid.UUID) error {
	valid := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id != uuid.Nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return nil
	}

	const query = `
		UPDATE categories c
		SET post_count = (SELECT COUNT(*) FROM posts p WHERE p.category_id = c.id)
		WHERE c.id = ANY($1)
	`

	if _, err := db.Exec(ctx, query, valid); err != nil {
		return fmt.Errorf("failed to recount categories: %w", err)
	}
	return nil
}
