package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	categoryRepo "blog-backend/internal/domains/category/repository"
	"blog-backend/internal/domains/post/model"
	tagRepo "blog-backend/internal/domains/tag/repository"
	"blog-backend/pkg/database"
	"blog-backend/pkg/logger"
)

const (
	pgUniqueViolation  = "23505"
	constraintPostSlug = "posts_slug_key"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// ========== Row mapping ==========

type postRow struct {
	ID            uuid.UUID
	Title         string
	Slug          string
	Content       string
	Excerpt       *string
	CoverImage    *string
	Published     bool
	ViewCount     int32
	CategoryID    uuid.UUID
	AuthorID      uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
	PublishedAt   *time.Time
	CategoryName  string
	CategorySlug  string
	CategoryColor *string
	AuthorName    string
	AuthorImage   *string
}

func scanPost(row pgx.Row) (*postRow, error) {
	r := &postRow{}
	err := row.Scan(
		&r.ID, &r.Title, &r.Slug, &r.Content, &r.Excerpt, &r.CoverImage, &r.Published,
		&r.ViewCount, &r.CategoryID, &r.AuthorID, &r.CreatedAt, &r.UpdatedAt, &r.PublishedAt,
		&r.CategoryName, &r.CategorySlug, &r.CategoryColor,
		&r.AuthorName, &r.AuthorImage,
	)
	return r, err
}

// toModel is the single place where nullable columns get their defaults.
func (r *postRow) toModel() model.Post {
	var publishedAt *time.Time
	if r.PublishedAt != nil {
		t := r.PublishedAt.UTC()
		publishedAt = &t
	}

	return model.Post{
		ID:          r.ID,
		Title:       r.Title,
		Slug:        r.Slug,
		Content:     r.Content,
		Excerpt:     emptyToNil(r.Excerpt),
		CoverImage:  emptyToNil(r.CoverImage),
		Published:   r.Published,
		ViewCount:   max(int(r.ViewCount), 0),
		CategoryID:  r.CategoryID,
		AuthorID:    r.AuthorID,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
		PublishedAt: publishedAt,
		Category: &model.CategorySummary{
			ID:    r.CategoryID,
			Name:  r.CategoryName,
			Slug:  r.CategorySlug,
			Color: emptyToNil(r.CategoryColor),
		},
		Author: &model.AuthorSummary{
			ID:    r.AuthorID,
			Name:  r.AuthorName,
			Image: emptyToNil(r.AuthorImage),
		},
		Tags: []model.TagSummary{},
	}
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// attachTags loads the tags of all posts with one query.
func (r *postgresRepository) attachTags(ctx context.Context, posts []model.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(posts))
	index := make(map[uuid.UUID]int, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
		index[p.ID] = i
	}

	rows, err := r.pool.Query(ctx, `
		SELECT pt.post_id, t.id, t.name, t.slug
		FROM post_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id = ANY($1)
		ORDER BY t.name`, ids)
	if err != nil {
		return fmt.Errorf("failed to load post tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			postID uuid.UUID
			tag    model.TagSummary
		)
		if err := rows.Scan(&postID, &tag.ID, &tag.Name, &tag.Slug); err != nil {
			return fmt.Errorf("failed to scan post tag: %w", err)
		}
		if i, ok := index[postID]; ok {
			posts[i].Tags = append(posts[i].Tags, tag)
		}
	}
	return rows.Err()
}

// ========== READ ==========

func (r *postgresRepository) FindMany(ctx context.Context, q model.ListQuery) ([]model.Post, int64, error) {
	listSQL, countSQL, args := buildPostListQuery(q)

	var total int64
	if err := r.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		logger.Error("FindMany: count posts failed", err)
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	rows, err := r.pool.Query(ctx, listSQL, append(args, postPageArgs(q)...)...)
	if err != nil {
		logger.Error("FindMany: query posts failed", err)
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]model.Post, 0, q.Limit)
	for rows.Next() {
		row, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, row.toModel())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate posts: %w", err)
	}
	rows.Close()

	if err := r.attachTags(ctx, posts); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	return r.findOne(ctx, "p.id = $1", id)
}

func (r *postgresRepository) FindBySlug(ctx context.Context, slug string) (*model.Post, error) {
	return r.findOne(ctx, "p.slug = $1", slug)
}

func (r *postgresRepository) findOne(ctx context.Context, cond string, arg any) (*model.Post, error) {
	row, err := scanPost(r.pool.QueryRow(ctx, "SELECT"+postColumns+postJoins+" WHERE "+cond, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	posts := []model.Post{row.toModel()}
	if err := r.attachTags(ctx, posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

func (r *postgresRepository) ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1 AND ($2::uuid IS NULL OR id <> $2))`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check post slug: %w", err)
	}
	return exists, nil
}

// ========== WRITE ==========

func (r *postgresRepository) Create(ctx context.Context, post model.NewPost) (*model.Post, error) {
	const insertPost = `
		INSERT INTO posts (
			id, title, slug, content, excerpt, cover_image,
			published, view_count, category_id, author_id, published_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $9, CASE WHEN $7 THEN now() END)
	`

	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, insertPost,
			post.ID,
			post.Title,
			post.Slug,
			post.Content,
			post.Excerpt,
			post.CoverImage,
			post.Published,
			post.CategoryID,
			post.AuthorID,
		)
		if err != nil {
			return translateWriteError(err, post.Slug)
		}

		if err := insertTags(ctx, tx, post.ID, post.TagIDs); err != nil {
			return err
		}
		if err := tagRepo.RecountTags(ctx, tx, post.TagIDs); err != nil {
			return err
		}
		return categoryRepo.RecountCategories(ctx, tx, post.CategoryID)
	})
	if err != nil {
		return nil, err
	}

	return r.refetch(ctx, post.ID)
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, patch model.PostPatch) (*model.Post, error) {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		oldCategory, oldTags, err := lockPost(ctx, tx, id)
		if err != nil {
			return err
		}

		setSQL, args := buildPostUpdate(patch)
		if _, err := tx.Exec(ctx, setSQL, append([]any{id}, args...)...); err != nil {
			slug := ""
			if patch.Slug != nil {
				slug = *patch.Slug
			}
			return translateWriteError(err, slug)
		}

		affectedTags := oldTags
		if patch.TagIDs != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM post_tags WHERE post_id = $1`, id); err != nil {
				return fmt.Errorf("failed to clear post tags: %w", err)
			}
			if err := insertTags(ctx, tx, id, *patch.TagIDs); err != nil {
				return err
			}
			affectedTags = append(affectedTags, *patch.TagIDs...)
		}

		if err := tagRepo.RecountTags(ctx, tx, affectedTags); err != nil {
			return err
		}

		categories := []uuid.UUID{oldCategory}
		if patch.CategoryID != nil && *patch.CategoryID != oldCategory {
			categories = append(categories, *patch.CategoryID)
		}
		return categoryRepo.RecountCategories(ctx, tx, categories...)
	})
	if err != nil {
		return nil, err
	}

	return r.refetch(ctx, id)
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		category, tags, err := lockPost(ctx, tx, id)
		if err != nil {
			return err
		}

		// post_tags rows go with the post through ON DELETE CASCADE
		if _, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}

		if err := tagRepo.RecountTags(ctx, tx, tags); err != nil {
			return err
		}
		return categoryRepo.RecountCategories(ctx, tx, category)
	})
}

func (r *postgresRepository) IncrementViewCount(ctx context.Context, id uuid.UUID, delta int64) error {
	if delta <= 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx, `UPDATE posts SET view_count = view_count + $2 WHERE id = $1`, id, delta)
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	return nil
}

// ========== Helpers ==========

// lockPost row-locks the post and returns its category and current tags.
func lockPost(ctx context.Context, tx pgx.Tx, id uuid.UUID) (uuid.UUID, []uuid.UUID, error) {
	var category uuid.UUID
	err := tx.QueryRow(ctx, `SELECT category_id FROM posts WHERE id = $1 FOR UPDATE`, id).Scan(&category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, nil, model.ErrPostNotFound
		}
		return uuid.Nil, nil, fmt.Errorf("failed to lock post: %w", err)
	}

	rows, err := tx.Query(ctx, `SELECT tag_id FROM post_tags WHERE post_id = $1`, id)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("failed to read post tags: %w", err)
	}
	tags, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("failed to read post tags: %w", err)
	}

	return category, tags, nil
}

func insertTags(ctx context.Context, db database.DBTX, postID uuid.UUID, tagIDs []uuid.UUID) error {
	if len(tagIDs) == 0 {
		return nil
	}

	const query = `
		INSERT INTO post_tags (post_id, tag_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT (post_id, tag_id) DO NOTHING
	`
	if _, err := db.Exec(ctx, query, postID, tagIDs); err != nil {
		return fmt.Errorf("failed to attach tags: %w", err)
	}
	return nil
}

func (r *postgresRepository) refetch(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, err := r.FindByID(ctx, id)
	if errors.Is(err, model.ErrPostNotFound) {
		logger.Warn("post missing after write", map[string]interface{}{"post_id": id.String()})
		return nil, model.ErrRefetchFailed
	}
	return post, err
}

func translateWriteError(err error, slug string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == constraintPostSlug {
		return model.NewDuplicateSlug(slug)
	}
	logger.Error("post write failed", err)
	return fmt.Errorf("failed to write post: %w", err)
}
