package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"blog-backend/pkg/cache"
	"blog-backend/pkg/logger"
)

const viewKeyPrefix = "views:post:"

// ViewStore persists accumulated view counts.
type ViewStore interface {
	IncrementViewCount(ctx context.Context, id uuid.UUID, delta int64) error
}

// ViewCounter buffers post views in the cache and flushes them to the store.
type ViewCounter struct {
	cache cache.Cache
	store ViewStore
}

func NewViewCounter(c cache.Cache, store ViewStore) *ViewCounter {
	return &ViewCounter{cache: c, store: store}
}

func viewKey(id uuid.UUID) string {
	return viewKeyPrefix + id.String()
}

// Record counts one view. Without a working cache the store is updated directly.
func (v *ViewCounter) Record(ctx context.Context, id uuid.UUID) error {
	if v.cache != nil {
		_, err := v.cache.Increment(ctx, viewKey(id))
		if err == nil {
			return nil
		}
		logger.Warn("view counter cache unavailable, writing through", map[string]interface{}{
			"post_id": id.String(),
			"error":   err.Error(),
		})
	}
	return v.store.IncrementViewCount(ctx, id, 1)
}

// FlushResult summarizes one flush run.
type FlushResult struct {
	Posts int
	Views int64
}

// Flush moves every buffered counter into the store. A counter whose store
// write fails is put back so the next run retries it.
func (v *ViewCounter) Flush(ctx context.Context) (FlushResult, error) {
	var res FlushResult
	if v.cache == nil {
		return res, nil
	}

	keys, err := v.cache.Keys(ctx, viewKeyPrefix+"*")
	if err != nil {
		return res, fmt.Errorf("failed to list view counters: %w", err)
	}

	var firstErr error
	for _, key := range keys {
		id, err := uuid.Parse(strings.TrimPrefix(key, viewKeyPrefix))
		if err != nil {
			_ = v.cache.Delete(ctx, key)
			continue
		}

		n, ok, err := v.cache.GetDelInt(ctx, key)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if !ok || n <= 0 {
			continue
		}

		if err := v.store.IncrementViewCount(ctx, id, n); err != nil {
			if _, rerr := v.cache.IncrementBy(ctx, key, n); rerr != nil {
				logger.Error("lost buffered views", rerr)
			}
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		res.Posts++
		res.Views += n
	}

	return res, firstErr
}
