package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/post/service"
)

// ViewFlusher drains buffered view counters into the posts table.
type ViewFlusher interface {
	Flush(ctx context.Context) (service.FlushResult, error)
}

// FlushViewsHandler handles post:flush_views.
type FlushViewsHandler struct {
	flusher ViewFlusher
}

func NewFlushViewsHandler(flusher ViewFlusher) *FlushViewsHandler {
	return &FlushViewsHandler{flusher: flusher}
}

func (h *FlushViewsHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	res, err := h.flusher.Flush(ctx)
	if err != nil {
		log.Error().
			Err(err).
			Int("posts", res.Posts).
			Int64("views", res.Views).
			Msg("View flush finished with errors")
		return fmt.Errorf("flush views: %w", err)
	}

	if res.Posts > 0 {
		log.Info().
			Int("posts", res.Posts).
			Int64("views", res.Views).
			Msg("Buffered views flushed")
	}
	return nil
}
