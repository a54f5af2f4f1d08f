package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/shared"
)

// CounterReconciler recomputes a family of denormalized counters from scratch.
type CounterReconciler interface {
	ReconcileAll(ctx context.Context) (int64, error)
}

// ReconcileCountsHandler handles counter:reconcile. Every reconciler runs even
// when an earlier one fails.
type ReconcileCountsHandler struct {
	reconcilers map[string]CounterReconciler
}

func NewReconcileCountsHandler(reconcilers map[string]CounterReconciler) *ReconcileCountsHandler {
	return &ReconcileCountsHandler{reconcilers: reconcilers}
}

func (h *ReconcileCountsHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ReconcileCountsPayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			log.Error().Err(err).Msg("Failed to unmarshal ReconcileCounts payload")
			// A malformed payload will never succeed.
			return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
		}
	}

	var errs []error
	for name, r := range h.reconcilers {
		fixed, err := r.ReconcileAll(ctx)
		if err != nil {
			log.Error().
				Err(err).
				Str("counter", name).
				Msg("Counter reconcile failed")
			errs = append(errs, fmt.Errorf("reconcile %s: %w", name, err))
			continue
		}

		log.Info().
			Str("counter", name).
			Int64("rows_fixed", fixed).
			Str("requested_by", payload.RequestedBy).
			Msg("Counters reconciled")
	}

	return errors.Join(errs...)
}
