package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"blog-backend/internal/shared"
)

// Client enqueues background tasks from the API process.
type Client struct {
	client *asynq.Client
}

func NewClient(redis asynq.RedisConnOpt) *Client {
	return &Client{client: asynq.NewClient(redis)}
}

// EnqueueReconcileCounts schedules a full counter reconcile. Requests within
// the same minute collapse into one task.
func (c *Client) EnqueueReconcileCounts(ctx context.Context, requestedBy string) (string, error) {
	task, err := newTask(shared.TypeReconcileCounts, shared.ReconcileCountsPayload{RequestedBy: requestedBy})
	if err != nil {
		return "", err
	}

	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
		asynq.Unique(time.Minute),
	)
	if err != nil {
		return "", fmt.Errorf("enqueue %s: %w", shared.TypeReconcileCounts, err)
	}
	return info.ID, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
