package main

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/config"
	"blog-backend/internal/shared"
	"blog-backend/pkg/container"
)

type asynqServer struct {
	*asynq.Server
}

// setupAsynqServer builds the task server and starts it in the background.
func setupAsynqServer(cfg *config.Config, c *container.Container) *asynqServer {
	mux := asynq.NewServeMux()
	RegisterHandlers(mux, c)

	concurrency := cfg.Worker.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	srv := asynq.NewServer(
		container.RedisConnOpt(cfg.Redis),
		asynq.Config{
			Queues: map[string]int{
				shared.QueueDefault:     10,
				shared.QueueMaintenance: 2,
			},
			Concurrency: concurrency,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				retried, _ := asynq.GetRetryCount(ctx)
				log.Error().
					Err(err).
					Str("task_type", task.Type()).
					Int("retried", retried).
					Msg("task failed")
			}),
		},
	)

	go func() {
		log.Info().Int("concurrency", concurrency).Msg("worker starting")
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("worker failed")
		}
	}()

	return &asynqServer{Server: srv}
}

// Shutdown waits for in-flight tasks up to asynq's shutdown timeout.
func (s *asynqServer) Shutdown() {
	s.Server.Shutdown()
	log.Info().Msg("worker server stopped")
}
