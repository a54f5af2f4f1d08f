package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"blog-backend/internal/config"
	"blog-backend/internal/shared"
	"blog-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	cfg       config.WorkerConfig
}

func NewScheduler(redis asynq.RedisConnOpt, cfg config.WorkerConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redis,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler, cfg: cfg}
}

// PeriodicJob is one cron registration.
type PeriodicJob struct {
	Name     string
	Cron     string
	TaskType string
	Payload  interface{}
	Queue    string
	MaxRetry int
	Timeout  time.Duration
}

// Jobs lists the periodic jobs driven by the worker configuration.
func (s *Scheduler) Jobs() []PeriodicJob {
	return []PeriodicJob{
		{
			Name:     "FlushPostViews",
			Cron:     s.cfg.ViewFlushCron,
			TaskType: shared.TypeFlushPostViews,
			Queue:    shared.QueueDefault,
			MaxRetry: 1,
			Timeout:  2 * time.Minute,
		},
		{
			Name:     "ReconcileCounts",
			Cron:     s.cfg.ReconcileCron,
			TaskType: shared.TypeReconcileCounts,
			Payload:  shared.ReconcileCountsPayload{RequestedBy: "scheduler"},
			Queue:    shared.QueueMaintenance,
			MaxRetry: 2,
			Timeout:  10 * time.Minute,
		},
	}
}

// RegisterJobs registers every periodic job. A job with an empty cron spec is disabled.
func (s *Scheduler) RegisterJobs() error {
	for _, job := range s.Jobs() {
		if job.Cron == "" {
			logger.Info("periodic job disabled", map[string]interface{}{"job": job.Name})
			continue
		}

		task, err := newTask(job.TaskType, job.Payload)
		if err != nil {
			return err
		}

		entryID, err := s.scheduler.Register(
			job.Cron,
			task,
			asynq.Queue(job.Queue),
			asynq.MaxRetry(job.MaxRetry),
			asynq.Timeout(job.Timeout),
		)
		if err != nil {
			logger.Error(fmt.Sprintf("Failed to register %s job", job.Name), err)
			return fmt.Errorf("register %s: %w", job.Name, err)
		}

		logger.Info("registered periodic job", map[string]interface{}{
			"job":      job.Name,
			"cron":     job.Cron,
			"entry_id": entryID,
		})
	}
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}

func newTask(taskType string, payload interface{}) (*asynq.Task, error) {
	if payload == nil {
		return asynq.NewTask(taskType, nil), nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", taskType, err)
	}
	return asynq.NewTask(taskType, data), nil
}
