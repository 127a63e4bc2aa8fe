package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"inkwell-backend/internal/shared"
	"inkwell-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddress string) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
	}
}

// RegisterJobs registers all cron jobs
func (s *Scheduler) RegisterJobs() error {
	return s.registerReconcileRollupsJob()
}

// ================================================
// JOB: Reconcile Engagement Rollups (Daily at 3 AM)
// ================================================
// Low traffic time; the engagement write path is two independent
// statements with the counter landing first, so the daily rollups can
// drift behind the counters over a day.
func (s *Scheduler) registerReconcileRollupsJob() error {
	payload, err := json.Marshal(struct{}{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeReconcileRollups, payload)

	_, err = s.scheduler.Register(
		"0 3 * * *", // Daily at 3 AM
		task,
		asynq.Queue(shared.QueueStats),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register ReconcileRollups job", err)
		return err
	}

	logger.Info("Registered ReconcileRollups: daily at 3 AM", map[string]interface{}{})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
