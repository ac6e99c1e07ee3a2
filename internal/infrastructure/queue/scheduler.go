package queue

import (
	"fmt"
	"log"

	"github.com/hibiken/asynq"
)

// Scheduler registers the periodic tasks. Runs inside the worker
// process next to the asynq server.
type Scheduler struct {
	scheduler *asynq.Scheduler
}

// NewScheduler creates the scheduler with the recurring jobs wired in.
func NewScheduler(redisAddr, redisPassword string, redisDB int) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		},
		nil,
	)

	return &Scheduler{scheduler: scheduler}
}

// Register wires the cron entries. Separate from the constructor so a
// failed registration surfaces as an error, not a half-built scheduler.
func (s *Scheduler) Register() error {
	// Popular tags are served from Redis; recompute them every 10
	// minutes so the cache survives article churn.
	entryID, err := s.scheduler.Register("*/10 * * * *", NewTagRefreshPopularTask())
	if err != nil {
		return fmt.Errorf("register %s: %w", TypeTagRefreshPopular, err)
	}
	log.Printf("[SCHEDULER] Registered %s (entry %s)", TypeTagRefreshPopular, entryID)

	return nil
}

// Run starts the scheduler loop; blocks until Shutdown.
func (s *Scheduler) Run() error {
	return s.scheduler.Run()
}

// Start launches the scheduler without blocking.
func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

// Shutdown stops the scheduler gracefully.
func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
