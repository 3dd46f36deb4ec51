// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmptyJobName    = errors.New("job name is required")
	ErrInvalidInterval = errors.New("job interval must be positive")
)

// Service wraps a gocron scheduler.
type Service struct {
	scheduler gocron.Scheduler
	log       *zap.SugaredLogger
	stopOnce  sync.Once
	stopErr   error
}

// New builds a scheduler whose job failures and panics are logged.
func New(log *zap.SugaredLogger) (*Service, error) {
	sched, err := gocron.NewScheduler(
		gocron.WithGlobalJobOptions(
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithError(func(jobID uuid.UUID, jobName string, err error) {
					log.Errorw("scheduler job failed", "job_id", jobID.String(), "job_name", jobName, "error", err)
				}),
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					log.Errorw("scheduler job panicked", "job_id", jobID.String(), "job_name", jobName, "panic", recoverData)
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}
	return &Service{scheduler: sched, log: log}, nil
}

// Start begins running scheduled jobs.
func (s *Service) Start() {
	s.log.Info("scheduler starting")
	s.scheduler.Start()
}

// Stop shuts down the scheduler and waits for running jobs. Safe to call twice.
func (s *Service) Stop() error {
	s.stopOnce.Do(func() {
		s.log.Info("scheduler stopping")
		s.stopErr = s.scheduler.Shutdown()
	})
	return s.stopErr
}

// AddIntervalJob runs task every interval, the first time right after Start.
func (s *Service) AddIntervalJob(name string, every time.Duration, task func() error) (gocron.Job, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyJobName
	}
	if every <= 0 {
		return nil, ErrInvalidInterval
	}

	job, err := s.scheduler.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(task),
		gocron.WithName(name),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		s.log.Errorw("failed to register scheduler job", "job_name", name, "error", err)
		return nil, err
	}
	s.log.Infow("scheduler job registered", "job_name", name, "every", every.String())
	return job, nil
}
