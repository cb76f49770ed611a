package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const defaultJobTimeout = 2 * time.Minute

var (
	ErrEmptyJobName  = errors.New("job name is required")
	ErrEmptyCronExpr = errors.New("cron expression is required")
)

// Task is a unit of scheduled work. The context is cancelled once the job timeout elapses.
type Task func(ctx context.Context) error

type Scheduler interface {
	AddJob(name, cronExpr string, task Task) (gocron.Job, error)
	Start()
	Stop() error
}

type scheduler struct {
	cron     gocron.Scheduler
	timeout  time.Duration
	stopOnce sync.Once
	stopErr  error
}

func New() (Scheduler, error) {
	cron, err := gocron.NewScheduler(
		gocron.WithGlobalJobOptions(
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					log.Error().
						Str("job_id", jobID.String()).
						Str("job_name", jobName).
						Interface("panic", recoverData).
						Msg("scheduler job panicked")
				}),
			),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &scheduler{cron: cron, timeout: defaultJobTimeout}, nil
}

// AddJob registers task under a five-field cron expression.
func (s *scheduler) AddJob(name, cronExpr string, task Task) (gocron.Job, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyJobName
	}

	if strings.TrimSpace(cronExpr) == "" {
		return nil, ErrEmptyCronExpr
	}

	logger := log.With().Str("job_name", name).Str("cron", cronExpr).Logger()

	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		started := time.Now()

		if err := task(logger.WithContext(ctx)); err != nil {
			logger.Error().Err(err).Msg("scheduler job failed")

			return
		}

		logger.Debug().Dur("elapsed", time.Since(started)).Msg("scheduler job completed")
	}

	job, err := s.cron.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(run),
		gocron.WithName(name),
	)
	if err != nil {
		logger.Error().Err(err).Msg("failed to register scheduler job")

		return nil, fmt.Errorf("failed to register job %s: %w", name, err)
	}

	logger.Info().Msg("scheduler job registered")

	return job, nil
}

func (s *scheduler) Start() {
	log.Info().Int("jobs", len(s.cron.Jobs())).Msg("scheduler starting")
	s.cron.Start()
}

func (s *scheduler) Stop() error {
	s.stopOnce.Do(func() {
		log.Info().Msg("scheduler stopping")
		s.stopErr = s.cron.Shutdown()
	})

	return s.stopErr
}
