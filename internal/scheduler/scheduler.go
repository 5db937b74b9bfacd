package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/i474232898/business-hours/internal/business"
)

const (
	fetchTimeout = 30 * time.Second
	checkTimeout = 10 * time.Second
)

// Scheduler periodically refetches schedules and checks for status changes.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *business.Service
	locations []business.Location
	interval  time.Duration
	log       *zap.Logger
}

// New creates a new Scheduler.
func New(locations []business.Location, interval time.Duration, service *business.Service, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		locations: locations,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the fetch and transition jobs and starts the underlying
// scheduler. Both jobs run once immediately.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		s.log.Info("scheduler: no locations configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	if _, err := s.scheduler.Every(minutes).Minutes().Do(s.FetchAll); err != nil {
		return err
	}
	if _, err := s.scheduler.Every(1).Minute().Do(s.CheckTransitions); err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// FetchAll refetches every location concurrently.
func (s *Scheduler) FetchAll() {
	s.log.Debug("scheduler: running schedule fetch job")

	var wg sync.WaitGroup
	for _, loc := range s.locations {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
			defer cancel()

			if err := s.service.FetchAndStore(ctx, loc); err != nil {
				s.log.Warn("scheduler: fetch failed", zap.String("location", loc.Key), zap.Error(err))
			}
		}()
	}
	wg.Wait()
	s.log.Debug("scheduler: completed schedule fetch job")
}

// CheckTransitions publishes status changes for all locations as of now.
func (s *Scheduler) CheckTransitions() {
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	n, err := s.service.CheckTransitions(ctx, s.locations, s.service.Now())
	if err != nil {
		s.log.Warn("scheduler: transition check failed", zap.Error(err))
	}
	if n > 0 {
		s.log.Info("scheduler: published status changes", zap.Int("count", n))
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
