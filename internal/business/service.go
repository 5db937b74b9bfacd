package business

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/i474232898/business-hours/internal/hours"
	"github.com/i474232898/business-hours/internal/metrics"
)

var (
	// ErrNoProviders is returned when the service has nothing to fetch from.
	ErrNoProviders = errors.New("no schedule providers configured")
	// ErrFetchFailed wraps the per-provider errors when every provider failed.
	ErrFetchFailed = errors.New("schedule fetch failed")
	// ErrNoCache is returned by Warm when no feed cache is configured.
	ErrNoCache = errors.New("feed cache not configured")
)

// Service orchestrates fetching schedules, keeping snapshots and answering
// open/closed questions against the latest one.
type Service struct {
	store     Store
	providers []Provider
	cache     FeedCache
	publisher Publisher
	log       *zap.Logger
	zone      *time.Location
	now       func() time.Time

	mu        sync.Mutex
	lastClass map[string]hours.StatusClass
}

// Option customises a Service.
type Option func(*Service)

func WithFeedCache(c FeedCache) Option { return func(s *Service) { s.cache = c } }

func WithPublisher(p Publisher) Option { return func(s *Service) { s.publisher = p } }

func WithLogger(l *zap.Logger) Option { return func(s *Service) { s.log = l } }

// WithTimezone sets the zone business hours are expressed in. Defaults to UTC.
func WithTimezone(z *time.Location) Option { return func(s *Service) { s.zone = z } }

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// NewService creates a new Service.
func NewService(store Store, providers []Provider, opts ...Option) *Service {
	s := &Service{
		store:     store,
		providers: providers,
		log:       zap.NewNop(),
		zone:      time.UTC,
		now:       time.Now,
		lastClass: make(map[string]hours.StatusClass),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchAndStore tries each provider in order and stores the first feed that
// normalizes cleanly. When every provider fails the last good snapshot is
// kept and the combined error is returned.
func (s *Service) FetchAndStore(ctx context.Context, loc Location) error {
	if len(s.providers) == 0 {
		return ErrNoProviders
	}

	var errs []error
	for _, p := range s.providers {
		feed, err := p.Fetch(ctx, loc)
		if err != nil {
			s.log.Warn("provider fetch failed",
				zap.String("provider", p.Name()),
				zap.String("location", loc.Key),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}

		snap, err := BuildSnapshot(loc, p.Name(), feed, s.now())
		if err != nil {
			s.log.Warn("provider returned an invalid schedule",
				zap.String("provider", p.Name()),
				zap.String("location", loc.Key),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}

		s.store.SaveSnapshot(loc, snap)
		metrics.FetchSucceeded(loc.Key)
		s.log.Info("schedule stored",
			zap.String("location", loc.Key),
			zap.String("provider", p.Name()),
			zap.Int("intervals", snap.Timeline.Len()),
			zap.Stringer("snapshot", snap.ID))

		if s.cache != nil {
			if err := s.cache.SaveFeed(ctx, loc, feed); err != nil {
				s.log.Warn("feed cache write failed", zap.String("location", loc.Key), zap.Error(err))
			}
		}
		return nil
	}

	metrics.FetchFailed(loc.Key)
	s.log.Error("no provider produced a schedule; keeping last good snapshot",
		zap.String("location", loc.Key))
	return fmt.Errorf("%w for %s: %w", ErrFetchFailed, loc.Key, errors.Join(errs...))
}

// Warm seeds the store from the feed cache when nothing has been fetched yet
// for loc.
func (s *Service) Warm(ctx context.Context, loc Location) error {
	if s.cache == nil {
		return ErrNoCache
	}
	if _, err := s.store.GetLatest(loc); err == nil {
		return nil
	}
	feed, err := s.cache.LoadFeed(ctx, loc)
	if err != nil {
		return err
	}
	snap, err := BuildSnapshot(loc, "cache", feed, s.now())
	if err != nil {
		return fmt.Errorf("cached feed for %s: %w", loc.Key, err)
	}
	s.store.SaveSnapshot(loc, snap)
	s.log.Info("schedule warmed from cache", zap.String("location", loc.Key))
	return nil
}

// Now is the current instant in the business time zone.
func (s *Service) Now() hours.QueryInstant {
	return hours.InstantFromTime(s.now().In(s.zone))
}

// Overview evaluates the latest snapshot of loc at q.
func (s *Service) Overview(loc Location, q hours.QueryInstant) (Overview, error) {
	snap, err := s.store.GetLatest(loc)
	if err != nil {
		return Overview{}, err
	}
	ov := BuildOverview(snap, q)
	metrics.Evaluated(string(ov.Status.Class))
	return ov, nil
}

// Status returns only the header line for loc at q.
func (s *Service) Status(loc Location, q hours.QueryInstant) (hours.Status, error) {
	snap, err := s.store.GetLatest(loc)
	if err != nil {
		return hours.Status{}, err
	}
	status := hours.FormatStatus(hours.Evaluate(snap.Timeline, q))
	metrics.Evaluated(string(status.Class))
	return status, nil
}

// Schedule returns the weekly rows of the latest snapshot, with the rows of
// day highlighted.
func (s *Service) Schedule(loc Location, day hours.Weekday) (Snapshot, []hours.Row, error) {
	snap, err := s.store.GetLatest(loc)
	if err != nil {
		return Snapshot{}, nil, err
	}
	return snap, hours.HighlightDay(hours.Group(snap.Timeline), day), nil
}

// GetLatest delegates to the underlying store.
func (s *Service) GetLatest(loc Location) (Snapshot, error) {
	return s.store.GetLatest(loc)
}

// GetRange delegates to the underlying store.
func (s *Service) GetRange(loc Location, from, to time.Time) ([]Snapshot, error) {
	return s.store.GetRange(loc, from, to)
}

// CheckTransitions evaluates every location at q and publishes a
// StatusChange for each one whose status class differs from the previous
// check. The first observation of a location only records its state. It
// returns the number of changes published.
func (s *Service) CheckTransitions(ctx context.Context, locs []Location, q hours.QueryInstant) (int, error) {
	var (
		published int
		errs      []error
	)
	for _, loc := range locs {
		snap, err := s.store.GetLatest(loc)
		if err != nil {
			continue
		}
		status := hours.FormatStatus(hours.Evaluate(snap.Timeline, q))
		metrics.SetOpen(loc.Key, status.Class != hours.ClassClosed)

		s.mu.Lock()
		prev, seen := s.lastClass[loc.Key]
		s.lastClass[loc.Key] = status.Class
		s.mu.Unlock()

		if !seen || prev == status.Class {
			continue
		}

		change := StatusChange{
			ID:           uuid.New(),
			Location:     loc.Key,
			LocationName: snap.LocationName,
			From:         prev,
			To:           status.Class,
			Text:         status.Text,
			At:           s.now().UTC(),
		}
		s.log.Info("status changed",
			zap.String("location", loc.Key),
			zap.String("from", string(prev)),
			zap.String("to", string(status.Class)))

		if s.publisher == nil {
			continue
		}
		if err := s.publisher.PublishStatusChange(ctx, change); err != nil {
			errs = append(errs, fmt.Errorf("publish %s: %w", loc.Key, err))
			continue
		}
		published++
	}
	return published, errors.Join(errs...)
}
