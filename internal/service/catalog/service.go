// Package catalog serves the seeded event catalog. The catalog never changes
// during a session, so the only work here is pagination, the pretend network
// delay, and an optional redis read-through for event lookups.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventtick/eventtick-go/internal/domain"
	redisx "github.com/eventtick/eventtick-go/internal/redis"
	"github.com/eventtick/eventtick-go/internal/repository"
	"github.com/eventtick/eventtick-go/internal/repository/memory"
	redisrepo "github.com/eventtick/eventtick-go/internal/repository/redis"
	"github.com/eventtick/eventtick-go/internal/sim"
)

type Config struct {
	ListDelay time.Duration
	GetDelay  time.Duration

	DefaultPage     int
	MaxPage         int
	EventSummaryTTL time.Duration
}

type Service struct {
	events *memory.EventStore
	cache  *redisrepo.Cache
	cfg    Config
}

func New(events *memory.EventStore, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.DefaultPage <= 0 {
		cfg.DefaultPage = 20
	}

	if cfg.MaxPage <= 0 {
		cfg.MaxPage = 100
	}

	if cfg.EventSummaryTTL <= 0 {
		cfg.EventSummaryTTL = 60 * time.Second
	}

	return &Service{events: events, cache: cache, cfg: cfg}
}

// ListEvents returns a page of the catalog in seed order.
func (s *Service) ListEvents(ctx context.Context, limit, offset int) ([]domain.Event, int, error) {
	const op = "service.catalog.ListEvents"

	if err := sim.Wait(ctx, s.cfg.ListDelay); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	if limit <= 0 {
		limit = s.cfg.DefaultPage
	}

	if limit > s.cfg.MaxPage {
		limit = s.cfg.MaxPage
	}

	return s.events.List(limit, offset), s.events.Len(), nil
}

// GetEvent returns a single catalog entry, through the cache when one is
// configured.
func (s *Service) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	const op = "service.catalog.GetEvent"

	if err := sim.Wait(ctx, s.cfg.GetDelay); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.cache == nil {
		e, err := s.events.Get(id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%s: %w", op, ErrEventNotFound)
			}

			return nil, fmt.Errorf("%s: %w", op, err)
		}

		return e, nil
	}

	key := redisx.KeyEventSummary(id)

	event, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		key,
		s.cfg.EventSummaryTTL,
		func(ctx context.Context) (domain.Event, error) {
			e, err := s.events.Get(id)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return domain.Event{}, ErrEventNotFound
				}

				return domain.Event{}, err
			}

			return *e, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &event, nil
}
