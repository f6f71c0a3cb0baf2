package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/eventtick/eventtick-go/internal/domain"
	"github.com/eventtick/eventtick-go/internal/repository/memory"
	"github.com/eventtick/eventtick-go/internal/sim"
)

type Config struct {
	ListDelay time.Duration
}

type Service struct {
	store *memory.NotificationStore
	cfg   Config
}

func New(store *memory.NotificationStore, cfg Config) *Service {
	return &Service{store: store, cfg: cfg}
}

// ListByUser returns the user's notifications in the order they were
// produced.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	const op = "service.notifications.ListByUser"

	if err := sim.Wait(ctx, s.cfg.ListDelay); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.store.ListByUser(userID), nil
}
