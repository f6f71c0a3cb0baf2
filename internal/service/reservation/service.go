// Package reservation implements booking and the simulated post-booking
// workflow. A new reservation starts PENDING and is walked to PAID and then
// NOTIFIED by two timers, standing in for the payment and notification
// services of the architecture the demo pretends to have.
package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eventtick/eventtick-go/internal/domain"
	"github.com/eventtick/eventtick-go/internal/repository"
	"github.com/eventtick/eventtick-go/internal/repository/memory"
	redisrepo "github.com/eventtick/eventtick-go/internal/repository/redis"
	"github.com/eventtick/eventtick-go/internal/sim"
)

type Config struct {
	CreateDelay time.Duration
	ListDelay   time.Duration
	GetDelay    time.Duration

	// PaymentDelay and NotifyDelay are measured from creation, not from each
	// other. NotifyDelay must stay the larger of the two.
	PaymentDelay time.Duration
	NotifyDelay  time.Duration
}

type Service struct {
	events        *memory.EventStore
	reservations  *memory.ReservationStore
	notifications *memory.NotificationStore
	limiter       *redisrepo.SlidingWindowLimiter
	cfg           Config
}

func New(
	events *memory.EventStore,
	reservations *memory.ReservationStore,
	notifications *memory.NotificationStore,
	limiter *redisrepo.SlidingWindowLimiter,
	cfg Config,
) *Service {
	return &Service{
		events:        events,
		reservations:  reservations,
		notifications: notifications,
		limiter:       limiter,
		cfg:           cfg,
	}
}

// Create books quantity tickets for the event and schedules the status
// progression. The total is fixed at creation from the current unit price.
//
// Available-ticket counts are intentionally neither checked nor decremented:
// the original demo never reconciles inventory with bookings, and that gap is
// preserved rather than silently fixed.
func (s *Service) Create(ctx context.Context, eventID, userID string, quantity int, rlKey string) (*domain.Reservation, error) {
	const op = "service.reservation.Create"

	if quantity < 1 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidQuantity)
	}

	if s.limiter != nil && rlKey != "" {
		ok, _, retry, err := s.limiter.Allow(ctx, rlKey)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if !ok {
			return nil, fmt.Errorf("%s: %w, retry in %s", op, ErrRateLimited, retry)
		}
	}

	if err := sim.Wait(ctx, s.cfg.CreateDelay); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	event, err := s.events.Get(eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrEventNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	r := domain.Reservation{
		ID:             "res-" + uuid.NewString(),
		EventID:        event.ID,
		EventTitle:     event.Title,
		UserID:         userID,
		Status:         domain.ReservationPending,
		TicketQuantity: quantity,
		TotalAmount:    event.Price * float64(quantity),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.reservations.Insert(r); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.notifications.Append(domain.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      domain.NotificationPaymentRequired,
		Title:     "Payment processing",
		Message:   fmt.Sprintf("Your reservation for %q is pending payment.", event.Title),
		CreatedAt: now,
	})

	s.scheduleProgression(r.ID, r.UserID, r.EventTitle)

	return &r, nil
}

// ListByUser returns the user's reservations oldest first, reflecting any
// progression that has happened by the time of the call.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Reservation, error) {
	const op = "service.reservation.ListByUser"

	if err := sim.Wait(ctx, s.cfg.ListDelay); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.reservations.ListByUser(userID), nil
}

// Get returns a reservation by id. An unknown id is an absent result, never a
// panic or a crash.
func (s *Service) Get(ctx context.Context, id string) (*domain.Reservation, error) {
	const op = "service.reservation.Get"

	if err := sim.Wait(ctx, s.cfg.GetDelay); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	r, err := s.reservations.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrReservationNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return r, nil
}
