package reservation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eventtick/eventtick-go/internal/domain"
)

// scheduleProgression arms the two timers that drive a reservation through
// PENDING -> PAID -> NOTIFIED. The timers hold only the reservation id, never
// the record itself: when they fire they look the record up again and no-op
// if it has since been removed. There is no cancellation hook; once armed,
// each timer fires exactly once.
func (s *Service) scheduleProgression(id, userID, eventTitle string) {
	time.AfterFunc(s.cfg.PaymentDelay, func() {
		s.advance(id, domain.ReservationPaid)
	})

	time.AfterFunc(s.cfg.NotifyDelay, func() {
		if s.advance(id, domain.ReservationNotified) {
			s.notifications.Append(domain.Notification{
				ID:        uuid.NewString(),
				UserID:    userID,
				Type:      domain.NotificationReservationConfirmed,
				Title:     "Tickets confirmed",
				Message:   fmt.Sprintf("Payment received, your tickets for %q are on their way.", eventTitle),
				CreatedAt: time.Now().UTC(),
			})
		}
	})
}

// advance applies one forward transition and reports whether it took effect.
// Both failure modes are swallowed on purpose: a missing record means the
// reservation was deleted underneath the timer, and a refused transition
// means a later stage already ran.
func (s *Service) advance(id string, next domain.ReservationStatus) bool {
	return s.reservations.AdvanceStatus(id, next, time.Now().UTC()) == nil
}
