package memory

import (
	"sync"

	"github.com/eventtick/eventtick-go/internal/domain"
)

// NotificationStore collects the notifications produced by the reservation
// workflow, insertion-ordered per user.
type NotificationStore struct {
	mu    sync.RWMutex
	items []domain.Notification
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{}
}

func (s *NotificationStore) Append(n domain.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, n)
}

func (s *NotificationStore) ListByUser(userID string) []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Notification
	for _, n := range s.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}

	return out
}
