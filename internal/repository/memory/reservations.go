package memory

import (
	"sync"
	"time"

	"github.com/eventtick/eventtick-go/internal/domain"
	"github.com/eventtick/eventtick-go/internal/repository"
)

// ReservationStore keeps reservations in insertion order. Reads hand out
// copies so callers never see a record mid-mutation; all writes go through the
// store under its lock because the progression timers fire on their own
// goroutines.
type ReservationStore struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*domain.Reservation
}

func NewReservationStore() *ReservationStore {
	return &ReservationStore{
		byID: make(map[string]*domain.Reservation),
	}
}

func (s *ReservationStore) Insert(r domain.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[r.ID]; ok {
		return repository.ErrConflict
	}

	s.order = append(s.order, r.ID)
	s.byID[r.ID] = &r

	return nil
}

func (s *ReservationStore) Get(id string) (*domain.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	cp := *r
	return &cp, nil
}

// ListByUser returns the user's reservations oldest first.
func (s *ReservationStore) ListByUser(userID string) []domain.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Reservation
	for _, id := range s.order {
		if r := s.byID[id]; r.UserID == userID {
			out = append(out, *r)
		}
	}

	return out
}

// AdvanceStatus moves a reservation forward along the simulated progression
// and refreshes its updatedAt. A missing record is reported as
// repository.ErrNotFound so a late timer can treat it as a no-op; a backward
// or sideways move is refused.
func (s *ReservationStore) AdvanceStatus(id string, next domain.ReservationStatus, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.byID[id]
	if !ok {
		return repository.ErrNotFound
	}

	if !r.Status.Advances(next) {
		return repository.ErrInvalidTransition
	}

	r.Status = next
	r.UpdatedAt = at

	return nil
}

func (s *ReservationStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return repository.ErrNotFound
	}

	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return nil
}

func (s *ReservationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.order)
}
