package memory

import (
	"sync"
	"time"

	"github.com/eventtick/eventtick-go/internal/domain"
	"github.com/eventtick/eventtick-go/internal/repository"
)

// EventStore serves the seeded catalog. Events are immutable for the lifetime
// of the process; available-ticket counts are never decremented by bookings.
type EventStore struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*domain.Event
}

func NewEventStore(seed []domain.Event) *EventStore {
	s := &EventStore{
		byID: make(map[string]*domain.Event, len(seed)),
	}

	for i := range seed {
		e := seed[i]
		s.order = append(s.order, e.ID)
		s.byID[e.ID] = &e
	}

	return s
}

func (s *EventStore) Get(id string) (*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	cp := *e
	return &cp, nil
}

// List returns a page of the catalog in seed order.
func (s *EventStore) List(limit, offset int) []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if offset >= len(s.order) {
		return nil
	}

	end := len(s.order)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	out := make([]domain.Event, 0, end-offset)
	for _, id := range s.order[offset:end] {
		out = append(out, *s.byID[id])
	}

	return out
}

func (s *EventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.order)
}

// SeedEvents is the demo catalog.
func SeedEvents() []domain.Event {
	return []domain.Event{
		{
			ID:               "e1",
			Title:            "Distributed Systems Conference 2024",
			Description:      "Learn about microservices, Pub/Sub patterns, and cloud-native architecture from industry experts.",
			Date:             time.Date(2024, 10, 15, 9, 0, 0, 0, time.UTC),
			Venue:            "Grand Tech Hall, San Francisco",
			Price:            299.00,
			TotalTickets:     500,
			AvailableTickets: 124,
			Category:         "Technology",
			Image:            "https://picsum.photos/seed/tech/800/400",
			Status:           domain.EventActive,
		},
		{
			ID:               "e2",
			Title:            "Neo-Jazz Summer Night",
			Description:      "A magical evening of modern jazz and fusion melodies under the stars.",
			Date:             time.Date(2024, 8, 22, 20, 0, 0, 0, time.UTC),
			Venue:            "City Botanical Garden",
			Price:            45.00,
			TotalTickets:     200,
			AvailableTickets: 0,
			Category:         "Music",
			Image:            "https://picsum.photos/seed/jazz/800/400",
			Status:           domain.EventActive,
		},
		{
			ID:               "e3",
			Title:            "React & AI Workshop",
			Description:      "Deep dive into building GenAI powered React applications with Gemini API.",
			Date:             time.Date(2024, 11, 5, 10, 0, 0, 0, time.UTC),
			Venue:            "Silicon Valley Hub",
			Price:            150.00,
			TotalTickets:     100,
			AvailableTickets: 42,
			Category:         "Workshop",
			Image:            "https://picsum.photos/seed/code/800/400",
			Status:           domain.EventActive,
		},
	}
}
