package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventtick/eventtick-go/internal/repository/memory"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return New(memory.NewEventStore(memory.SeedEvents()), nil, Config{})
}

func TestListEvents_SeedOrder(t *testing.T) {
	svc := newTestService(t)

	events, total, err := svc.ListEvents(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, events, 3)
	assert.Equal(t, "e1", events[0].ID)
	assert.Equal(t, "e2", events[1].ID)
	assert.Equal(t, "e3", events[2].ID)
}

func TestListEvents_Pagination(t *testing.T) {
	svc := newTestService(t)

	page, total, err := svc.ListEvents(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, "e2", page[0].ID)
	assert.Equal(t, "e3", page[1].ID)
}

func TestListEvents_ClampsLimit(t *testing.T) {
	svc := New(memory.NewEventStore(memory.SeedEvents()), nil, Config{MaxPage: 2})

	page, _, err := svc.ListEvents(context.Background(), 50, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)
}

func TestGetEvent(t *testing.T) {
	svc := newTestService(t)

	e, err := svc.GetEvent(context.Background(), "e2")
	require.NoError(t, err)
	assert.Equal(t, "Neo-Jazz Summer Night", e.Title)
	assert.Equal(t, 0, e.AvailableTickets)
}

func TestGetEvent_Absent(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetEvent(context.Background(), "e99")
	assert.ErrorIs(t, err, ErrEventNotFound)
}
