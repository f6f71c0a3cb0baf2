package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventtick/eventtick-go/internal/domain"
	"github.com/eventtick/eventtick-go/internal/repository/memory"
)

func newTestService(t *testing.T, cfg Config) (*Service, *memory.Store) {
	t.Helper()

	store, err := memory.NewStore(memory.Config{})
	require.NoError(t, err)

	svc := New(store.Events(), store.Reservations(), store.Notifications(), nil, cfg)
	return svc, store
}

func TestCreate_ComputesTotalAndStartsPending(t *testing.T) {
	svc, _ := newTestService(t, Config{PaymentDelay: time.Hour, NotifyDelay: 2 * time.Hour})

	// booking e1 (price 299.00) with quantity 2
	res, err := svc.Create(context.Background(), "e1", "u-1", 2, "")
	require.NoError(t, err)

	assert.Equal(t, domain.ReservationPending, res.Status)
	assert.Equal(t, 598.00, res.TotalAmount)
	assert.Equal(t, "e1", res.EventID)
	assert.Equal(t, "Distributed Systems Conference 2024", res.EventTitle)
	assert.Equal(t, "u-1", res.UserID)
	assert.Equal(t, 2, res.TicketQuantity)
	assert.Equal(t, res.CreatedAt, res.UpdatedAt)
}

func TestCreate_UniqueIDs(t *testing.T) {
	svc, _ := newTestService(t, Config{PaymentDelay: time.Hour, NotifyDelay: 2 * time.Hour})

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		res, err := svc.Create(context.Background(), "e1", "u-1", 1, "")
		require.NoError(t, err)
		assert.False(t, seen[res.ID], "id %s issued twice", res.ID)
		seen[res.ID] = true
	}
}

func TestCreate_UnknownEvent(t *testing.T) {
	svc, _ := newTestService(t, Config{PaymentDelay: time.Hour, NotifyDelay: 2 * time.Hour})

	_, err := svc.Create(context.Background(), "e99", "u-1", 1, "")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestCreate_InvalidQuantity(t *testing.T) {
	svc, _ := newTestService(t, Config{PaymentDelay: time.Hour, NotifyDelay: 2 * time.Hour})

	_, err := svc.Create(context.Background(), "e1", "u-1", 0, "")
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.Create(context.Background(), "e1", "u-1", -3, "")
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCreate_DoesNotTouchInventory(t *testing.T) {
	svc, store := newTestService(t, Config{PaymentDelay: time.Hour, NotifyDelay: 2 * time.Hour})

	before, err := store.Events().Get("e1")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "e1", "u-1", 200, "")
	require.NoError(t, err)

	after, err := store.Events().Get("e1")
	require.NoError(t, err)
	assert.Equal(t, before.AvailableTickets, after.AvailableTickets)
}

func TestProgression_PendingPaidNotified(t *testing.T) {
	svc, _ := newTestService(t, Config{
		PaymentDelay: 30 * time.Millisecond,
		NotifyDelay:  90 * time.Millisecond,
	})

	res, err := svc.Create(context.Background(), "e1", "u-1", 2, "")
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationPending, res.Status)

	time.Sleep(60 * time.Millisecond)

	paid, err := svc.Get(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationPaid, paid.Status)
	assert.True(t, paid.UpdatedAt.After(paid.CreatedAt), "updatedAt must advance with the PAID transition")

	time.Sleep(90 * time.Millisecond)

	notified, err := svc.Get(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationNotified, notified.Status)
	assert.True(t, notified.UpdatedAt.After(paid.UpdatedAt), "updatedAt must advance again with NOTIFIED")
}

func TestProgression_TimerNoopsWhenRecordRemoved(t *testing.T) {
	svc, store := newTestService(t, Config{
		PaymentDelay: 20 * time.Millisecond,
		NotifyDelay:  40 * time.Millisecond,
	})

	res, err := svc.Create(context.Background(), "e1", "u-1", 1, "")
	require.NoError(t, err)

	require.NoError(t, store.Reservations().Delete(res.ID))

	// both timers fire against the missing record and must not panic or
	// resurrect it
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, 0, store.Reservations().Len())
	_, err = svc.Get(context.Background(), res.ID)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestProgression_ProducesConfirmationNotification(t *testing.T) {
	svc, store := newTestService(t, Config{
		PaymentDelay: 10 * time.Millisecond,
		NotifyDelay:  20 * time.Millisecond,
	})

	_, err := svc.Create(context.Background(), "e3", "u-1", 1, "")
	require.NoError(t, err)

	time.Sleep(80 * time.Millisecond)

	list := store.Notifications().ListByUser("u-1")
	require.Len(t, list, 2)
	assert.Equal(t, domain.NotificationPaymentRequired, list[0].Type)
	assert.Equal(t, domain.NotificationReservationConfirmed, list[1].Type)
	assert.Contains(t, list[1].Message, "React & AI Workshop")
}

func TestListByUser_FiltersAndOrders(t *testing.T) {
	svc, _ := newTestService(t, Config{PaymentDelay: time.Hour, NotifyDelay: 2 * time.Hour})

	first, err := svc.Create(context.Background(), "e1", "u-1", 1, "")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "e2", "u-2", 1, "")
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), "e3", "u-1", 1, "")
	require.NoError(t, err)

	list, err := svc.ListByUser(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	empty, err := svc.ListByUser(context.Background(), "u-ghost")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGet_Absent(t *testing.T) {
	svc, _ := newTestService(t, Config{PaymentDelay: time.Hour, NotifyDelay: 2 * time.Hour})

	_, err := svc.Get(context.Background(), "res-nope")
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCreate_CancelledContext(t *testing.T) {
	svc, _ := newTestService(t, Config{
		CreateDelay:  time.Second,
		PaymentDelay: time.Hour,
		NotifyDelay:  2 * time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Create(ctx, "e1", "u-1", 1, "")
	assert.ErrorIs(t, err, context.Canceled)
}
