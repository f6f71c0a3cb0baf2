package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventtick/eventtick-go/internal/domain"
)

func TestSystemHealth_FabricatedRows(t *testing.T) {
	svc := New(Config{})

	before := time.Now().UTC()
	rows, err := svc.SystemHealth(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 7)

	byName := make(map[string]domain.ServiceHealth, len(rows))
	for _, r := range rows {
		byName[r.ServiceName] = r
		assert.False(t, r.LastCheck.Before(before), "lastCheck must be stamped at read time")
	}

	assert.Equal(t, domain.HealthUp, byName["Auth-Service"].Status)
	assert.Equal(t, 45, byName["Auth-Service"].LatencyMs)
	assert.Equal(t, "v1.2.0", byName["Auth-Service"].Version)
	assert.Equal(t, domain.HealthDegraded, byName["Kafka-Broker"].Status)
	assert.Equal(t, 450, byName["Kafka-Broker"].LatencyMs)
}

func TestMetrics_CannedValues(t *testing.T) {
	svc := New(Config{})

	m, err := svc.Metrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, m.TotalEvents)
	assert.Equal(t, 142, m.TotalReservations)
	assert.Equal(t, 12450.50, m.Revenue)
	assert.Equal(t, 84, m.ActiveUsers)
}

func TestSystemHealth_CancelledContext(t *testing.T) {
	svc := New(Config{HealthDelay: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.SystemHealth(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
