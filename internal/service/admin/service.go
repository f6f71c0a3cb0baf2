// Package admin fabricates the operator's view. Every value it reports is
// invented: the health rows describe services that do not exist and the
// metrics are canned. Only lastCheck is real.
package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/eventtick/eventtick-go/internal/domain"
	"github.com/eventtick/eventtick-go/internal/sim"
)

type Config struct {
	HealthDelay  time.Duration
	MetricsDelay time.Duration
}

type Service struct {
	cfg Config
}

func New(cfg Config) *Service {
	return &Service{cfg: cfg}
}

func (s *Service) SystemHealth(ctx context.Context) ([]domain.ServiceHealth, error) {
	const op = "service.admin.SystemHealth"

	if err := sim.Wait(ctx, s.cfg.HealthDelay); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()

	return []domain.ServiceHealth{
		{ServiceName: "Auth-Service", Status: domain.HealthUp, LatencyMs: 45, Version: "v1.2.0", LastCheck: now},
		{ServiceName: "Event-Service", Status: domain.HealthUp, LatencyMs: 120, Version: "v1.4.2", LastCheck: now},
		{ServiceName: "Reservation-Service", Status: domain.HealthUp, LatencyMs: 85, Version: "v2.0.1", LastCheck: now},
		{ServiceName: "Payment-Gateway", Status: domain.HealthUp, LatencyMs: 310, Version: "v1.0.0", LastCheck: now},
		{ServiceName: "Notification-Service", Status: domain.HealthUp, LatencyMs: 60, Version: "v1.1.0", LastCheck: now},
		{ServiceName: "Redis-Cluster", Status: domain.HealthUp, LatencyMs: 2, Version: "v6.2", LastCheck: now},
		{ServiceName: "Kafka-Broker", Status: domain.HealthDegraded, LatencyMs: 450, Version: "v3.5.0", LastCheck: now},
	}, nil
}

func (s *Service) Metrics(ctx context.Context) (*domain.SystemMetrics, error) {
	const op = "service.admin.Metrics"

	if err := sim.Wait(ctx, s.cfg.MetricsDelay); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &domain.SystemMetrics{
		TotalEvents:       3,
		TotalReservations: 142,
		Revenue:           12450.50,
		ActiveUsers:       84,
	}, nil
}
