package service

import (
	"time"

	"github.com/eventtick/eventtick-go/internal/repository/memory"
	redisrepo "github.com/eventtick/eventtick-go/internal/repository/redis"
	"github.com/eventtick/eventtick-go/internal/service/admin"
	"github.com/eventtick/eventtick-go/internal/service/auth"
	"github.com/eventtick/eventtick-go/internal/service/catalog"
	"github.com/eventtick/eventtick-go/internal/service/notifications"
	"github.com/eventtick/eventtick-go/internal/service/reservation"
)

type Services struct {
	Auth          *auth.Service
	Catalog       *catalog.Service
	Reservation   *reservation.Service
	Notifications *notifications.Service
	Admin         *admin.Service
}

type Config struct {
	Auth          auth.Config
	Catalog       catalog.Config
	Reservation   reservation.Config
	Notifications notifications.Config
	Admin         admin.Config
}

// DefaultConfig returns the demo's standard service configuration: the two
// progression offsets plus, when simLatency is set, the artificial per-call
// delays that imitate remote services.
func DefaultConfig(simLatency bool) Config {
	cfg := Config{
		Reservation: reservation.Config{
			PaymentDelay: 5 * time.Second,
			NotifyDelay:  10 * time.Second,
		},
	}

	if simLatency {
		cfg.Auth.LoginDelay = 800 * time.Millisecond
		cfg.Auth.RegisterDelay = 800 * time.Millisecond
		cfg.Catalog.ListDelay = 600 * time.Millisecond
		cfg.Catalog.GetDelay = 400 * time.Millisecond
		cfg.Reservation.CreateDelay = 1000 * time.Millisecond
		cfg.Reservation.ListDelay = 500 * time.Millisecond
		cfg.Reservation.GetDelay = 300 * time.Millisecond
		cfg.Notifications.ListDelay = 300 * time.Millisecond
		cfg.Admin.HealthDelay = 700 * time.Millisecond
		cfg.Admin.MetricsDelay = 500 * time.Millisecond
	}

	return cfg
}

func NewServices(
	store *memory.Store,
	cache *redisrepo.Cache,
	limiter *redisrepo.SlidingWindowLimiter,
	cfg Config,
) *Services {
	return &Services{
		Auth:          auth.New(store.Users(), cfg.Auth),
		Catalog:       catalog.New(store.Events(), cache, cfg.Catalog),
		Reservation:   reservation.New(store.Events(), store.Reservations(), store.Notifications(), limiter, cfg.Reservation),
		Notifications: notifications.New(store.Notifications(), cfg.Notifications),
		Admin:         admin.New(cfg.Admin),
	}
}
