package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/eventtick/eventtick-go/internal/config"
	redisx "github.com/eventtick/eventtick-go/internal/redis"
	"github.com/eventtick/eventtick-go/internal/repository/memory"
	redisrepo "github.com/eventtick/eventtick-go/internal/repository/redis"
	"github.com/eventtick/eventtick-go/internal/service"
	"github.com/eventtick/eventtick-go/internal/service/auth"
	httpgin "github.com/eventtick/eventtick-go/internal/transport/http/gin"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Initialize the in-memory stores. Everything except the registered-user
	// file vanishes on restart; that is the whole point of the demo.
	store, err := memory.NewStore(memory.Config{UsersFile: cfg.Store.UsersFile})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	// Redis is optional: without it the demo runs fully self-contained, just
	// without the event cache, rate limiting, or idempotency replay.
	var (
		cache   *redisrepo.Cache
		limiter *redisrepo.SlidingWindowLimiter
		idem    *redisrepo.IdempotencyStore
	)
	if cfg.Redis.Addr != "" {
		rdb, err := redisx.New(context.Background(), redisx.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}

		cache = redisrepo.NewCache(rdb)
		limiter = redisrepo.NewSlidingWindowLimiter(rdb, "rl", 10, 1*time.Minute)
		idem = redisrepo.NewIdempotencyStore(rdb, 2*time.Hour)
	}

	// Initialize services
	svcCfg := service.DefaultConfig(cfg.Sim.LatencyEnabled)
	svcCfg.Auth = auth.Config{
		JWTSecret:     cfg.Auth.JWTSecret,
		TokenTTL:      time.Duration(cfg.Auth.TokenTTL) * time.Minute,
		BcryptCost:    cfg.Auth.BcryptCost,
		LoginDelay:    svcCfg.Auth.LoginDelay,
		RegisterDelay: svcCfg.Auth.RegisterDelay,
	}

	services := service.NewServices(store, cache, limiter, svcCfg)

	// Initialize Gin router
	router := httpgin.NewRouter(services, idem, logger)

	return &App{
		cfg:    cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}
