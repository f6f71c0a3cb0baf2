package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Auth   AuthConfig
	Store  StoreConfig
	Redis  RedisConfig
	Sim    SimConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type AuthConfig struct {
	JWTSecret  string
	TokenTTL   int // minutes
	BcryptCost int
}

type StoreConfig struct {
	// UsersFile persists registered accounts between runs. Empty keeps them
	// in memory only.
	UsersFile string
}

type RedisConfig struct {
	// Addr is optional; empty runs the demo fully self-contained without
	// cache, rate limiting, or idempotency replay.
	Addr     string
	Password string
	DB       int
}

type SimConfig struct {
	// LatencyEnabled toggles the artificial per-call delays that make the
	// demo feel like it is talking to remote services.
	LatencyEnabled bool
}

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	serverHost := os.Getenv("SERVER_HOST")
	if serverHost == "" {
		serverHost = "localhost"
	}

	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080"
	}

	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid SERVER_PORT: %w", op, err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		// Demo default. Anything real sets its own.
		jwtSecret = "eventtick-demo-secret"
	}

	tokenTTLStr := os.Getenv("TOKEN_TTL_MIN")
	if tokenTTLStr == "" {
		tokenTTLStr = "60"
	}

	tokenTTL, err := strconv.Atoi(tokenTTLStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid TOKEN_TTL_MIN: %w", op, err)
	}

	bcryptCostStr := os.Getenv("BCRYPT_COST")
	if bcryptCostStr == "" {
		bcryptCostStr = "10"
	}

	bcryptCost, err := strconv.Atoi(bcryptCostStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid BCRYPT_COST: %w", op, err)
	}

	usersFile := os.Getenv("USERS_FILE")
	if usersFile == "" {
		usersFile = "eventtick_users.json"
	}

	redisDBStr := os.Getenv("REDIS_DB")
	if redisDBStr == "" {
		redisDBStr = "0"
	}

	redisDB, err := strconv.Atoi(redisDBStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid REDIS_DB: %w", op, err)
	}

	latencyEnabled := os.Getenv("SIM_LATENCY") != "off"

	return &Config{
		Server: ServerConfig{
			Host: serverHost,
			Port: serverPort,
		},
		Auth: AuthConfig{
			JWTSecret:  jwtSecret,
			TokenTTL:   tokenTTL,
			BcryptCost: bcryptCost,
		},
		Store: StoreConfig{
			UsersFile: usersFile,
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Sim: SimConfig{
			LatencyEnabled: latencyEnabled,
		},
	}, nil
}
