package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

type Config struct {
	HTTPAddr string `env:"GATE_HTTP_ADDR" envDefault:":8080"`
	GRPCAddr string `env:"GATE_GRPC_ADDR" envDefault:":9090"`

	// DB
	Env    string `env:"GATE_ENV"     envDefault:"dev"` // "dev" | "prod"
	Store  string `env:"GATE_STORE"   envDefault:"sqlite"`
	DBPath string `env:"GATE_DB_PATH" envDefault:"./data/gatewarden.db"`

	// Gate defaults, used until an admin stores settings.
	QRTimeoutSeconds      int `env:"GATE_QR_TIMEOUT_SECONDS"       envDefault:"20"`
	AutoCloseDelaySeconds int `env:"GATE_AUTO_CLOSE_DELAY_SECONDS" envDefault:"10"`

	CORSOrigins []string `env:"GATE_CORS_ORIGINS" envDefault:"*" envSeparator:","`
	RosterPath  string   `env:"GATE_ROSTER_PATH"`
	Verbose     bool     `env:"GATE_VERBOSE"`

	// Record cache in front of the store; 0 disables it.
	CacheSize int           `env:"GATE_CACHE_SIZE" envDefault:"1024"`
	CacheTTL  time.Duration `env:"GATE_CACHE_TTL"  envDefault:"30s"`
}

var (
	ErrInvalidStore    = errors.New("GATE_STORE must be sqlite or memory")
	ErrInvalidTimeouts = errors.New("gate timeouts must be positive")
)

func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	if cfg.Env != "dev" && cfg.Env != "prod" {
		// fail-soft: treat unknown as dev
		cfg.Env = "dev"
	}

	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	if cfg.Store != StoreSQLite && cfg.Store != StoreMemory {
		return Config{}, ErrInvalidStore
	}
	if cfg.QRTimeoutSeconds <= 0 || cfg.AutoCloseDelaySeconds <= 0 {
		return Config{}, ErrInvalidTimeouts
	}

	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)
	return cfg, nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
