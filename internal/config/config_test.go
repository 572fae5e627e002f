package config_test

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/BrandonDHaskell/gatewarden/internal/config"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.GRPCAddr != ":9090" {
		t.Errorf("unexpected addrs %q %q", cfg.HTTPAddr, cfg.GRPCAddr)
	}
	if cfg.Env != "dev" || cfg.Store != config.StoreSQLite {
		t.Errorf("unexpected env=%q store=%q", cfg.Env, cfg.Store)
	}
	if cfg.QRTimeoutSeconds != 20 || cfg.AutoCloseDelaySeconds != 10 {
		t.Errorf("unexpected timeouts %d/%d", cfg.QRTimeoutSeconds, cfg.AutoCloseDelaySeconds)
	}
	if !slices.Equal(cfg.CORSOrigins, []string{"*"}) {
		t.Errorf("unexpected cors origins %v", cfg.CORSOrigins)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("unexpected cache ttl %v", cfg.CacheTTL)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("GATE_ENV", "PROD")
	t.Setenv("GATE_STORE", "memory")
	t.Setenv("GATE_QR_TIMEOUT_SECONDS", "45")
	t.Setenv("GATE_CORS_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Env != "prod" {
		t.Errorf("expected prod, got %q", cfg.Env)
	}
	if cfg.Store != config.StoreMemory {
		t.Errorf("expected memory store, got %q", cfg.Store)
	}
	if cfg.QRTimeoutSeconds != 45 {
		t.Errorf("expected 45, got %d", cfg.QRTimeoutSeconds)
	}
	if !slices.Equal(cfg.CORSOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Errorf("unexpected cors origins %v", cfg.CORSOrigins)
	}
}

func TestFromEnv_UnknownEnvFallsBackToDev(t *testing.T) {
	t.Setenv("GATE_ENV", "staging")
	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Env != "dev" {
		t.Errorf("expected dev, got %q", cfg.Env)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	t.Run("store", func(t *testing.T) {
		t.Setenv("GATE_STORE", "postgres")
		if _, err := config.FromEnv(); !errors.Is(err, config.ErrInvalidStore) {
			t.Errorf("expected ErrInvalidStore, got %v", err)
		}
	})
	t.Run("timeout", func(t *testing.T) {
		t.Setenv("GATE_QR_TIMEOUT_SECONDS", "0")
		if _, err := config.FromEnv(); !errors.Is(err, config.ErrInvalidTimeouts) {
			t.Errorf("expected ErrInvalidTimeouts, got %v", err)
		}
	})
	t.Run("not a number", func(t *testing.T) {
		t.Setenv("GATE_AUTO_CLOSE_DELAY_SECONDS", "soon")
		if _, err := config.FromEnv(); err == nil {
			t.Error("expected parse error")
		}
	})
}
