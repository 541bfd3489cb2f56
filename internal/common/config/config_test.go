package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	commonerrors "github.com/AlibekovAA/exercise-tracker/internal/common/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "STATIC_DIR", "TRACKER_REQUEST_TIMEOUT", "TRACKER_STRICT_STATUS",
		"TRACKER_RATE_LIMIT_RPS", "TRACKER_RATE_LIMIT_BURST", "TRACKER_CORS_ORIGINS",
		"TRACKER_MAX_REQUEST_SIZE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadTrackerConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadTrackerConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPPort != "3000" {
		t.Errorf("expected port 3000, got %s", cfg.HTTPPort)
	}
	if cfg.StaticDir != "public" {
		t.Errorf("expected static dir public, got %s", cfg.StaticDir)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.RequestTimeout)
	}
	if cfg.StrictStatus || cfg.RateLimitRPS != 0 || cfg.CORSOrigins != nil {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.MaxRequestSize != 1<<20 {
		t.Errorf("expected 1MiB limit, got %d", cfg.MaxRequestSize)
	}
}

func TestLoadTrackerConfig_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("TRACKER_STRICT_STATUS", "true")
	t.Setenv("TRACKER_RATE_LIMIT_RPS", "2.5")
	t.Setenv("TRACKER_RATE_LIMIT_BURST", "7")
	t.Setenv("TRACKER_CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("TRACKER_REQUEST_TIMEOUT", "250ms")

	cfg, err := LoadTrackerConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPPort != "8080" || !cfg.StrictStatus || cfg.RateLimitRPS != 2.5 || cfg.RateLimitBurst != 7 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Errorf("unexpected origins %v", cfg.CORSOrigins)
	}
	if cfg.RequestTimeout != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", cfg.RequestTimeout)
	}
}

func TestLoadTrackerConfig_Invalid(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{"non numeric port", "PORT", "http"},
		{"negative rps", "TRACKER_RATE_LIMIT_RPS", "-1"},
		{"zero burst", "TRACKER_RATE_LIMIT_BURST", "0"},
		{"tiny body limit", "TRACKER_MAX_REQUEST_SIZE", "10"},
		{"negative timeout", "TRACKER_REQUEST_TIMEOUT", "-1s"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := LoadTrackerConfig()
			if !errors.Is(err, commonerrors.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}

	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("TRACKER_DOTENV_PROBE=from-file\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("TRACKER_DOTENV_PROBE", "")
	os.Unsetenv("TRACKER_DOTENV_PROBE")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv("TRACKER_DOTENV_PROBE"); got != "from-file" {
		t.Errorf("expected value from file, got %q", got)
	}
}

func TestTrackerConfig_Validate_AfterOverride(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadTrackerConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	cfg.HTTPPort = ""
	if err := cfg.Validate(); !errors.Is(err, commonerrors.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
