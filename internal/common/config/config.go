package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/AlibekovAA/exercise-tracker/internal/common/constants"
	commonerrors "github.com/AlibekovAA/exercise-tracker/internal/common/errors"
)

var validate = validator.New()

type TrackerConfig struct {
	HTTPPort       string        `validate:"required,numeric"`
	StaticDir      string        `validate:"omitempty"`
	RequestTimeout time.Duration `validate:"gt=0"`
	StrictStatus   bool
	RateLimitRPS   float64  `validate:"gte=0"`
	RateLimitBurst int      `validate:"gte=1"`
	CORSOrigins    []string `validate:"dive,required"`
	MaxRequestSize int64    `validate:"gte=1024"`
}

// LoadDotEnv seeds the environment from path. A missing file is not an
// error; variables already set win.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func LoadTrackerConfig() (TrackerConfig, error) {
	cfg := TrackerConfig{
		HTTPPort:       getEnv("PORT", constants.DefaultHTTPPort),
		StaticDir:      getEnv("STATIC_DIR", constants.DefaultStaticDir),
		RequestTimeout: getDurationEnv("TRACKER_REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		StrictStatus:   getBoolEnv("TRACKER_STRICT_STATUS", false),
		RateLimitRPS:   getFloatEnv("TRACKER_RATE_LIMIT_RPS", 0),
		RateLimitBurst: getIntEnv("TRACKER_RATE_LIMIT_BURST", constants.DefaultRateLimitBurst),
		CORSOrigins:    getListEnv("TRACKER_CORS_ORIGINS"),
		MaxRequestSize: getInt64Env("TRACKER_MAX_REQUEST_SIZE", constants.DefaultMaxRequestSize),
	}

	if err := cfg.Validate(); err != nil {
		return TrackerConfig{}, err
	}
	return cfg, nil
}

func (c TrackerConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return commonerrors.ErrInvalidConfig.WithCause(err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getBoolEnv(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func getInt64Env(key string, fallback int64) int64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return i
}

func getFloatEnv(key string, fallback float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getListEnv(key string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
