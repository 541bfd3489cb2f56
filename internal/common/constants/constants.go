package constants

import "time"

const (
	DefaultHTTPPort       = "3000"
	DefaultStaticDir      = "public"
	DefaultMaxRequestSize = 1 << 20

	DefaultRequestTimeout = 5 * time.Second
	DefaultRateLimitBurst = 20

	RateLimitCleanupInterval = 1 * time.Minute

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28

	// DateLayout renders calendar dates as "Fri Jan 05 2024".
	DateLayout  = "Mon Jan 02 2006"
	InvalidDate = "Invalid Date"
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
