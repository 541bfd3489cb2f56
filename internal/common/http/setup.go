package http

import (
	"net/http"

	"github.com/AlibekovAA/exercise-tracker/internal/common/httpmetrics"
	"github.com/AlibekovAA/exercise-tracker/internal/common/logger"
)

type BaseHandlerOptions struct {
	MaxRequestSize int64
	CORSOrigins    []string
	// RateLimiter is optional; nil disables limiting.
	RateLimiter *RateLimiter
}

func BuildBaseHandler(log *logger.Logger, handler http.Handler, opts BaseHandlerOptions) http.Handler {
	collector := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	maxRequestSize := MaxRequestSizeMiddleware(opts.MaxRequestSize)
	corsHandler := CORSMiddleware(opts.CORSOrigins)
	csp := ContentSecurityPolicyMiddleware("")

	inner := maxRequestSize(collector.Wrap(handler))
	if opts.RateLimiter != nil {
		inner = opts.RateLimiter.Middleware()(inner)
	}

	return SecurityHeadersMiddleware(csp(recovery(TraceIDMiddleware(corsHandler(inner)))))
}
