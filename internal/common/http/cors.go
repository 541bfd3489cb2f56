package http

import (
	"net/http"

	"github.com/rs/cors"
)

// CORSMiddleware allows any origin when origins is empty.
func CORSMiddleware(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", TraceIDHeader},
		ExposedHeaders: []string{TraceIDHeader},
	})
	return c.Handler
}
