package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// AllowCors wraps the whole http handler, so preflight requests are answered
// before reaching the router.
func AllowCors(allowedOrigins []string, handler http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Authorization", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
	}).Handler(handler)
}
