package app

import (
	"encoding/json"
	"net/http"
	"time"

	"ecotrack/middleware"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// newRouter mounts the API handlers behind the middleware stack.
// CORS wraps the whole mux so preflight requests never reach a handler.
func newRouter(calculate, recommend http.HandlerFunc, corsOrigin string) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/api/calculate", withMiddleware(calculate))
	mux.Handle("/api/recommendations", withMiddleware(recommend))

	mux.HandleFunc("/health", handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	return middleware.Cors(corsOrigin)(mux)
}

func withMiddleware(h http.HandlerFunc) http.Handler {
	return middleware.Chain(h,
		middleware.Metrics,
		middleware.RequestID,
		middleware.Logging,
		middleware.Recover,
		middleware.JsonMiddleware,
	)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	}); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("couldn't write a health response")
	}
}
