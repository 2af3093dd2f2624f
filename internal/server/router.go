package server

import (
	"net/http"

	"github.com/lingocraft/lingocraft/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterOptions struct {
	AllowedOrigins []string
	HTTPMetrics    *metrics.HTTPMetrics
	// Gatherer serves /metrics when set.
	Gatherer prometheus.Gatherer
}

// NewRouter registers every route of h and wraps them in the CORS, request ID and metrics middleware.
func NewRouter(h *Handler, options RouterOptions) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Health)
	mux.HandleFunc("POST /create-element", h.CreateElement)
	mux.HandleFunc("POST /api/elements/combine", h.CombineElements)
	mux.HandleFunc("GET /api/elements/initial", h.InitialElements)
	mux.HandleFunc("GET /api/elements/initial/{languageCode}", h.InitialElements)
	mux.HandleFunc("GET /api/elements/initial-audio/{languageCode}", h.InitialAudio)
	mux.HandleFunc("GET /ws", h.ServeSocket)
	if options.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(options.Gatherer, promhttp.HandlerOpts{}))
	}

	return corsMiddleware(
		requestIDMiddleware(observeMiddleware(mux, options.HTTPMetrics)),
		options.AllowedOrigins,
	)
}
