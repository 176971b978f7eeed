// Package api exposes the fit and econ stages over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/parcel-planner/internal/rules"
)

// Options configures the HTTP surface.
type Options struct {
	CORSOrigins []string
	RateLimit   float64 // requests per second; 0 disables limiting
	RateBurst   int
	MetricsPath string
}

// Server serves the analysis API for one immutable RuleSet.
type Server struct {
	rules   *rules.RuleSet
	metrics *Metrics
}

// NewHandler builds the router. Metrics are registered with reg and, when
// opts.MetricsPath is set, exposed from gatherer on that path.
func NewHandler(rs *rules.RuleSet, opts Options, reg prometheus.Registerer, gatherer prometheus.Gatherer) (http.Handler, error) {
	if rs == nil {
		return nil, eris.New("api: rule set is required")
	}

	m, err := NewMetrics(reg)
	if err != nil {
		return nil, eris.Wrap(err, "api: register metrics")
	}
	s := &Server{rules: rs, metrics: m}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(requestID)
	r.Use(accessLog)
	r.Use(m.instrument)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)
	if opts.MetricsPath != "" && gatherer != nil {
		r.Handle(opts.MetricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		if opts.RateLimit > 0 {
			r.Use(rateLimit(rate.NewLimiter(rate.Limit(opts.RateLimit), max(1, opts.RateBurst))))
		}
		r.Get("/rules", s.handleRules)
		r.Post("/analysis/fit", s.handleFit)
		r.Post("/analysis/econ/assess", s.handleEcon)
	})

	return r, nil
}

// NewHTTPServer wraps the handler with timeouts suitable for a small JSON API.
func NewHTTPServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           http.TimeoutHandler(h, 10*time.Second, `{"error":"request timed out"}`),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
