package http

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/readspacehq/readspace/pkg/httpx"
)

// Metrics holds the service's prometheus instruments. One instance is
// created by the app and shared across handlers.
type Metrics struct {
	Requests         *prometheus.CounterVec
	OwnershipDenials prometheus.Counter
	SignupOutcomes   *prometheus.CounterVec
	ProfilesPending  prometheus.Counter
	BackfillRuns     prometheus.Counter
}

// NewMetrics registers the service metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "profiles",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		OwnershipDenials: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "profiles",
			Name:      "ownership_denials_total",
			Help:      "Requests rejected by the ownership gate.",
		}),
		SignupOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "profiles",
			Name:      "signup_outcomes_total",
			Help:      "Signups by bootstrap outcome.",
		}, []string{"outcome"}),
		ProfilesPending: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "profiles",
			Name:      "signup_profiles_pending_total",
			Help:      "Signups whose bootstrap profile write failed and was deferred to housekeeping.",
		}),
		BackfillRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "profiles",
			Name:      "backfill_runs_total",
			Help:      "Compatibility backfill invocations.",
		}),
	}
}

// CountProfilePending is wired into the signup service's pending hook.
func (m *Metrics) CountProfilePending() {
	m.ProfilesPending.Inc()
}

// instrument counts requests for a route, labeled by response status.
func (m *Metrics) instrument(route string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			m.Requests.WithLabelValues(route, strconv.Itoa(sw.status)).Inc()
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
