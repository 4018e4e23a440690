package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeAssigned          = "assigned"
	OutcomeConflict          = "conflict"
	OutcomeInvalidInput      = "invalid_input"
	OutcomeNotFound          = "not_found"
	OutcomeInvalidTransition = "invalid_transition"
	OutcomeError             = "error"
)

// Metrics agrupa los contadores del motor de asignación y la bitácora.
// Todos los métodos aceptan receptor nil.
type Metrics struct {
	registry prometheus.Gatherer

	Assignments     *prometheus.CounterVec
	AuditEntries    *prometheus.CounterVec
	AssignDuration  prometheus.Histogram
	NotificationsOK prometheus.Counter
	TxRetries       prometheus.Counter
}

// New registra las métricas en un registry propio para no chocar entre tests.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Assignments: f.NewCounterVec(prometheus.CounterOpts{
			Name: "secretario_assignments_total",
			Help: "Assignment attempts by outcome",
		}, []string{"outcome", "delegate"}),
		AuditEntries: f.NewCounterVec(prometheus.CounterOpts{
			Name: "secretario_audit_entries_total",
			Help: "Audit entries written by field",
		}, []string{"field"}),
		AssignDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "secretario_assign_duration_seconds",
			Help:    "Duration of Assign units of work",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		NotificationsOK: f.NewCounter(prometheus.CounterOpts{
			Name: "secretario_notifications_marked_sent_total",
			Help: "Audit entries marked as sent by the dispatcher",
		}),
		TxRetries: f.NewCounter(prometheus.CounterOpts{
			Name: "secretario_tx_retries_total",
			Help: "Transactions retried after serialization failure or deadlock",
		}),
	}
}

func (m *Metrics) IncAssignment(outcome, delegate string) {
	if m == nil {
		return
	}
	m.Assignments.WithLabelValues(outcome, delegate).Inc()
}

func (m *Metrics) AddAuditEntries(field string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.AuditEntries.WithLabelValues(field).Add(float64(n))
}

// ObserveAssign recibe el time.Now() del inicio de la operación.
func (m *Metrics) ObserveAssign(start time.Time) {
	if m == nil {
		return
	}
	m.AssignDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncNotificationMarked() {
	if m == nil {
		return
	}
	m.NotificationsOK.Inc()
}

func (m *Metrics) IncTxRetry() {
	if m == nil {
		return
	}
	m.TxRetries.Inc()
}

// Handler expone /metrics.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
