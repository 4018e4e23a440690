package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Contadores(t *testing.T) {
	m := New()

	m.IncAssignment(OutcomeAssigned, "person")
	m.IncAssignment(OutcomeAssigned, "person")
	m.IncAssignment(OutcomeConflict, "person")
	m.AddAuditEntries("Status", 2)
	m.ObserveAssign(time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Assignments.WithLabelValues(OutcomeAssigned, "person")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Assignments.WithLabelValues(OutcomeConflict, "person")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AuditEntries.WithLabelValues("Status")))
}

func TestMetrics_NilEsNoop(t *testing.T) {
	var m *Metrics
	m.IncAssignment(OutcomeAssigned, "official")
	m.AddAuditEntries("Status", 1)
	m.ObserveAssign(time.Now())
	m.IncNotificationMarked()
	m.IncTxRetry()
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.IncNotificationMarked()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "secretario_notifications_marked_sent_total 1"))
}
