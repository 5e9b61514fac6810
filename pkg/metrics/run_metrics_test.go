package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snmp-reporter/pkg/config"
)

func TestRunMetricsCounters(t *testing.T) {
	m := NewRunMetrics()
	m.ObservePoll("ok", 10*time.Millisecond)
	m.ObservePoll("ok", 20*time.Millisecond)
	m.ObservePoll("failed", time.Second)
	m.SetDevices(2)
	m.ObserveSubmission(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.polls.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.polls.WithLabelValues("failed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.devices))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissions.WithLabelValues("success")))
}

func TestRunMetricsIndependentRegistries(t *testing.T) {
	a := NewRunMetrics()
	a.ObservePoll("ok", time.Millisecond)
	b := NewRunMetrics()

	assert.Equal(t, 0.0, testutil.ToFloat64(b.polls.WithLabelValues("ok")))
}

func TestNilRunMetricsIsNoop(t *testing.T) {
	var m *RunMetrics
	assert.NotPanics(t, func() {
		m.ObservePoll("ok", time.Millisecond)
		m.SetDevices(1)
		m.ObserveSubmission(false)
		m.Finish(time.Now(), false)
	})
	assert.NoError(t, m.Export(context.Background(), config.MetricsConfig{File: "x"}, "C7"))
}

func TestExportTextfile(t *testing.T) {
	m := NewRunMetrics()
	m.SetDevices(3)
	m.Finish(time.Unix(1700000000, 0), true)

	path := filepath.Join(t.TempDir(), "snmp_reporter.prom")
	require.NoError(t, m.Export(context.Background(), config.MetricsConfig{File: path}, "C7"))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "snmp_reporter_devices 3")
	assert.Contains(t, string(b), "snmp_reporter_last_run_success 1")
}

func TestExportPushgateway(t *testing.T) {
	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	m := NewRunMetrics()
	m.ObserveSubmission(false)
	require.NoError(t, m.Export(context.Background(), config.MetricsConfig{Pushgateway: srv.URL}, "C7"))

	assert.True(t, strings.HasPrefix(gotPath, "/metrics/job/snmp_reporter/client_code/C7"), gotPath)
	assert.NotEmpty(t, gotBody)
}
