package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/reportsentinel/sentinel/pkg/sentinel"
)

var (
	DirectoriesChecked = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sentinel_directories_checked_total",
			Help: "Total number of report directories checked",
		},
	)

	ReportsMissing = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sentinel_reports_missing_total",
			Help: "Total number of passes that found a missing report",
		},
	)

	AlertsSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sentinel_alerts_sent_total",
			Help: "Total number of alert emails sent",
		},
	)

	RecoveryRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_recovery_runs_total",
			Help: "Total number of recovery invocations by status",
		},
		[]string{"status"},
	)

	RunFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sentinel_run_failures_total",
			Help: "Total number of passes that ended with an unexpected fault",
		},
	)

	LastRunDuration = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sentinel_last_run_duration_seconds",
			Help: "Duration of the most recent watchdog pass in seconds",
		},
	)

	LastRunTimestamp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sentinel_last_run_timestamp_seconds",
			Help: "Unix timestamp of the most recent watchdog pass",
		},
	)
)

var registry = prometheus.NewRegistry()

func init() {
	registry.MustRegister(DirectoriesChecked)
	registry.MustRegister(ReportsMissing)
	registry.MustRegister(AlertsSent)
	registry.MustRegister(RecoveryRuns)
	registry.MustRegister(RunFailures)
	registry.MustRegister(LastRunDuration)
	registry.MustRegister(LastRunTimestamp)
}

// RecordRun folds one pass result into the metrics.
func RecordRun(res sentinel.Result) {
	DirectoriesChecked.Add(float64(res.Checked))
	if res.MissingDir != "" {
		ReportsMissing.Inc()
	}
	if res.Alerted {
		AlertsSent.Inc()
	}
	if res.Recovery.Status != "" {
		RecoveryRuns.WithLabelValues(string(res.Recovery.Status)).Inc()
	}
	if res.Err != nil {
		RunFailures.Inc()
	}
	LastRunDuration.Set(res.Duration.Seconds())
	LastRunTimestamp.Set(float64(time.Now().Unix()))
}

// WriteTextfile writes the current metrics to path in Prometheus text
// format. The sentinel is a one-shot process, so instead of serving
// /metrics it drops a file for the node_exporter textfile collector. The
// write is atomic (temp file + rename).
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, registry)
}

// Timer measures operation duration
type Timer struct {
	start time.Time
}

// NewTimer starts a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Duration returns the elapsed time since the timer started
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// ObserveDuration records the elapsed time into a gauge as seconds
func (t *Timer) ObserveDuration(gauge prometheus.Gauge) {
	gauge.Set(t.Duration().Seconds())
}
