package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/reportsentinel/sentinel/pkg/recovery"
	"github.com/reportsentinel/sentinel/pkg/sentinel"
)

// TestNewTimer tests timer creation
func TestNewTimer(t *testing.T) {
	timer := NewTimer()

	if timer == nil {
		t.Fatal("NewTimer() returned nil")
	}

	if timer.start.IsZero() {
		t.Error("NewTimer() start time is zero")
	}

	if time.Since(timer.start) > time.Second {
		t.Error("NewTimer() start time is not recent")
	}
}

// TestTimerDuration tests duration measurement
func TestTimerDuration(t *testing.T) {
	timer := NewTimer()

	sleepDuration := 100 * time.Millisecond
	time.Sleep(sleepDuration)

	duration := timer.Duration()

	// Allow small scheduling overhead
	if duration < sleepDuration {
		t.Errorf("Timer.Duration() = %v, want >= %v", duration, sleepDuration)
	}
	if duration > sleepDuration+time.Second {
		t.Errorf("Timer.Duration() = %v, unexpectedly large", duration)
	}
}

func TestRecordRunAndWriteTextfile(t *testing.T) {
	RecordRun(sentinel.Result{
		RunID:      "test-run",
		State:      sentinel.StateDone,
		Checked:    2,
		MissingDir: "/srv/reports/tpt",
		Alerted:    true,
		Recovery:   recovery.Outcome{Status: recovery.StatusFailed, Reason: recovery.ReasonTimeout},
		Duration:   1500 * time.Millisecond,
	})

	path := filepath.Join(t.TempDir(), "sentinel.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	text := string(data)
	for _, want := range []string{
		"sentinel_directories_checked_total",
		"sentinel_reports_missing_total",
		"sentinel_alerts_sent_total",
		`sentinel_recovery_runs_total{status="failed"}`,
		"sentinel_last_run_duration_seconds",
		"sentinel_last_run_timestamp_seconds",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("textfile missing %q", want)
		}
	}
}
