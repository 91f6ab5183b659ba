package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
smtp:
  host: smtp.example.com
  port: 465
  username: watchdog
  password: hunter2
  sender: watchdog@example.com
  recipients:
    - ops@example.com
    - oncall@example.com
report_paths:
  - /srv/reports/tpt
recovery:
  script: /opt/downloader/main.py
  timeout: 5m
log:
  level: debug
  json: true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
	assert.Equal(t, 465, cfg.SMTP.Port)
	assert.Equal(t, []string{"ops@example.com", "oncall@example.com"}, cfg.SMTP.Recipients)
	assert.Equal(t, []string{"/srv/reports/tpt"}, cfg.ReportPaths)
	assert.Equal(t, "/opt/downloader/main.py", cfg.Recovery.Script)
	assert.Equal(t, 5*time.Minute, time.Duration(cfg.Recovery.Timeout))
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
smtp:
  host: smtp.example.com
  port: 465
  username: u
  password: p
  sender: s@example.com
  recipients: [r@example.com]
report_paths: [/srv/reports]
recovery:
  script: /opt/downloader/main.py
`))
	require.NoError(t, err)

	assert.Equal(t, "python3", cfg.Recovery.Python)
	assert.Equal(t, time.Duration(0), time.Duration(cfg.Recovery.Timeout),
		"timeout defaults to disabled")
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Metrics.Textfile)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrMalformed))
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(writeConfig(t, "smtp: [unclosed"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestLoadBadDuration(t *testing.T) {
	_, err := Load(writeConfig(t, `
smtp:
  host: h
  port: 465
  username: u
  password: p
  sender: s@example.com
  recipients: [r@example.com]
report_paths: [/srv/reports]
recovery:
  script: /opt/downloader/main.py
  timeout: five minutes
`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "no recipients",
			yaml: `
smtp:
  host: h
  port: 465
  username: u
  password: p
  sender: s@example.com
  recipients: []
report_paths: [/srv/reports]
recovery:
  script: /opt/downloader/main.py
`,
		},
		{
			name: "no report paths",
			yaml: `
smtp:
  host: h
  port: 465
  username: u
  password: p
  sender: s@example.com
  recipients: [r@example.com]
report_paths: []
recovery:
  script: /opt/downloader/main.py
`,
		},
		{
			name: "missing smtp host",
			yaml: `
smtp:
  port: 465
  username: u
  password: p
  sender: s@example.com
  recipients: [r@example.com]
report_paths: [/srv/reports]
recovery:
  script: /opt/downloader/main.py
`,
		},
		{
			name: "missing recovery script",
			yaml: `
smtp:
  host: h
  port: 465
  username: u
  password: p
  sender: s@example.com
  recipients: [r@example.com]
report_paths: [/srv/reports]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid), "want ErrInvalid, got %v", err)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvSMTPUsername, "env-user")
	t.Setenv(EnvSMTPPassword, "env-pass")

	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "env-user", cfg.SMTP.Username)
	assert.Equal(t, "env-pass", cfg.SMTP.Password)
}
