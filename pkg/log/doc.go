/*
Package log provides structured logging for the sentinel using zerolog.

The log package wraps the zerolog library to provide JSON-structured logging
with component-specific loggers, configurable log levels, and helper functions
for common logging patterns. All logs include timestamps and support filtering
by severity level.

# Core Components

Global Logger:
  - Package-level zerolog.Logger instance
  - Initialized once via log.Init() at process entry
  - Child loggers are derived from it and handed to components, so the
    process-wide state is written exactly once per run

Log Levels:
  - Debug: detailed flow (per-directory checks, captured tool output)
  - Info: run lifecycle (start, venv creation, summary)
  - Warn: a report is missing
  - Error: alert or recovery problems
  - Critical: top-level unexpected faults; logged at fatal severity via
    log.Critical without terminating the process, since a watchdog run must
    end with a normal exit either way
  - Fatal: unrecoverable startup errors only (exits the process)

Context Loggers:
  - WithComponent: add a component name to all logs
  - WithRunID: add the per-run UUID so one cron pass can be grepped out of an
    interleaved log stream

# Usage

	log.Init(log.Config{
		Level:      log.InfoLevel,
		JSONOutput: true,
		Output:     os.Stdout,
	})

	checkLog := log.WithComponent("sentinel")
	checkLog.Warn().Str("dir", dir).Msg("expected report missing")

	log.Critical(checkLog, err, "run failed")
*/
package log
