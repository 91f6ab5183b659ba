package recovery

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Status is the coarse result of a recovery invocation.
type Status string

const (
	// StatusSucceeded means the entry point ran and exited zero.
	StatusSucceeded Status = "succeeded"
	// StatusFailed means the invocation was attempted and did not complete
	// cleanly; Reason classifies why.
	StatusFailed Status = "failed"
	// StatusSkipped means the invocation was not attempted at all.
	StatusSkipped Status = "skipped"
)

// Reason classifies a non-succeeded outcome.
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonMissingEntry Reason = "missing-entrypoint"
	ReasonBootstrap    Reason = "bootstrap"
	ReasonTimeout      Reason = "timeout"
	ReasonNonZeroExit  Reason = "exit"
	ReasonInterrupted  Reason = "interrupted"
	ReasonInternal     Reason = "internal"
)

// Outcome describes one recovery invocation. It is a value, never an error:
// recovery failures are contained here and must not abort the caller's run.
type Outcome struct {
	Status   Status
	Reason   Reason
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	Err      error
}

// Succeeded reports whether the invocation completed without a fault. This
// reflects process exit only; the tool's own success is not verified beyond
// its exit code.
func (o Outcome) Succeeded() bool {
	return o.Status == StatusSucceeded
}

// Invoker runs the external report generator once, inside an isolated
// Python environment rooted next to its project directory. No retries: the
// next scheduled watchdog pass is the retry mechanism.
type Invoker struct {
	// Script is the entry-point file; its parent directory is the project
	// directory and the working directory for the run.
	Script string

	// Python is the base interpreter used to create the virtual
	// environment when it does not exist yet.
	Python string

	// Timeout bounds entry-point execution. Zero means no ceiling.
	Timeout time.Duration

	logger zerolog.Logger
}

// NewInvoker returns an Invoker for the given entry point.
func NewInvoker(script, python string, timeout time.Duration, logger zerolog.Logger) *Invoker {
	return &Invoker{
		Script:  script,
		Python:  python,
		Timeout: timeout,
		logger:  logger,
	}
}

// Run performs one recovery attempt: resolve the entry point, ensure the
// virtual environment (creating it and installing declared dependencies on
// first use), then execute the entry point with the project directory as
// working directory. Every failure mode is classified into the Outcome and
// logged; nothing escapes as an error or panic.
func (inv *Invoker) Run(ctx context.Context) Outcome {
	start := time.Now()

	script, err := filepath.Abs(inv.Script)
	if err != nil {
		inv.logger.Error().Err(err).Str("script", inv.Script).Msg("cannot resolve entry point path")
		return Outcome{Status: StatusFailed, Reason: ReasonInternal, Duration: time.Since(start), Err: err}
	}
	project := filepath.Dir(script)

	// Missing entry point aborts before any side effect. The reference
	// implementation logged and invoked the missing path anyway; that
	// inconsistency is resolved here in favor of not attempting it.
	if _, err := os.Stat(script); err != nil {
		inv.logger.Error().Str("script", script).Msg("entry point not found, skipping recovery")
		return Outcome{Status: StatusSkipped, Reason: ReasonMissingEntry, Duration: time.Since(start), Err: err}
	}

	venvDir := filepath.Join(project, ".venv")
	pythonBin := filepath.Join(venvDir, "bin", "python")

	if _, err := os.Stat(venvDir); err != nil {
		if !os.IsNotExist(err) {
			inv.logger.Error().Err(err).Str("venv", venvDir).Msg("cannot inspect virtual environment")
			return Outcome{Status: StatusFailed, Reason: ReasonInternal, Duration: time.Since(start), Err: err}
		}

		inv.logger.Info().Str("venv", venvDir).Msg("creating virtual environment")
		if stderr, err := inv.bootstrapStep(ctx, project, inv.Python, "-m", "venv", venvDir); err != nil {
			inv.logger.Error().Err(err).Str("stderr", stderr).Msg("virtual environment creation failed")
			return Outcome{Status: StatusFailed, Reason: ReasonBootstrap, Stderr: stderr, Duration: time.Since(start), Err: err}
		}

		req := filepath.Join(project, "requirements.txt")
		if _, err := os.Stat(req); err == nil {
			inv.logger.Info().Str("requirements", req).Msg("installing dependencies")
			if stderr, err := inv.bootstrapStep(ctx, project, pythonBin, "-m", "pip", "install", "-r", req); err != nil {
				inv.logger.Error().Err(err).Str("stderr", stderr).Msg("dependency installation failed")
				return Outcome{Status: StatusFailed, Reason: ReasonBootstrap, Stderr: stderr, Duration: time.Since(start), Err: err}
			}
		}
	}

	inv.logger.Info().Str("script", script).Msg("running recovery tool")
	return inv.execute(ctx, pythonBin, script, project, start)
}

// bootstrapStep runs one environment-setup command to completion, returning
// its captured stderr alongside any error.
func (inv *Invoker) bootstrapStep(ctx context.Context, dir, bin string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.String(), err
}

// execute runs the entry point and classifies the result: clean exit,
// timeout, non-zero exit, external interruption, or anything else.
func (inv *Invoker) execute(ctx context.Context, bin, script, dir string, start time.Time) Outcome {
	runCtx := ctx
	cancel := func() {}
	if inv.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, inv.Timeout)
	}
	defer cancel()

	cmd := exec.CommandContext(runCtx, bin, script)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	out := Outcome{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
		Err:      err,
	}

	switch {
	case err == nil:
		out.Status = StatusSucceeded
		inv.logger.Debug().Str("output", out.Stdout).Msg("recovery tool output")

	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		out.Status = StatusFailed
		out.Reason = ReasonTimeout
		inv.logger.Error().Dur("timeout", inv.Timeout).Msg("recovery tool timed out")

	case errors.Is(ctx.Err(), context.Canceled):
		out.Status = StatusFailed
		out.Reason = ReasonInterrupted
		inv.logger.Debug().Msg("recovery tool interrupted")

	default:
		out.Status = StatusFailed
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.Reason = ReasonNonZeroExit
			out.ExitCode = exitErr.ExitCode()
			inv.logger.Error().Int("code", out.ExitCode).Str("stderr", out.Stderr).Msg("recovery tool failed")
		} else {
			out.Reason = ReasonInternal
			inv.logger.Error().Err(err).Msg("unexpected recovery error")
		}
	}

	return out
}
