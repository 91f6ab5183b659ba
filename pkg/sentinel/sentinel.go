package sentinel

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/reportsentinel/sentinel/pkg/log"
	"github.com/reportsentinel/sentinel/pkg/notify"
	"github.com/reportsentinel/sentinel/pkg/recovery"
)

// AlertSubject is the fixed subject line of the missing-report email.
const AlertSubject = "Last Possible Report Missing"

// State is the orchestrator's position in a run.
type State string

const (
	StateChecking   State = "checking"
	StateAlerting   State = "alerting"
	StateRecovering State = "recovering"
	StateDone       State = "done"
)

// Mailer sends the operator alert.
type Mailer interface {
	Send(subject, body string, attachments ...notify.Attachment) error
}

// Invoker triggers one recovery attempt.
type Invoker interface {
	Run(ctx context.Context) recovery.Outcome
}

// Checker tests a directory for the expected report.
type Checker interface {
	Exists(dir string) bool
}

// Result summarizes one watchdog pass.
type Result struct {
	RunID      string
	State      State
	Checked    int
	MissingDir string
	Alerted    bool
	Recovery   recovery.Outcome
	Err        error
	Duration   time.Duration
}

// Sentinel walks the configured report directories in order and reacts to
// the first missing report with exactly one alert and exactly one recovery
// attempt, leaving the remaining directories unexamined for the run. The
// next scheduled pass re-checks everything from the top.
type Sentinel struct {
	paths   []string
	checker Checker
	mailer  Mailer
	invoker Invoker
	logger  zerolog.Logger
}

// New returns a Sentinel over the given directories and collaborators.
func New(paths []string, checker Checker, mailer Mailer, invoker Invoker, logger zerolog.Logger) *Sentinel {
	return &Sentinel{
		paths:   paths,
		checker: checker,
		mailer:  mailer,
		invoker: invoker,
		logger:  logger,
	}
}

// Run performs one watchdog pass. Any unexpected fault, including a panic
// from a collaborator, is caught here, logged critical, and reported in the
// Result; Run itself never fails the process. The alert email is sent
// before the recovery outcome is known, so its body does not depend on
// whether recovery later succeeds.
func (s *Sentinel) Run(ctx context.Context) (res Result) {
	start := time.Now()
	res.RunID = uuid.NewString()
	res.State = StateChecking

	logger := s.logger.With().Str("run_id", res.RunID).Logger()

	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("run panicked: %v", r)
		}
		if res.Err != nil {
			log.Critical(logger, res.Err, "execution failed")
		}
		res.Duration = time.Since(start)
	}()

	for _, dir := range s.paths {
		if err := ctx.Err(); err != nil {
			res.Err = err
			return
		}

		res.Checked++
		if s.checker.Exists(dir) {
			logger.Debug().Str("dir", dir).Msg("expected report present")
			continue
		}

		res.State = StateAlerting
		res.MissingDir = dir

		body := fmt.Sprintf(
			"The last possible report in directory: %s is missing and automated"+
				" reprocessing will be triggered to attempt recovery", dir)
		logger.Warn().Str("dir", dir).Msg(body)

		if err := s.mailer.Send(AlertSubject, body); err != nil {
			res.Err = err
			return
		}
		res.Alerted = true
		logger.Debug().Msg("alert email sent")

		res.State = StateRecovering
		res.Recovery = s.invoker.Run(ctx)

		// Stop after the first reprocessing; the next scheduled run will
		// check this directory again.
		res.State = StateDone
		return
	}

	res.State = StateDone
	return
}
