package report

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// CutoffHour is the local hour after which today's report is expected.
	// Before it, yesterday's report is still the latest possible one.
	CutoffHour = 17

	// filenameLayout renders a date as DD-MM-YYYY.
	filenameLayout = "02-01-2006"
)

// referenceZone is the timezone the cutoff rule is evaluated in.
var referenceZone = mustLoadLocation("America/New_York")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// ExpectedDate returns the calendar date of the latest report that can
// possibly exist at the given instant. The instant is converted to the
// reference zone; if the local hour is before the cutoff the expected report
// is yesterday's, otherwise today's. Only the hour gates the branch, so
// 16:59 and 17:00 differ in outcome but 17:00 and 17:59 do not. The result
// is midnight of that date in the reference zone.
func ExpectedDate(now time.Time) time.Time {
	local := now.In(referenceZone)
	if local.Hour() < CutoffHour {
		local = local.AddDate(0, 0, -1)
	}
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, referenceZone)
}

// Filename returns the report filename for a date, DD-MM-YYYY.csv.
func Filename(date time.Time) string {
	return date.Format(filenameLayout) + ".csv"
}

// Checker tests report directories for the expected report file. The clock
// is injectable for tests; everything else is a pure function of the
// directory and the computed date. No caching between calls.
type Checker struct {
	Now func() time.Time
}

// NewChecker returns a Checker on the wall clock.
func NewChecker() *Checker {
	return &Checker{Now: time.Now}
}

// Exists reports whether the expected report file is present directly inside
// dir. Existence only; content is not inspected, and a directory with the
// expected name does not count.
func (c *Checker) Exists(dir string) bool {
	now := c.Now
	if now == nil {
		now = time.Now
	}
	info, err := os.Stat(filepath.Join(dir, Filename(ExpectedDate(now()))))
	return err == nil && !info.IsDir()
}
