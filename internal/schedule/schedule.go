package schedule

import (
	"fmt"
	"time"
)

// Status of a scheduled test, derived from the clock on every read. The
// value cached on the Test row is display-only and never drives decisions.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusActive    Status = "Active"
	StatusCompleted Status = "Completed"
)

// Test windows are anchored to IST (+05:30) wall-clock time regardless of
// where the server or the client runs, so every participant observes the
// same Active window. This is the only place the offset appears.
var IST = time.FixedZone("IST", 5*3600+30*60)

// StartAt combines a scheduled calendar date with an "HH:MM" wall-clock
// string, interpreted in IST.
func StartAt(date time.Time, hhmm string) (time.Time, error) {
	clock, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid scheduled time %q: expected HH:MM", hhmm)
	}
	d := date.In(IST)
	return time.Date(d.Year(), d.Month(), d.Day(), clock.Hour(), clock.Minute(), 0, 0, IST), nil
}

// EndAt is the last instant at which the test is still Active.
func EndAt(start time.Time, durationMin int) time.Time {
	return start.Add(time.Duration(durationMin) * time.Minute)
}

// DeriveStatus is the whole state machine. Both window boundaries are
// inclusive: a submission arriving exactly at start or exactly at
// start+duration sees an Active test.
func DeriveStatus(start time.Time, durationMin int, now time.Time) Status {
	if now.Before(start) {
		return StatusPending
	}
	if !now.After(EndAt(start, durationMin)) {
		return StatusActive
	}
	return StatusCompleted
}

// FormatIST renders an instant for client display in the schedule's zone.
func FormatIST(t time.Time) string {
	return t.In(IST).Format("02/01/2006, 3:04:05 pm")
}
