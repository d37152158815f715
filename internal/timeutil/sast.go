package timeutil

import "time"

// SAST is the South African Standard Time location (UTC+2). All billing
// dates (issue, due, payment) are anchored here.
var SAST *time.Location

func init() {
	var err error
	SAST, err = time.LoadLocation("Africa/Johannesburg")
	if err != nil {
		SAST = time.FixedZone("SAST", 2*60*60)
	}
}

// Now returns the current time in SAST.
func Now() time.Time {
	return time.Now().In(SAST)
}

// Today returns the current date in SAST with the time part zeroed.
func Today() time.Time {
	return StartOfDay(Now())
}

// StartOfDay returns 00:00:00 SAST for the given time's date.
func StartOfDay(t time.Time) time.Time {
	s := t.In(SAST)
	return time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, SAST)
}

// MonthWindow returns the first instant of the given month and the first
// instant of the next month, in SAST.
func MonthWindow(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, SAST)
	return start, start.AddDate(0, 1, 0)
}

// Common layouts for SAST formatting
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006"
)
