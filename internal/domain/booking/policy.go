package booking

import "time"

// Policy carries the studio's booking rules. It is built from configuration
// and handed to the engine explicitly so tests can run arbitrary policies.
type Policy struct {
	// OpenHour is inclusive, CloseHour exclusive: a session may start at
	// OpenHour:00 but not at CloseHour:00.
	OpenHour  int
	CloseHour int

	// CancelLeadTime is the minimum time between now and a session's start
	// for cancellation to be allowed.
	CancelLeadTime time.Duration

	Location *time.Location
}

func DefaultPolicy(loc *time.Location) Policy {
	if loc == nil {
		loc = time.UTC
	}
	return Policy{
		OpenHour:       9,
		CloseHour:      17,
		CancelLeadTime: 24 * time.Hour,
		Location:       loc,
	}
}

// WithinBusinessHours checks the local hour-of-day of start against the
// [OpenHour, CloseHour) window.
func (p Policy) WithinBusinessHours(start time.Time) bool {
	hour := start.In(p.Location).Hour()
	return hour >= p.OpenHour && hour < p.CloseHour
}

// CanCancelAt reports whether a session starting at start may still be
// cancelled at now. Exactly at the lead-time boundary cancellation is
// refused.
func (p Policy) CanCancelAt(start, now time.Time) bool {
	return start.Sub(now) > p.CancelLeadTime
}
