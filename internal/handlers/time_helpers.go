package handlers

import (
	"time"

	"github.com/velvetlens/studio-booking/internal/timezone"
)

// All request dates are interpreted in the studio's timezone: the calendar
// is a physical studio, not the caller's wall clock.

func studioLocation(tz string) *time.Location {
	return timezone.Location(tz)
}

func parseDate(tz, dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, studioLocation(tz))
}

func parseDateTime(tz, dateStr, timeStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		studioLocation(tz),
	)
}
