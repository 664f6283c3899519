package booking

import "time"

// Slot is a half-open interval [Start, End) on the studio calendar.
type Slot struct {
	Start time.Time
	End   time.Time
}

func NewSlot(start time.Time, durationMin int) Slot {
	return Slot{
		Start: start,
		End:   start.Add(time.Duration(durationMin) * time.Minute),
	}
}

// Overlaps applies the half-open interval rule: [s1,e1) and [s2,e2) overlap
// iff s1 < e2 && s2 < e1. Back-to-back slots do not overlap.
func (s Slot) Overlaps(other Slot) bool {
	return s.Start.Before(other.End) && other.Start.Before(s.End)
}
