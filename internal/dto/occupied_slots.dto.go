package dto

// OccupiedSlot is the public projection of a booked session: enough for the
// calendar frontend to grey out the slot, nothing that identifies the owner.
type OccupiedSlot struct {
	Time     string `json:"time"`
	Duration int    `json:"duration"`
	Title    string `json:"title"`
}

// OccupiedSlots maps YYYY-MM-DD dates to that day's slots. Dates serialize
// in chronological order because encoding/json emits map keys sorted.
type OccupiedSlots map[string][]OccupiedSlot
