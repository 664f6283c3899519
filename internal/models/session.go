package models

import "time"

type Session struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Title       string `gorm:"size:150;not null" json:"title"`
	Description string `gorm:"size:500" json:"description"`

	StartTime   time.Time `gorm:"index" json:"start_time"`
	DurationMin int       `json:"duration_minutes"`
	Location    string    `gorm:"size:150" json:"location"`

	PackageID *uint    `json:"package_id"`
	Package   *Package `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"package,omitempty"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EndTime is the exclusive end of the session's slot.
func (s *Session) EndTime() time.Time {
	return s.StartTime.Add(time.Duration(s.DurationMin) * time.Minute)
}
