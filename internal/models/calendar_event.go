package models

import "time"

// CalendarEvent is the scheduling-grid projection of an active Session.
// It exists exactly while its session still occupies a slot; cancelling the
// session removes it.
type CalendarEvent struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SessionID uint    `gorm:"uniqueIndex" json:"session_id"`
	Session   Session `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	StartTime time.Time `gorm:"index" json:"start"`
	EndTime   time.Time `json:"end"`

	Title string `gorm:"size:150" json:"title"`
	Color string `gorm:"size:10;default:'#2563eb'" json:"color"`

	CreatedAt time.Time `json:"created_at"`
}
