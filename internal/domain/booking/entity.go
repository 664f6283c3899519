package booking

import (
	"time"

	"github.com/velvetlens/studio-booking/internal/models"
)

// DefaultEventColor is the calendar display color for booked sessions.
const DefaultEventColor = "#2563eb"

// ===============================
// Domain Actions
// ===============================

func Cancel(s *models.Session, now time.Time) error {
	if err := CanCancel(Status(s.Status)); err != nil {
		return err
	}

	s.Status = string(StatusCancelled)
	s.CancelledAt = &now
	return nil
}

func Confirm(s *models.Session, now time.Time) error {
	if err := CanConfirm(Status(s.Status)); err != nil {
		return err
	}

	s.Status = string(StatusConfirmed)
	s.ConfirmedAt = &now
	return nil
}

// EventFor builds the calendar projection of a freshly booked session.
func EventFor(s *models.Session, color string) *models.CalendarEvent {
	return &models.CalendarEvent{
		SessionID: s.ID,
		StartTime: s.StartTime,
		EndTime:   s.EndTime(),
		Title:     s.Title,
		Color:     color,
	}
}
