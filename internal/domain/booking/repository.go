package booking

import (
	"context"
	"time"

	"github.com/velvetlens/studio-booking/internal/models"
)

// Repository is the engine's single persistence port. The engine never
// branches on which backend sits behind it.
type Repository interface {
	// -------- Booking (create) --------

	// Book persists the session and its calendar event as one unit. The
	// implementation must serialize the conflict scan and the inserts
	// against concurrent Book calls for the same calendar date and return
	// ErrSlotTaken when the slot overlaps an existing event.
	Book(
		ctx context.Context,
		s *models.Session,
	) (*models.CalendarEvent, error)

	// CreateCustom persists a free-form customization request. No calendar
	// event, no conflict check.
	CreateCustom(
		ctx context.Context,
		s *models.Session,
	) error

	// -------- Booking (lookup) --------

	GetSessionForOwner(
		ctx context.Context,
		sessionID uint,
		ownerID uint,
	) (*models.Session, error)

	GetSessionByID(
		ctx context.Context,
		sessionID uint,
	) (*models.Session, error)

	// -------- Booking (state change) --------

	SaveSession(
		ctx context.Context,
		s *models.Session,
	) error

	// DeleteEventForSession removes the session's calendar event. It is
	// idempotent so a failed cancellation can be retried after the status
	// change has already been committed.
	DeleteEventForSession(
		ctx context.Context,
		sessionID uint,
	) error

	// -------- Reporting --------

	ListUpcoming(
		ctx context.Context,
		from time.Time,
	) ([]models.Session, error)
}
