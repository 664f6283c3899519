package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/velvetlens/studio-booking/internal/audit"
	domain "github.com/velvetlens/studio-booking/internal/domain/booking"
	"github.com/velvetlens/studio-booking/internal/models"
)

type CustomRequestInput struct {
	OwnerID uint

	Kind        string
	DurationMin int
	PhotoCount  int
	Locations   int
}

// CreateCustomRequest records a free-form package customization. It gets a
// session row with status custom so it shows up next to regular bookings,
// but no calendar event and no conflict check: the studio schedules it by
// hand.
type CreateCustomRequest struct {
	repo  domain.Repository
	audit AuditSink

	now func() time.Time
}

func NewCreateCustomRequest(
	repo domain.Repository,
	audit AuditSink,
) *CreateCustomRequest {
	return &CreateCustomRequest{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

func (uc *CreateCustomRequest) Execute(
	ctx context.Context,
	in CustomRequestInput,
) (*models.Session, error) {

	if in.Kind == "" || in.DurationMin <= 0 || in.PhotoCount <= 0 || in.Locations <= 0 {
		return nil, domain.ErrValidation("missing_fields", "missing required fields")
	}

	s := &models.Session{
		UserID:      in.OwnerID,
		Title:       "Custom: " + in.Kind,
		Description: fmt.Sprintf("Photos: %d, Locations: %d", in.PhotoCount, in.Locations),
		StartTime:   uc.now(),
		DurationMin: in.DurationMin,
		Location:    "Custom",
		Status:      string(domain.StatusCustom),
	}

	if err := uc.repo.CreateCustom(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.OwnerID,
		Action:   "custom_request_created",
		Entity:   "session",
		EntityID: &s.ID,
	})

	return s, nil
}
