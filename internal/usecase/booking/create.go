package booking

import (
	"context"
	"time"

	"github.com/velvetlens/studio-booking/internal/audit"
	domain "github.com/velvetlens/studio-booking/internal/domain/booking"
	"github.com/velvetlens/studio-booking/internal/dto"
	"github.com/velvetlens/studio-booking/internal/models"
)

// SlotCache is the slice of the cache the engine needs for invalidation and
// the occupied-slots read path.
type SlotCache interface {
	Get(ctx context.Context, from string) (dto.OccupiedSlots, bool)
	Set(ctx context.Context, from string, slots dto.OccupiedSlots)
	Invalidate(ctx context.Context)
}

// AuditSink receives lifecycle events without ever blocking the request.
type AuditSink interface {
	Dispatch(ev audit.Event)
}

// ======================================================
// INPUT
// ======================================================

type CreateSessionInput struct {
	OwnerID uint

	Title       string
	Description string

	Start       time.Time
	DurationMin int
	Location    string

	PackageID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateSession struct {
	repo   domain.Repository
	policy domain.Policy
	cache  SlotCache
	audit  AuditSink

	now func() time.Time
}

func NewCreateSession(
	repo domain.Repository,
	policy domain.Policy,
	cache SlotCache,
	audit AuditSink,
) *CreateSession {
	return &CreateSession{
		repo:   repo,
		policy: policy,
		cache:  cache,
		audit:  audit,
		now:    time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute validates the request in a fixed order (first failure wins), then
// hands the session to the repository, which owns the conflict scan and the
// atomic session+event write.
func (uc *CreateSession) Execute(
	ctx context.Context,
	in CreateSessionInput,
) (*models.Session, error) {

	if in.Title == "" || in.Start.IsZero() || in.DurationMin <= 0 {
		return nil, domain.ErrValidation("missing_fields", "missing required fields")
	}

	if !in.Start.After(uc.now()) {
		return nil, domain.ErrValidation("date_in_past", "session date in the past")
	}

	if !uc.policy.WithinBusinessHours(in.Start) {
		return nil, domain.ErrValidation("outside_business_hours", "outside business hours")
	}

	s := &models.Session{
		UserID:      in.OwnerID,
		Title:       in.Title,
		Description: in.Description,
		StartTime:   in.Start,
		DurationMin: in.DurationMin,
		Location:    in.Location,
		PackageID:   in.PackageID,
		Status:      string(domain.InitialStatus()),
	}

	if _, err := uc.repo.Book(ctx, s); err != nil {
		if domain.IsKind(err, domain.KindConflict) {
			uc.audit.Dispatch(audit.Event{
				UserID: &in.OwnerID,
				Action: "session_conflict",
				Entity: "session",
				Metadata: map[string]any{
					"start":    in.Start,
					"duration": in.DurationMin,
				},
			})
		}
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.OwnerID,
		Action:   "session_booked",
		Entity:   "session",
		EntityID: &s.ID,
	})

	return s, nil
}
