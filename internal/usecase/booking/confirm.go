package booking

import (
	"context"
	"time"

	"github.com/velvetlens/studio-booking/internal/audit"
	domain "github.com/velvetlens/studio-booking/internal/domain/booking"
	"github.com/velvetlens/studio-booking/internal/models"
)

type ConfirmSession struct {
	repo  domain.Repository
	cache SlotCache
	audit AuditSink

	now func() time.Time
}

func NewConfirmSession(
	repo domain.Repository,
	cache SlotCache,
	audit AuditSink,
) *ConfirmSession {
	return &ConfirmSession{
		repo:  repo,
		cache: cache,
		audit: audit,
		now:   time.Now,
	}
}

// Execute flips a pending session to confirmed after its payment settles.
// Confirming an already-confirmed session is a no-op: Stripe retries
// webhook deliveries.
func (uc *ConfirmSession) Execute(
	ctx context.Context,
	sessionID uint,
) (*models.Session, error) {

	s, err := uc.repo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if s.Status == string(domain.StatusConfirmed) {
		return s, nil
	}

	if err := domain.Confirm(s, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.SaveSession(ctx, s); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &s.UserID,
		Action:   "session_confirmed",
		Entity:   "session",
		EntityID: &s.ID,
	})

	return s, nil
}
