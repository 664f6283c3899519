package booking

import (
	"context"
	"time"

	"github.com/velvetlens/studio-booking/internal/audit"
	domain "github.com/velvetlens/studio-booking/internal/domain/booking"
	"github.com/velvetlens/studio-booking/internal/models"
)

type CancelSession struct {
	repo   domain.Repository
	policy domain.Policy
	cache  SlotCache
	audit  AuditSink

	now func() time.Time
}

func NewCancelSession(
	repo domain.Repository,
	policy domain.Policy,
	cache SlotCache,
	audit AuditSink,
) *CancelSession {
	return &CancelSession{
		repo:   repo,
		policy: policy,
		cache:  cache,
		audit:  audit,
		now:    time.Now,
	}
}

// Execute cancels the requester's session. The status change is committed
// before the calendar event is removed, so a failed removal leaves a
// cancelled session whose event delete can simply be retried.
func (uc *CancelSession) Execute(
	ctx context.Context,
	sessionID uint,
	requesterID uint,
) (*models.Session, error) {

	s, err := uc.repo.GetSessionForOwner(ctx, sessionID, requesterID)
	if err != nil {
		return nil, err
	}

	now := uc.now()

	if !uc.policy.CanCancelAt(s.StartTime, now) {
		return nil, domain.ErrPolicy("cancellation_window_closed", "cancellation window closed")
	}

	if err := domain.Cancel(s, now); err != nil {
		return nil, err
	}

	if err := uc.repo.SaveSession(ctx, s); err != nil {
		return nil, err
	}

	if err := uc.repo.DeleteEventForSession(ctx, sessionID); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &requesterID,
		Action:   "session_cancelled",
		Entity:   "session",
		EntityID: &s.ID,
	})

	return s, nil
}
