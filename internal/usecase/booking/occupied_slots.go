package booking

import (
	"context"
	"fmt"
	"time"

	domain "github.com/velvetlens/studio-booking/internal/domain/booking"
	"github.com/velvetlens/studio-booking/internal/dto"
)

type ListOccupiedSlots struct {
	repo   domain.Repository
	policy domain.Policy
	cache  SlotCache

	now func() time.Time
}

func NewListOccupiedSlots(
	repo domain.Repository,
	policy domain.Policy,
	cache SlotCache,
) *ListOccupiedSlots {
	return &ListOccupiedSlots{
		repo:   repo,
		policy: policy,
		cache:  cache,
		now:    time.Now,
	}
}

// Execute returns non-cancelled sessions from the given date onward, grouped
// by calendar date. Only title, time of day and duration leave the engine:
// this view is public.
func (uc *ListOccupiedSlots) Execute(
	ctx context.Context,
	from time.Time,
) (dto.OccupiedSlots, error) {

	if from.IsZero() {
		now := uc.now().In(uc.policy.Location)
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.policy.Location)
	}

	fromKey := from.Format("2006-01-02")

	if uc.cache != nil {
		if slots, ok := uc.cache.Get(ctx, fromKey); ok {
			return slots, nil
		}
	}

	sessions, err := uc.repo.ListUpcoming(ctx, from)
	if err != nil {
		return nil, err
	}

	slots := make(dto.OccupiedSlots)
	for _, s := range sessions {
		local := s.StartTime.In(uc.policy.Location)
		date := local.Format("2006-01-02")
		slots[date] = append(slots[date], dto.OccupiedSlot{
			Time:     fmt.Sprintf("%d:%02d", local.Hour(), local.Minute()),
			Duration: s.DurationMin,
			Title:    s.Title,
		})
	}

	if uc.cache != nil {
		uc.cache.Set(ctx, fromKey, slots)
	}

	return slots, nil
}
