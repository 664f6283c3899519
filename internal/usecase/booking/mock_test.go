package booking

import (
	"context"
	"sync"
	"time"

	"github.com/velvetlens/studio-booking/internal/audit"
	domain "github.com/velvetlens/studio-booking/internal/domain/booking"
	"github.com/velvetlens/studio-booking/internal/dto"
	"github.com/velvetlens/studio-booking/internal/models"
)

// mockRepo lets each test override exactly the calls it cares about.
type mockRepo struct {
	bookFunc         func(ctx context.Context, s *models.Session) (*models.CalendarEvent, error)
	createCustomFunc func(ctx context.Context, s *models.Session) error
	getForOwnerFunc  func(ctx context.Context, sessionID, ownerID uint) (*models.Session, error)
	getByIDFunc      func(ctx context.Context, sessionID uint) (*models.Session, error)
	saveFunc         func(ctx context.Context, s *models.Session) error
	deleteEventFunc  func(ctx context.Context, sessionID uint) error
	listUpcomingFunc func(ctx context.Context, from time.Time) ([]models.Session, error)
}

func (m *mockRepo) Book(ctx context.Context, s *models.Session) (*models.CalendarEvent, error) {
	if m.bookFunc == nil {
		s.ID = 1
		return domain.EventFor(s, domain.DefaultEventColor), nil
	}
	return m.bookFunc(ctx, s)
}

func (m *mockRepo) CreateCustom(ctx context.Context, s *models.Session) error {
	if m.createCustomFunc == nil {
		s.ID = 1
		return nil
	}
	return m.createCustomFunc(ctx, s)
}

func (m *mockRepo) GetSessionForOwner(ctx context.Context, sessionID, ownerID uint) (*models.Session, error) {
	return m.getForOwnerFunc(ctx, sessionID, ownerID)
}

func (m *mockRepo) GetSessionByID(ctx context.Context, sessionID uint) (*models.Session, error) {
	return m.getByIDFunc(ctx, sessionID)
}

func (m *mockRepo) SaveSession(ctx context.Context, s *models.Session) error {
	if m.saveFunc == nil {
		return nil
	}
	return m.saveFunc(ctx, s)
}

func (m *mockRepo) DeleteEventForSession(ctx context.Context, sessionID uint) error {
	if m.deleteEventFunc == nil {
		return nil
	}
	return m.deleteEventFunc(ctx, sessionID)
}

func (m *mockRepo) ListUpcoming(ctx context.Context, from time.Time) ([]models.Session, error) {
	return m.listUpcomingFunc(ctx, from)
}

var _ domain.Repository = (*mockRepo)(nil)

// memRepo is an in-memory repository whose Book serializes the conflict
// scan and the inserts, the same contract the real store honors.
type memRepo struct {
	mu       sync.Mutex
	nextID   uint
	sessions map[uint]*models.Session
	events   map[uint]models.CalendarEvent
}

func newMemRepo() *memRepo {
	return &memRepo{
		sessions: make(map[uint]*models.Session),
		events:   make(map[uint]models.CalendarEvent),
	}
}

func (r *memRepo) Book(ctx context.Context, s *models.Session) (*models.CalendarEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot := domain.NewSlot(s.StartTime, s.DurationMin)
	for _, ev := range r.events {
		if slot.Overlaps(domain.Slot{Start: ev.StartTime, End: ev.EndTime}) {
			return nil, domain.ErrSlotTaken()
		}
	}

	r.nextID++
	s.ID = r.nextID
	cp := *s
	r.sessions[s.ID] = &cp

	ev := domain.EventFor(s, domain.DefaultEventColor)
	ev.ID = s.ID
	r.events[s.ID] = *ev
	return ev, nil
}

func (r *memRepo) CreateCustom(ctx context.Context, s *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	s.ID = r.nextID
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *memRepo) GetSessionForOwner(ctx context.Context, sessionID, ownerID uint) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok || s.UserID != ownerID {
		return nil, domain.ErrNotFound("session_not_found", "session not found")
	}
	cp := *s
	return &cp, nil
}

func (r *memRepo) GetSessionByID(ctx context.Context, sessionID uint) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, domain.ErrNotFound("session_not_found", "session not found")
	}
	cp := *s
	return &cp, nil
}

func (r *memRepo) SaveSession(ctx context.Context, s *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *memRepo) DeleteEventForSession(ctx context.Context, sessionID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.events, sessionID)
	return nil
}

func (r *memRepo) ListUpcoming(ctx context.Context, from time.Time) ([]models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Session
	for _, s := range r.sessions {
		if s.Status != string(domain.StatusCancelled) && !s.StartTime.Before(from) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *memRepo) hasEvent(sessionID uint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.events[sessionID]
	return ok
}

var _ domain.Repository = (*memRepo)(nil)

// spyCache records invalidations and serves a canned occupied-slots map.
type spyCache struct {
	mu           sync.Mutex
	stored      map[string]dto.OccupiedSlots
	invalidated int
	gets        int
	sets        int
}

func newSpyCache() *spyCache {
	return &spyCache{stored: make(map[string]dto.OccupiedSlots)}
}

func (c *spyCache) Get(ctx context.Context, from string) (dto.OccupiedSlots, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gets++
	slots, ok := c.stored[from]
	return slots, ok
}

func (c *spyCache) Set(ctx context.Context, from string, slots dto.OccupiedSlots) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sets++
	c.stored[from] = slots
}

func (c *spyCache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.invalidated++
	c.stored = make(map[string]dto.OccupiedSlots)
}

func (c *spyCache) invalidations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invalidated
}

// sinkRecorder collects dispatched audit events.
type sinkRecorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *sinkRecorder) Dispatch(ev audit.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *sinkRecorder) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.events))
	for i, ev := range s.events {
		out[i] = ev.Action
	}
	return out
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
