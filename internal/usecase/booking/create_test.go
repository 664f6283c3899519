package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	domain "github.com/velvetlens/studio-booking/internal/domain/booking"
)

var testNow = time.Date(2025, 6, 19, 12, 0, 0, 0, time.UTC)

func newCreateUC(repo domain.Repository) (*CreateSession, *spyCache, *sinkRecorder) {
	cache := newSpyCache()
	sink := &sinkRecorder{}
	uc := NewCreateSession(repo, domain.DefaultPolicy(time.UTC), cache, sink)
	uc.now = fixedClock(testNow)
	return uc, cache, sink
}

func validInput() CreateSessionInput {
	return CreateSessionInput{
		OwnerID:     1,
		Title:       "Portrait session",
		Start:       time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC),
		DurationMin: 60,
		Location:    "Studio A",
	}
}

func TestCreateSessionSuccess(t *testing.T) {
	repo := newMemRepo()
	uc, cache, sink := newCreateUC(repo)

	s, err := uc.Execute(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Execute() = %v", err)
	}
	if s.ID == 0 {
		t.Error("session not persisted")
	}
	if s.Status != string(domain.StatusPending) {
		t.Errorf("status = %q, want pending", s.Status)
	}
	if !repo.hasEvent(s.ID) {
		t.Error("calendar event not created")
	}
	if cache.invalidations() != 1 {
		t.Errorf("cache invalidations = %d, want 1", cache.invalidations())
	}
	if got := sink.actions(); len(got) != 1 || got[0] != "session_booked" {
		t.Errorf("audit actions = %v", got)
	}
}

func TestCreateSessionValidation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*CreateSessionInput)
		wantCode string
	}{
		{
			name:     "missing title",
			mutate:   func(in *CreateSessionInput) { in.Title = "" },
			wantCode: "missing_fields",
		},
		{
			name:     "zero start",
			mutate:   func(in *CreateSessionInput) { in.Start = time.Time{} },
			wantCode: "missing_fields",
		},
		{
			name:     "non-positive duration",
			mutate:   func(in *CreateSessionInput) { in.DurationMin = 0 },
			wantCode: "missing_fields",
		},
		{
			name: "start in the past",
			mutate: func(in *CreateSessionInput) {
				in.Start = testNow.Add(-time.Hour)
			},
			wantCode: "date_in_past",
		},
		{
			name: "start exactly now",
			mutate: func(in *CreateSessionInput) {
				in.Start = testNow
			},
			wantCode: "date_in_past",
		},
		{
			name: "before opening",
			mutate: func(in *CreateSessionInput) {
				in.Start = time.Date(2025, 6, 20, 8, 30, 0, 0, time.UTC)
			},
			wantCode: "outside_business_hours",
		},
		{
			name: "at closing hour",
			mutate: func(in *CreateSessionInput) {
				in.Start = time.Date(2025, 6, 20, 17, 0, 0, 0, time.UTC)
			},
			wantCode: "outside_business_hours",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, cache, sink := newCreateUC(newMemRepo())

			in := validInput()
			tt.mutate(&in)

			_, err := uc.Execute(context.Background(), in)
			if err == nil {
				t.Fatal("Execute() = nil, want validation error")
			}
			if !domain.IsKind(err, domain.KindValidation) {
				t.Errorf("kind of %v is not validation", err)
			}
			if err.Error() != tt.wantCode {
				t.Errorf("code = %q, want %q", err.Error(), tt.wantCode)
			}
			if cache.invalidations() != 0 {
				t.Error("cache invalidated on rejected request")
			}
			if len(sink.actions()) != 0 {
				t.Errorf("unexpected audit events %v", sink.actions())
			}
		})
	}
}

// Missing fields must win over any later check, even when the date is also
// in the past.
func TestCreateSessionValidationOrder(t *testing.T) {
	uc, _, _ := newCreateUC(newMemRepo())

	in := validInput()
	in.Title = ""
	in.Start = testNow.Add(-48 * time.Hour)

	_, err := uc.Execute(context.Background(), in)
	if err == nil || err.Error() != "missing_fields" {
		t.Errorf("err = %v, want missing_fields", err)
	}
}

func TestCreateSessionConflict(t *testing.T) {
	repo := newMemRepo()
	uc, _, sink := newCreateUC(repo)

	if _, err := uc.Execute(context.Background(), validInput()); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	// 10:30 overlaps the existing 10:00-11:00 booking.
	in := validInput()
	in.Start = time.Date(2025, 6, 20, 10, 30, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), in)
	if !domain.IsKind(err, domain.KindConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}

	if got := sink.actions(); len(got) != 2 || got[1] != "session_conflict" {
		t.Errorf("audit actions = %v", got)
	}
}

func TestCreateSessionBackToBack(t *testing.T) {
	repo := newMemRepo()
	uc, _, _ := newCreateUC(repo)

	if _, err := uc.Execute(context.Background(), validInput()); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	// 11:00 starts exactly where 10:00-11:00 ends: allowed.
	in := validInput()
	in.Start = time.Date(2025, 6, 20, 11, 0, 0, 0, time.UTC)

	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("back-to-back booking failed: %v", err)
	}
}

// Two requests racing for the same slot: exactly one wins.
func TestCreateSessionConcurrentSameSlot(t *testing.T) {
	repo := newMemRepo()
	uc, _, _ := newCreateUC(repo)

	const racers = 8

	var wg sync.WaitGroup
	errs := make([]error, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := validInput()
			in.OwnerID = uint(i + 1)
			_, errs[i] = uc.Execute(context.Background(), in)
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case domain.IsKind(err, domain.KindConflict):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if wins != 1 {
		t.Errorf("wins = %d, want exactly 1", wins)
	}
	if conflicts != racers-1 {
		t.Errorf("conflicts = %d, want %d", conflicts, racers-1)
	}
}

func TestCreateSessionNilCache(t *testing.T) {
	sink := &sinkRecorder{}
	uc := NewCreateSession(newMemRepo(), domain.DefaultPolicy(time.UTC), nil, sink)
	uc.now = fixedClock(testNow)

	if _, err := uc.Execute(context.Background(), validInput()); err != nil {
		t.Fatalf("Execute() with nil cache = %v", err)
	}
}
