package booking

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	domain "github.com/velvetlens/studio-booking/internal/domain/booking"
	"github.com/velvetlens/studio-booking/internal/dto"
	"github.com/velvetlens/studio-booking/internal/models"
)

func newListUC(repo domain.Repository) (*ListOccupiedSlots, *spyCache) {
	cache := newSpyCache()
	uc := NewListOccupiedSlots(repo, domain.DefaultPolicy(time.UTC), cache)
	uc.now = fixedClock(testNow)
	return uc, cache
}

func TestListOccupiedSlotsGrouping(t *testing.T) {
	repo := newMemRepo()
	book := func(day, hour, dur int, title string) {
		s := &models.Session{
			UserID:      1,
			Title:       title,
			StartTime:   time.Date(2025, 6, day, hour, 0, 0, 0, time.UTC),
			DurationMin: dur,
			Status:      string(domain.StatusPending),
		}
		if _, err := repo.Book(context.Background(), s); err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}
	book(20, 10, 60, "Portrait")
	book(20, 14, 90, "Family")
	book(21, 9, 120, "Product shoot")

	uc, cache := newListUC(repo)

	slots, err := uc.Execute(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("Execute() = %v", err)
	}

	if len(slots) != 2 {
		t.Fatalf("got %d dates, want 2: %v", len(slots), slots)
	}

	day20 := slots["2025-06-20"]
	if len(day20) != 2 {
		t.Fatalf("2025-06-20 has %d slots, want 2", len(day20))
	}
	want := dto.OccupiedSlot{Time: "10:00", Duration: 60, Title: "Portrait"}
	found := false
	for _, slot := range day20 {
		if reflect.DeepEqual(slot, want) {
			found = true
		}
	}
	if !found {
		t.Errorf("slot %+v missing from %v", want, day20)
	}

	if len(slots["2025-06-21"]) != 1 {
		t.Errorf("2025-06-21 = %v", slots["2025-06-21"])
	}

	// The zero from defaults to today and the result gets cached under it.
	if cache.sets != 1 {
		t.Errorf("cache sets = %d, want 1", cache.sets)
	}
	if _, ok := cache.stored["2025-06-19"]; !ok {
		t.Errorf("cached keys = %v, want 2025-06-19", cache.stored)
	}
}

func TestListOccupiedSlotsExcludesCancelled(t *testing.T) {
	repo := newMemRepo()
	s := seedSession(t, repo, 1, time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC))
	s.Status = string(domain.StatusCancelled)
	if err := repo.SaveSession(context.Background(), s); err != nil {
		t.Fatal(err)
	}

	uc, _ := newListUC(repo)

	slots, err := uc.Execute(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("Execute() = %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("slots = %v, want empty", slots)
	}
}

func TestListOccupiedSlotsCacheHit(t *testing.T) {
	canned := dto.OccupiedSlots{
		"2025-06-20": {{Time: "10:00", Duration: 60, Title: "Portrait"}},
	}

	cache := newSpyCache()
	cache.stored["2025-06-20"] = canned

	repoCalled := false
	repo := &mockRepo{
		listUpcomingFunc: func(ctx context.Context, from time.Time) ([]models.Session, error) {
			repoCalled = true
			return nil, nil
		},
	}

	uc := NewListOccupiedSlots(repo, domain.DefaultPolicy(time.UTC), cache)
	uc.now = fixedClock(testNow)

	from := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	slots, err := uc.Execute(context.Background(), from)
	if err != nil {
		t.Fatalf("Execute() = %v", err)
	}
	if repoCalled {
		t.Error("repository hit despite cached result")
	}
	if !reflect.DeepEqual(slots, canned) {
		t.Errorf("slots = %v, want cached %v", slots, canned)
	}
}

// Date keys serialize chronologically because encoding/json sorts map keys
// and YYYY-MM-DD sorts like dates.
func TestOccupiedSlotsJSONDateOrder(t *testing.T) {
	slots := dto.OccupiedSlots{
		"2025-07-01": {{Time: "10:00", Duration: 60, Title: "B"}},
		"2025-06-20": {{Time: "9:00", Duration: 60, Title: "A"}},
		"2025-06-21": {{Time: "11:00", Duration: 30, Title: "C"}},
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		t.Fatal(err)
	}

	s := string(raw)
	i20 := strings.Index(s, "2025-06-20")
	i21 := strings.Index(s, "2025-06-21")
	i01 := strings.Index(s, "2025-07-01")
	if i20 < 0 || i21 < 0 || i01 < 0 {
		t.Fatalf("missing date key in %s", s)
	}
	if !(i20 < i21 && i21 < i01) {
		t.Errorf("dates out of order in %s", s)
	}
}
