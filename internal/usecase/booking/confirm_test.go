package booking

import (
	"context"
	"testing"
	"time"

	domain "github.com/velvetlens/studio-booking/internal/domain/booking"
)

func newConfirmUC(repo domain.Repository) (*ConfirmSession, *spyCache, *sinkRecorder) {
	cache := newSpyCache()
	sink := &sinkRecorder{}
	uc := NewConfirmSession(repo, cache, sink)
	uc.now = fixedClock(testNow)
	return uc, cache, sink
}

func TestConfirmSessionSuccess(t *testing.T) {
	repo := newMemRepo()
	s := seedSession(t, repo, 1, testNow.Add(48*time.Hour))
	uc, cache, sink := newConfirmUC(repo)

	got, err := uc.Execute(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("Execute() = %v", err)
	}
	if got.Status != string(domain.StatusConfirmed) {
		t.Errorf("status = %q, want confirmed", got.Status)
	}
	if got.ConfirmedAt == nil || !got.ConfirmedAt.Equal(testNow) {
		t.Errorf("ConfirmedAt = %v, want %v", got.ConfirmedAt, testNow)
	}
	if cache.invalidations() != 1 {
		t.Errorf("cache invalidations = %d, want 1", cache.invalidations())
	}
	if got := sink.actions(); len(got) != 1 || got[0] != "session_confirmed" {
		t.Errorf("audit actions = %v", got)
	}
}

// Stripe redelivers webhooks; confirming twice must not fail or re-audit.
func TestConfirmSessionIdempotent(t *testing.T) {
	repo := newMemRepo()
	s := seedSession(t, repo, 1, testNow.Add(48*time.Hour))
	uc, _, sink := newConfirmUC(repo)

	if _, err := uc.Execute(context.Background(), s.ID); err != nil {
		t.Fatalf("first confirm failed: %v", err)
	}

	got, err := uc.Execute(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("second confirm failed: %v", err)
	}
	if got.Status != string(domain.StatusConfirmed) {
		t.Errorf("status = %q", got.Status)
	}
	if got := sink.actions(); len(got) != 1 {
		t.Errorf("audit actions = %v, want one", got)
	}
}

func TestConfirmSessionCancelled(t *testing.T) {
	repo := newMemRepo()
	s := seedSession(t, repo, 1, testNow.Add(48*time.Hour))
	s.Status = string(domain.StatusCancelled)
	if err := repo.SaveSession(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	uc, _, _ := newConfirmUC(repo)

	_, err := uc.Execute(context.Background(), s.ID)
	if !domain.IsKind(err, domain.KindPolicy) {
		t.Fatalf("err = %v, want policy", err)
	}
}

func TestConfirmSessionNotFound(t *testing.T) {
	uc, _, _ := newConfirmUC(newMemRepo())

	_, err := uc.Execute(context.Background(), 42)
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("err = %v, want not_found", err)
	}
}
