package roster

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/nlekkerman/hotelmate-roster/backend/internal/domain"
)

type fakeStore struct {
	sets    map[string]*domain.DraftSet
	saves   int
	clears  int
	loadErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{sets: map[string]*domain.DraftSet{}}
}

func storeKey(hotel string, periodID int64) string {
	return fmt.Sprintf("%s/%d", hotel, periodID)
}

func (s *fakeStore) Load(_ context.Context, hotel string, periodID int64) (*domain.DraftSet, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if set, ok := s.sets[storeKey(hotel, periodID)]; ok {
		return set, nil
	}
	return &domain.DraftSet{Hotel: hotel, PeriodID: periodID}, nil
}

func (s *fakeStore) Save(_ context.Context, set *domain.DraftSet) error {
	s.saves++
	s.sets[storeKey(set.Hotel, set.PeriodID)] = set
	return nil
}

func (s *fakeStore) Clear(_ context.Context, hotel string, periodID int64) error {
	s.clears++
	delete(s.sets, storeKey(hotel, periodID))
	return nil
}

type fakePublisher struct {
	result  *domain.BulkSaveResult
	err     error
	batches [][]domain.Shift
}

func (p *fakePublisher) BulkSaveShifts(_ context.Context, _ string, _ int64, shifts []domain.Shift) (*domain.BulkSaveResult, error) {
	p.batches = append(p.batches, shifts)
	if p.err != nil {
		return nil, p.err
	}
	return p.result, nil
}

func testSet(shifts ...domain.Shift) *domain.DraftSet {
	return &domain.DraftSet{
		Hotel:    "seaview",
		PeriodID: 42,
		Drafts:   shifts,
	}
}

func TestUpsertDraftReplacesByID(t *testing.T) {
	store := newFakeStore()
	engine := NewEngine(store, &fakePublisher{})
	set := testSet()

	first := mkShift("draft-1", 1, "2025-06-02", "09:00", "17:00")
	first.IsDraft = true
	if err := engine.UpsertDraft(context.Background(), set, first); err != nil {
		t.Fatal(err)
	}

	edited := first
	edited.ShiftEnd = "18:00"
	if err := engine.UpsertDraft(context.Background(), set, edited); err != nil {
		t.Fatal(err)
	}

	if len(set.Drafts) != 1 {
		t.Fatalf("expected 1 draft after replace, got %d", len(set.Drafts))
	}
	if set.Drafts[0].ShiftEnd != "18:00" {
		t.Errorf("draft not replaced, end = %s", set.Drafts[0].ShiftEnd)
	}
	if store.saves != 2 {
		t.Errorf("expected 2 saves, got %d", store.saves)
	}
}

func TestRemoveDraftFromEitherCollection(t *testing.T) {
	store := newFakeStore()
	engine := NewEngine(store, &fakePublisher{})

	copied := mkShift("copy-1", 1, "2025-06-03", "09:00", "17:00")
	copied.IsCopiedDraft = true
	set := testSet(mkShift("draft-1", 1, "2025-06-02", "09:00", "17:00"))
	set.CopiedDrafts = []domain.Shift{copied}

	removed, err := engine.RemoveDraft(context.Background(), set, "copy-1")
	if err != nil {
		t.Fatal(err)
	}
	if !removed || len(set.CopiedDrafts) != 0 {
		t.Fatalf("copied draft not removed")
	}

	removed, err = engine.RemoveDraft(context.Background(), set, "missing")
	if err != nil {
		t.Fatal(err)
	}
	if removed {
		t.Fatal("removing an unknown id must report false")
	}

	// removing the last draft clears the persisted entry entirely
	removed, err = engine.RemoveDraft(context.Background(), set, "draft-1")
	if err != nil {
		t.Fatal(err)
	}
	if !removed || store.clears != 1 {
		t.Fatalf("expected a store clear once the set is empty, clears = %d", store.clears)
	}
}

func TestPublishEmptyCollection(t *testing.T) {
	engine := NewEngine(newFakeStore(), &fakePublisher{})

	_, err := engine.Publish(context.Background(), testSet(), CollectionDrafts, nil, false)
	if !errors.Is(err, ErrEmptyCollection) {
		t.Fatalf("expected ErrEmptyCollection, got %v", err)
	}
}

func TestPublishBlockedBySelfConflict(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{result: &domain.BulkSaveResult{}}
	engine := NewEngine(store, publisher)

	set := testSet(
		mkShift("draft-1", 1, "2025-06-02", "09:00", "17:00"),
		mkShift("draft-2", 1, "2025-06-02", "16:00", "18:00"),
	)

	_, err := engine.Publish(context.Background(), set, CollectionDrafts, nil, false)
	var selfErr *SelfConflictError
	if !errors.As(err, &selfErr) {
		t.Fatalf("expected SelfConflictError, got %v", err)
	}
	if len(publisher.batches) != 0 {
		t.Fatal("nothing may be sent upstream while the batch conflicts with itself")
	}
	if len(set.Drafts) != 2 {
		t.Fatal("drafts must be kept on failure")
	}
}

func TestPublishBlockedByOverlapWithOtherCollection(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{result: &domain.BulkSaveResult{}}
	engine := NewEngine(store, publisher)

	copied := mkShift("copy-1", 1, "2025-06-02", "10:00", "12:00")
	copied.IsCopiedDraft = true
	set := testSet(mkShift("draft-1", 1, "2025-06-02", "09:00", "17:00"))
	set.CopiedDrafts = []domain.Shift{copied}

	// both directions must be blocked, all pending shifts are still editable
	for _, c := range []Collection{CollectionDrafts, CollectionCopied} {
		_, err := engine.Publish(context.Background(), set, c, nil, false)
		var selfErr *SelfConflictError
		if !errors.As(err, &selfErr) {
			t.Fatalf("publishing %s: expected SelfConflictError, got %v", c, err)
		}
	}
	if len(publisher.batches) != 0 {
		t.Fatal("nothing may be sent upstream while the pending collections overlap each other")
	}
	if len(set.Drafts) != 1 || len(set.CopiedDrafts) != 1 {
		t.Fatal("both collections must be kept intact")
	}
}

func TestPublishCrossConflictNeedsConfirmation(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{result: &domain.BulkSaveResult{}}
	engine := NewEngine(store, publisher)

	server := []domain.Shift{mkShift("srv-1", 1, "2025-06-02", "09:00", "17:00")}
	set := testSet(mkShift("draft-1", 1, "2025-06-02", "16:00", "18:00"))

	_, err := engine.Publish(context.Background(), set, CollectionDrafts, server, false)
	var crossErr *CrossConflictError
	if !errors.As(err, &crossErr) {
		t.Fatalf("expected CrossConflictError, got %v", err)
	}
	if len(publisher.batches) != 0 {
		t.Fatal("unconfirmed cross-conflicting batch must not be sent")
	}

	// the same publish goes through once explicitly confirmed
	if _, err := engine.Publish(context.Background(), set, CollectionDrafts, server, true); err != nil {
		t.Fatalf("confirmed publish failed: %v", err)
	}
	if len(publisher.batches) != 1 {
		t.Fatal("confirmed batch was not sent")
	}
	if len(set.Drafts) != 0 || store.clears != 1 {
		t.Fatal("drafts must be cleared after a successful publish")
	}
}

func TestPublishKeepsDraftsOnFailure(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{err: errors.New("connection refused")}
	engine := NewEngine(store, publisher)

	set := testSet(mkShift("draft-1", 1, "2025-06-02", "09:00", "17:00"))

	if _, err := engine.Publish(context.Background(), set, CollectionDrafts, nil, false); err == nil {
		t.Fatal("expected an error")
	}
	if len(set.Drafts) != 1 || store.clears != 0 {
		t.Fatal("drafts must survive a failed request")
	}
}

func TestPublishKeepsDraftsOnPerItemRejection(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{result: &domain.BulkSaveResult{
		Errors: []domain.BulkSaveError{{ShiftID: "draft-1", Detail: "staff member is on leave"}},
	}}
	engine := NewEngine(store, publisher)

	set := testSet(mkShift("draft-1", 1, "2025-06-02", "09:00", "17:00"))

	_, err := engine.Publish(context.Background(), set, CollectionDrafts, nil, false)
	var rejectedErr *BulkSaveRejectedError
	if !errors.As(err, &rejectedErr) {
		t.Fatalf("expected BulkSaveRejectedError, got %v", err)
	}
	// per-item backend detail passes through unchanged
	if rejectedErr.Result.Errors[0].Detail != "staff member is on leave" {
		t.Errorf("backend error detail was altered: %q", rejectedErr.Result.Errors[0].Detail)
	}
	if len(set.Drafts) != 1 || store.clears != 0 {
		t.Fatal("drafts must survive a rejected batch")
	}
}

func TestPublishClearsOnlyTheSentCollection(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{result: &domain.BulkSaveResult{}}
	engine := NewEngine(store, publisher)

	copied := mkShift("copy-1", 2, "2025-06-03", "09:00", "17:00")
	copied.IsCopiedDraft = true
	set := testSet(mkShift("draft-1", 1, "2025-06-02", "09:00", "17:00"))
	set.CopiedDrafts = []domain.Shift{copied}

	if _, err := engine.Publish(context.Background(), set, CollectionDrafts, nil, false); err != nil {
		t.Fatal(err)
	}

	if len(set.Drafts) != 0 {
		t.Fatal("published collection must be emptied")
	}
	if len(set.CopiedDrafts) != 1 {
		t.Fatal("the other collection must be untouched")
	}
	if store.clears != 0 || store.saves != 1 {
		t.Fatalf("expected a save, not a clear, while copied drafts remain (saves=%d clears=%d)", store.saves, store.clears)
	}

	// publishing again on the now-empty collection finds nothing to detect
	if got := DetectConflicts(set.Drafts); len(got) != 0 {
		t.Fatal("empty draft set must report no conflicts")
	}
}
