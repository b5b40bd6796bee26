package roster

import (
	"testing"

	"github.com/nlekkerman/hotelmate-roster/backend/internal/domain"
)

func TestMergeRosterShadowsEditedOriginal(t *testing.T) {
	edited := mkShift("srv-1", 1, "2025-06-02", "09:00", "17:00")
	untouched := mkShift("srv-2", 2, "2025-06-02", "12:00", "20:00")

	edit := mkShift("draft-1", 1, "2025-06-02", "10:00", "18:00")
	edit.IsDraft = true
	edit.OriginalID = "srv-1"

	fresh := mkShift("draft-2", 3, "2025-06-03", "09:00", "17:00")
	fresh.IsDraft = true

	copied := mkShift("copy-1", 1, "2025-06-04", "09:00", "17:00")
	copied.IsCopiedDraft = true

	set := &domain.DraftSet{
		Hotel:        "seaview",
		PeriodID:     42,
		Drafts:       []domain.Shift{edit, fresh},
		CopiedDrafts: []domain.Shift{copied},
	}

	merged := MergeRoster([]domain.Shift{edited, untouched}, set)

	byID := map[string]domain.Shift{}
	for _, s := range merged {
		byID[s.ID] = s
	}

	if _, ok := byID["srv-1"]; ok {
		t.Error("server shift with a pending edit must not appear in the merged view")
	}
	for _, id := range []string{"srv-2", "draft-1", "draft-2", "copy-1"} {
		if _, ok := byID[id]; !ok {
			t.Errorf("shift %s missing from the merged view", id)
		}
	}
	if len(merged) != 4 {
		t.Fatalf("merged view has %d shifts, want 4", len(merged))
	}
	if got := byID["draft-1"].ShiftEnd; got != "18:00" {
		t.Errorf("the draft's own times must win, end = %s", got)
	}
}

func TestMergeRosterEmptyDraftSet(t *testing.T) {
	server := []domain.Shift{
		mkShift("srv-1", 1, "2025-06-02", "09:00", "17:00"),
		mkShift("srv-2", 2, "2025-06-02", "12:00", "20:00"),
	}

	merged := MergeRoster(server, &domain.DraftSet{Hotel: "seaview", PeriodID: 42})
	if len(merged) != 2 {
		t.Fatalf("merged view has %d shifts, want the 2 server shifts", len(merged))
	}
}
