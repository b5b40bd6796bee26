package roster

import "github.com/nlekkerman/hotelmate-roster/backend/internal/domain"

// MergeRoster builds the grid view of a period: server shifts shadowed by
// the drafts that edit them (linked via OriginalID), with new drafts and
// copied drafts appended.
func MergeRoster(serverShifts []domain.Shift, set *domain.DraftSet) []domain.Shift {
	shadowed := map[string]bool{}
	for i := range set.Drafts {
		if set.Drafts[i].OriginalID != "" {
			shadowed[set.Drafts[i].OriginalID] = true
		}
	}

	merged := make([]domain.Shift, 0, len(serverShifts)+len(set.Drafts)+len(set.CopiedDrafts))
	for i := range serverShifts {
		if !shadowed[serverShifts[i].ID] {
			merged = append(merged, serverShifts[i])
		}
	}
	merged = append(merged, set.Drafts...)
	merged = append(merged, set.CopiedDrafts...)
	return merged
}
