package roster

import "github.com/nlekkerman/hotelmate-roster/backend/internal/domain"

// Conflict is one pair of overlapping shifts for the same staff member on
// the same date.
type Conflict struct {
	First  domain.Shift `json:"first"`
	Second domain.Shift `json:"second"`
}

// sameOriginal reports whether one shift is the draft edit of the other.
// A draft and the server shift it updates are never in conflict with each
// other, whichever way round they are passed.
func sameOriginal(a, b *domain.Shift) bool {
	if a.OriginalID != "" && (a.OriginalID == b.ID || a.OriginalID == b.OriginalID) {
		return true
	}
	if b.OriginalID != "" && b.OriginalID == a.ID {
		return true
	}
	return false
}

// DetectConflicts runs the overlap check over every pair of shifts in the
// collection that shares a (staff, date) bucket.
func DetectConflicts(shifts []domain.Shift) []Conflict {
	conflicts := []Conflict{}
	for i := 0; i < len(shifts); i++ {
		for j := i + 1; j < len(shifts); j++ {
			if sameOriginal(&shifts[i], &shifts[j]) {
				continue
			}
			if Overlaps(&shifts[i], &shifts[j]) {
				conflicts = append(conflicts, Conflict{First: shifts[i], Second: shifts[j]})
			}
		}
	}
	return conflicts
}

// DetectCrossConflicts checks every draft against the already-published
// server shifts, skipping each draft's own original.
func DetectCrossConflicts(drafts []domain.Shift, serverShifts []domain.Shift) []Conflict {
	conflicts := []Conflict{}
	for i := range drafts {
		for j := range serverShifts {
			if sameOriginal(&drafts[i], &serverShifts[j]) {
				continue
			}
			if Overlaps(&drafts[i], &serverShifts[j]) {
				conflicts = append(conflicts, Conflict{First: drafts[i], Second: serverShifts[j]})
			}
		}
	}
	return conflicts
}
