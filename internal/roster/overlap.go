package roster

import "github.com/nlekkerman/hotelmate-roster/backend/internal/domain"

// normalizeTime truncates an HH:MM:SS time string to HH:MM. Shorter or
// malformed values are returned as-is and compare lexically.
func normalizeTime(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}

// Overlaps reports whether two shifts for the same staff member on the same
// date occupy intersecting [start, end) intervals. Touching boundaries
// (one ends exactly when the other starts) do not overlap, so back-to-back
// shifts are always allowed. Shifts on different dates or for different
// staff never overlap regardless of their times.
func Overlaps(a, b *domain.Shift) bool {
	if a.StaffID != b.StaffID || a.ShiftDate != b.ShiftDate {
		return false
	}

	s1, e1 := normalizeTime(a.ShiftStart), normalizeTime(a.ShiftEnd)
	s2, e2 := normalizeTime(b.ShiftStart), normalizeTime(b.ShiftEnd)

	if e1 == s2 || e2 == s1 {
		return false
	}

	// HH:MM strings order correctly under lexical comparison
	return s1 < e2 && s2 < e1
}
