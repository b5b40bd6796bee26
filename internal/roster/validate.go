package roster

import (
	"fmt"
	"time"

	"github.com/nlekkerman/hotelmate-roster/backend/internal/domain"
)

// ValidateShift checks the fields a draft edit must get right before it is
// worth holding locally: a parsable calendar date and a well-formed,
// non-empty [start, end) interval. The interval must lie within a single
// day; overnight shifts (end at or before start) are rejected because the
// overlap math compares HH:MM values inside one (staff, date) bucket only.
func ValidateShift(s *domain.Shift) error {
	if _, err := time.Parse(domain.DateLayout, s.ShiftDate); err != nil {
		return fmt.Errorf("invalid shift date %q", s.ShiftDate)
	}

	start, err := time.Parse("15:04", normalizeTime(s.ShiftStart))
	if err != nil {
		return fmt.Errorf("invalid shift start time %q", s.ShiftStart)
	}
	end, err := time.Parse("15:04", normalizeTime(s.ShiftEnd))
	if err != nil {
		return fmt.Errorf("invalid shift end time %q", s.ShiftEnd)
	}

	if !end.After(start) {
		return fmt.Errorf("shift end %q must be after start %q", s.ShiftEnd, s.ShiftStart)
	}

	return nil
}
