package roster

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/domain"
)

// The copy planners produce candidate copied-draft records entirely locally.
// They never check for overlaps themselves: conflicts are caught at review
// time and again by the engine at publish time.

func cloneForCopy(src *domain.Shift, targetDate string) domain.Shift {
	clone := *src
	clone.ID = uuid.NewString()
	clone.ShiftDate = targetDate
	clone.OriginalID = ""
	clone.IsDraft = false
	clone.IsCopiedDraft = true
	clone.Persisted = false
	if clone.Notes != "" {
		clone.Notes += " "
	}
	clone.Notes += fmt.Sprintf("(copied from %s)", src.ShiftDate)
	return clone
}

// PlanDayCopy clones every shift on sourceDate onto targetDate. When
// department is non-empty only that department's shifts are copied.
func PlanDayCopy(shifts []domain.Shift, sourceDate, targetDate, department string) []domain.Shift {
	planned := []domain.Shift{}
	for i := range shifts {
		if shifts[i].ShiftDate != sourceDate {
			continue
		}
		if department != "" && shifts[i].Department != department {
			continue
		}
		planned = append(planned, cloneForCopy(&shifts[i], targetDate))
	}
	return planned
}

func shiftDate(date string, offsetDays int) (string, error) {
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid shift date %q: %w", date, err)
	}
	return t.AddDate(0, 0, offsetDays).Format(domain.DateLayout), nil
}

// PlanStaffWeekCopy copies one staff member's shifts from the source period
// into the target period, shifting every date by the constant day offset
// between the two periods' start dates.
func PlanStaffWeekCopy(shifts []domain.Shift, staffID int64, source, target *domain.RosterPeriod) ([]domain.Shift, error) {
	offset, err := source.DayOffset(target)
	if err != nil {
		return nil, err
	}

	planned := []domain.Shift{}
	for i := range shifts {
		if shifts[i].StaffID != staffID || !source.Contains(shifts[i].ShiftDate) {
			continue
		}
		targetDate, err := shiftDate(shifts[i].ShiftDate, offset)
		if err != nil {
			return nil, err
		}
		planned = append(planned, cloneForCopy(&shifts[i], targetDate))
	}
	return planned, nil
}

// BulkCopyMode selects how the source shift set is restricted for a bulk
// period copy.
type BulkCopyMode string

const (
	// every shift belonging to the department's staff roster
	BulkCopyDepartment BulkCopyMode = "department"
	// only shifts of an explicitly listed set of staff ids
	BulkCopyStaffList BulkCopyMode = "staff-list"
	// listed staff ids that are also on the department's roster
	BulkCopyStaffInDepartment BulkCopyMode = "staff-in-department"
)

// PlanBulkCopy applies the same day-offset technique to a department-sized
// slice of the source period.
func PlanBulkCopy(shifts []domain.Shift, mode BulkCopyMode, departmentStaff []int64, staffIDs []int64, source, target *domain.RosterPeriod) ([]domain.Shift, error) {
	offset, err := source.DayOffset(target)
	if err != nil {
		return nil, err
	}

	include := func(staffID int64) bool {
		switch mode {
		case BulkCopyDepartment:
			return slices.Contains(departmentStaff, staffID)
		case BulkCopyStaffList:
			return slices.Contains(staffIDs, staffID)
		case BulkCopyStaffInDepartment:
			return slices.Contains(staffIDs, staffID) && slices.Contains(departmentStaff, staffID)
		default:
			return false
		}
	}

	planned := []domain.Shift{}
	for i := range shifts {
		if !source.Contains(shifts[i].ShiftDate) || !include(shifts[i].StaffID) {
			continue
		}
		targetDate, err := shiftDate(shifts[i].ShiftDate, offset)
		if err != nil {
			return nil, err
		}
		planned = append(planned, cloneForCopy(&shifts[i], targetDate))
	}
	return planned, nil
}
