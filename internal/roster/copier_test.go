package roster

import (
	"strings"
	"testing"

	"github.com/nlekkerman/hotelmate-roster/backend/internal/domain"
)

func TestPlanDayCopy(t *testing.T) {
	location := int64(3)
	src := mkShift("srv-1", 1, "2025-06-02", "09:00", "17:00")
	src.LocationID = &location
	src.Notes = "front desk"

	other := mkShift("srv-2", 2, "2025-06-03", "09:00", "17:00")

	planned := PlanDayCopy([]domain.Shift{src, other}, "2025-06-02", "2025-06-09", "")
	if len(planned) != 1 {
		t.Fatalf("expected 1 planned copy, got %d", len(planned))
	}

	clone := planned[0]
	if clone.ShiftDate != "2025-06-09" {
		t.Errorf("target date = %s, want 2025-06-09", clone.ShiftDate)
	}
	if clone.ShiftStart != src.ShiftStart || clone.ShiftEnd != src.ShiftEnd {
		t.Errorf("times changed: %s-%s", clone.ShiftStart, clone.ShiftEnd)
	}
	if clone.StaffID != src.StaffID || clone.Department != src.Department {
		t.Errorf("staff/department changed")
	}
	if clone.LocationID == nil || *clone.LocationID != location {
		t.Errorf("location changed")
	}
	if clone.ID == src.ID || clone.ID == "" {
		t.Errorf("clone must get a fresh id, got %q", clone.ID)
	}
	if clone.OriginalID != "" || !clone.IsCopiedDraft || clone.Persisted {
		t.Errorf("clone flags wrong: originalID=%q isCopiedDraft=%v persisted=%v", clone.OriginalID, clone.IsCopiedDraft, clone.Persisted)
	}
	if !strings.Contains(clone.Notes, "copied from 2025-06-02") {
		t.Errorf("provenance note missing, got %q", clone.Notes)
	}
}

func TestPlanDayCopyDepartmentFilter(t *testing.T) {
	a := mkShift("a", 1, "2025-06-02", "09:00", "17:00")
	b := mkShift("b", 2, "2025-06-02", "09:00", "17:00")
	b.Department = "kitchen"

	planned := PlanDayCopy([]domain.Shift{a, b}, "2025-06-02", "2025-06-03", "housekeeping")
	if len(planned) != 1 || planned[0].StaffID != 1 {
		t.Fatalf("department filter not applied, got %d planned", len(planned))
	}
}

func weekPeriods(t *testing.T) (*domain.RosterPeriod, *domain.RosterPeriod) {
	t.Helper()
	source := &domain.RosterPeriod{ID: 1, StartDate: "2025-06-02", EndDate: "2025-06-08"}
	target := &domain.RosterPeriod{ID: 2, StartDate: "2025-06-09", EndDate: "2025-06-15"}
	return source, target
}

func TestPlanStaffWeekCopy(t *testing.T) {
	source, target := weekPeriods(t)

	shifts := []domain.Shift{
		mkShift("a", 1, "2025-06-02", "09:00", "17:00"),
		mkShift("b", 1, "2025-06-04", "12:00", "20:00"),
		mkShift("c", 2, "2025-06-02", "09:00", "17:00"), // other staff
		mkShift("d", 1, "2025-05-30", "09:00", "17:00"), // before the source period
	}

	planned, err := PlanStaffWeekCopy(shifts, 1, source, target)
	if err != nil {
		t.Fatal(err)
	}
	if len(planned) != 2 {
		t.Fatalf("expected 2 planned copies, got %d", len(planned))
	}

	wantDates := map[string]bool{"2025-06-09": false, "2025-06-11": false}
	for _, p := range planned {
		if _, ok := wantDates[p.ShiftDate]; !ok {
			t.Errorf("unexpected target date %s", p.ShiftDate)
		}
		wantDates[p.ShiftDate] = true
	}
	for date, seen := range wantDates {
		if !seen {
			t.Errorf("missing planned copy on %s", date)
		}
	}
}

// Copying Monday's housekeeping shifts to a period starting 7 days later
// produces clones exactly +7 days out with identical times.
func TestPlanBulkCopyDayOffset(t *testing.T) {
	source, target := weekPeriods(t)

	shifts := []domain.Shift{
		mkShift("a", 1, "2025-06-02", "07:00", "15:00"),
		mkShift("b", 2, "2025-06-02", "09:00", "17:00"),
		mkShift("c", 3, "2025-06-02", "15:00", "23:00"),
	}

	planned, err := PlanBulkCopy(shifts, BulkCopyDepartment, []int64{1, 2, 3}, nil, source, target)
	if err != nil {
		t.Fatal(err)
	}
	if len(planned) != 3 {
		t.Fatalf("expected 3 planned copies, got %d", len(planned))
	}
	for i, p := range planned {
		if p.ShiftDate != "2025-06-09" {
			t.Errorf("planned[%d].ShiftDate = %s, want 2025-06-09", i, p.ShiftDate)
		}
		if p.ShiftStart != shifts[i].ShiftStart || p.ShiftEnd != shifts[i].ShiftEnd {
			t.Errorf("planned[%d] times changed", i)
		}
		if !p.IsCopiedDraft {
			t.Errorf("planned[%d] not tagged as copied draft", i)
		}
	}
}

func TestPlanBulkCopyModes(t *testing.T) {
	source, target := weekPeriods(t)

	shifts := []domain.Shift{
		mkShift("a", 1, "2025-06-02", "09:00", "17:00"),
		mkShift("b", 2, "2025-06-03", "09:00", "17:00"),
		mkShift("c", 3, "2025-06-04", "09:00", "17:00"),
	}
	departmentStaff := []int64{1, 2}

	tests := []struct {
		name     string
		mode     BulkCopyMode
		staffIDs []int64
		want     int
	}{
		{"department roster", BulkCopyDepartment, nil, 2},
		{"explicit staff list", BulkCopyStaffList, []int64{2, 3}, 2},
		{"staff list intersected with department", BulkCopyStaffInDepartment, []int64{2, 3}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			planned, err := PlanBulkCopy(shifts, tt.mode, departmentStaff, tt.staffIDs, source, target)
			if err != nil {
				t.Fatal(err)
			}
			if len(planned) != tt.want {
				t.Errorf("planned %d copies, want %d", len(planned), tt.want)
			}
		})
	}
}
