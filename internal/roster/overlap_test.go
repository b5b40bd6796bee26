package roster

import (
	"testing"

	"github.com/nlekkerman/hotelmate-roster/backend/internal/domain"
)

func mkShift(id string, staffID int64, date, start, end string) domain.Shift {
	return domain.Shift{
		ID:         id,
		StaffID:    staffID,
		Department: "housekeeping",
		ShiftDate:  date,
		ShiftStart: start,
		ShiftEnd:   end,
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b domain.Shift
		want bool
	}{
		{
			name: "plain overlap",
			a:    mkShift("a", 1, "2025-06-02", "09:00", "17:00"),
			b:    mkShift("b", 1, "2025-06-02", "16:00", "18:00"),
			want: true,
		},
		{
			name: "touching boundaries are allowed",
			a:    mkShift("a", 1, "2025-06-02", "09:00", "17:00"),
			b:    mkShift("b", 1, "2025-06-02", "17:00", "20:00"),
			want: false,
		},
		{
			name: "containment",
			a:    mkShift("a", 1, "2025-06-02", "08:00", "20:00"),
			b:    mkShift("b", 1, "2025-06-02", "10:00", "12:00"),
			want: true,
		},
		{
			name: "identical intervals",
			a:    mkShift("a", 1, "2025-06-02", "09:00", "17:00"),
			b:    mkShift("b", 1, "2025-06-02", "09:00", "17:00"),
			want: true,
		},
		{
			name: "different staff never overlap",
			a:    mkShift("a", 1, "2025-06-02", "09:00", "17:00"),
			b:    mkShift("b", 2, "2025-06-02", "09:00", "17:00"),
			want: false,
		},
		{
			name: "different dates never overlap",
			a:    mkShift("a", 1, "2025-06-02", "09:00", "17:00"),
			b:    mkShift("b", 1, "2025-06-03", "09:00", "17:00"),
			want: false,
		},
		{
			name: "seconds are truncated before comparing",
			a:    mkShift("a", 1, "2025-06-02", "09:00:00", "17:00:59"),
			b:    mkShift("b", 1, "2025-06-02", "17:00:30", "20:00:00"),
			want: false,
		},
		{
			name: "disjoint intervals",
			a:    mkShift("a", 1, "2025-06-02", "06:00", "08:00"),
			b:    mkShift("b", 1, "2025-06-02", "12:00", "14:00"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(&tt.a, &tt.b); got != tt.want {
				t.Errorf("Overlaps(a, b) = %v, want %v", got, tt.want)
			}
			// the check must be symmetric
			if got := Overlaps(&tt.b, &tt.a); got != tt.want {
				t.Errorf("Overlaps(b, a) = %v, want %v", got, tt.want)
			}
		})
	}
}
