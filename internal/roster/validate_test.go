package roster

import "testing"

func TestValidateShift(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		start   string
		end     string
		wantErr bool
	}{
		{"valid shift", "2025-06-02", "09:00", "17:00", false},
		{"seconds tolerated", "2025-06-02", "09:00:00", "17:00:00", false},
		{"bad date", "02/06/2025", "09:00", "17:00", true},
		{"bad start time", "2025-06-02", "9am", "17:00", true},
		{"bad end time", "2025-06-02", "09:00", "25:00", true},
		{"zero-length interval", "2025-06-02", "09:00", "09:00", true},
		{"overnight shift rejected", "2025-06-02", "22:00", "06:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mkShift("draft-1", 1, tt.date, tt.start, tt.end)
			err := ValidateShift(&s)
			if tt.wantErr && err == nil {
				t.Fatal("expected a validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
