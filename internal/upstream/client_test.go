package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nlekkerman/hotelmate-roster/backend/internal/config"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/domain"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Upstream.BaseURL = server.URL
	cfg.Upstream.APIToken = "test-token"
	cfg.Upstream.RequestTimeout = 5

	return NewClient(cfg)
}

func TestGetShiftsMarksPersisted(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/staff/hotel/seaview/attendance/periods/42/shifts/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Token test-token" {
			t.Errorf("Authorization = %q", got)
		}
		json.NewEncoder(w).Encode([]domain.Shift{
			{ID: "srv-1", StaffID: 1, ShiftDate: "2025-06-02", ShiftStart: "09:00", ShiftEnd: "17:00"},
			{ID: "srv-2", StaffID: 2, ShiftDate: "2025-06-02", ShiftStart: "12:00", ShiftEnd: "20:00"},
		})
	})

	shifts, err := client.GetShifts(context.Background(), "seaview", 42)
	if err != nil {
		t.Fatal(err)
	}
	if len(shifts) != 2 {
		t.Fatalf("expected 2 shifts, got %d", len(shifts))
	}
	for i, s := range shifts {
		if !s.Persisted {
			t.Errorf("shifts[%d] not marked persisted", i)
		}
	}
}

func TestBulkSaveShiftsSendsBatch(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/staff/hotel/seaview/attendance/shifts/bulk-save/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}

		var req domain.BulkSaveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Hotel != "seaview" || req.Period != 42 || len(req.Shifts) != 1 {
			t.Errorf("request body wrong: hotel=%s period=%d shifts=%d", req.Hotel, req.Period, len(req.Shifts))
		}

		json.NewEncoder(w).Encode(domain.BulkSaveResult{
			Created: []domain.Shift{req.Shifts[0]},
		})
	})

	batch := []domain.Shift{{ID: "draft-1", StaffID: 1, ShiftDate: "2025-06-02", ShiftStart: "09:00", ShiftEnd: "17:00"}}
	result, err := client.BulkSaveShifts(context.Background(), "seaview", 42, batch)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Created) != 1 || len(result.Errors) != 0 {
		t.Fatalf("result wrong: %d created, %d errors", len(result.Created), len(result.Errors))
	}
}

func TestBulkSaveShiftsCarriesPerItemErrors(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.BulkSaveResult{
			Errors: []domain.BulkSaveError{{ShiftID: "draft-1", Detail: "staff member is on leave"}},
		})
	})

	result, err := client.BulkSaveShifts(context.Background(), "seaview", 42, []domain.Shift{{ID: "draft-1"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Errors) != 1 || result.Errors[0].Detail != "staff member is on leave" {
		t.Fatalf("per-item errors not passed through: %+v", result.Errors)
	}
}

func TestNon2xxBecomesUpstreamError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"period is finalized"}`, http.StatusConflict)
	})

	err := client.FinalizePeriod(context.Background(), "seaview", 42)
	var upErr *Error
	if !errors.As(err, &upErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if upErr.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want %d", upErr.StatusCode, http.StatusConflict)
	}
	// the raw backend body is kept so its detail reaches the caller unchanged
	if upErr.Body == "" {
		t.Error("error body dropped")
	}
}

func TestGetClockLogsDateFilter(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("date"); got != "2025-06-02" {
			t.Errorf("date query = %q", got)
		}
		json.NewEncoder(w).Encode([]domain.ClockLog{{ID: 7, StaffID: 1, Date: "2025-06-02", TimeIn: "08:55"}})
	})

	logs, err := client.GetClockLogs(context.Background(), "seaview", "2025-06-02")
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 || logs[0].ID != 7 {
		t.Fatalf("logs wrong: %+v", logs)
	}
}
