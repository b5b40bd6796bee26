package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/domain"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/poller"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/roster"
)

// GetAttendanceSummary serves the dashboard rollup. The poller keeps the
// cache warm; a miss falls back to a direct upstream fetch.
func (h *Handler) GetAttendanceSummary(w http.ResponseWriter, r *http.Request) {
	hotel := r.Context().Value(HotelCtxKey).(string)

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format(domain.DateLayout)
	}

	opCtx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	if cached, err := h.redisClient.Get(opCtx, poller.SummaryKey(hotel, date)).Result(); err == nil {
		var summary domain.AttendanceSummary
		if err := json.Unmarshal([]byte(cached), &summary); err == nil {
			h.successResponse(w, r, "attendance summary fetched", summary)
			return
		}
	}

	summary, err := h.upstream.GetAttendanceSummary(r.Context(), hotel, date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	summary.RefreshedAt = time.Now()

	if data, err := json.Marshal(summary); err == nil {
		_ = h.redisClient.Set(opCtx, poller.SummaryKey(hotel, date), data,
			time.Duration(h.config.Redis.SummaryExpiration)*time.Second).Err()
	}

	h.successResponse(w, r, "attendance summary fetched", summary)
}

// GetStaffStatus derives the single badge status for one staff member on
// one day from their rostered shifts and clock logs.
func (h *Handler) GetStaffStatus(w http.ResponseWriter, r *http.Request) {
	hotel := r.Context().Value(HotelCtxKey).(string)

	staffID, err := strconv.ParseInt(chi.URLParam(r, "staffID"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid staff ID")
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format(domain.DateLayout)
	}

	logs, err := h.upstream.GetClockLogs(r.Context(), hotel, date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	staffLogs := []domain.ClockLog{}
	for i := range logs {
		if logs[i].StaffID == staffID {
			staffLogs = append(staffLogs, logs[i])
		}
	}

	// rostered shifts come from whichever period covers the date
	staffShifts := []domain.Shift{}
	periods, err := h.upstream.GetPeriods(r.Context(), hotel)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	for i := range periods {
		if !periods[i].Contains(date) {
			continue
		}
		shifts, err := h.upstream.GetShifts(r.Context(), hotel, periods[i].ID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		for j := range shifts {
			if shifts[j].StaffID == staffID && shifts[j].ShiftDate == date {
				staffShifts = append(staffShifts, shifts[j])
			}
		}
		break
	}

	status := roster.DeriveStatus(staffShifts, staffLogs)

	h.successResponse(w, r, "staff status derived", struct {
		StaffID int64         `json:"staffID"`
		Date    string        `json:"date"`
		Status  roster.Status `json:"status"`
	}{StaffID: staffID, Date: date, Status: status})
}
