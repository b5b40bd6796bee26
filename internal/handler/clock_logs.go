package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/domain"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/upstream"
)

func (h *Handler) GetClockLogs(w http.ResponseWriter, r *http.Request) {
	hotel := r.Context().Value(HotelCtxKey).(string)

	logs, err := h.upstream.GetClockLogs(r.Context(), hotel, r.URL.Query().Get("date"))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "clock logs fetched", logs)
}

func (h *Handler) CreateClockLog(w http.ResponseWriter, r *http.Request) {
	hotel := r.Context().Value(HotelCtxKey).(string)

	var req struct {
		StaffID    int64   `json:"staffID" validate:"required"`
		Date       string  `json:"date" validate:"required"`
		TimeIn     string  `json:"timeIn" validate:"required"`
		TimeOut    *string `json:"timeOut"`
		IsRostered bool    `json:"isRostered"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	log := &domain.ClockLog{
		StaffID:    req.StaffID,
		Date:       req.Date,
		TimeIn:     req.TimeIn,
		TimeOut:    req.TimeOut,
		IsRostered: req.IsRostered,
		Approval:   domain.ApprovalPending,
	}

	created, err := h.upstream.CreateClockLog(r.Context(), hotel, log)
	if err != nil {
		var upstreamErr *upstream.Error
		switch {
		case errors.As(err, &upstreamErr) && upstreamErr.StatusCode < 500:
			h.errorResponse(w, r, "the backend refused the clock log")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "clock log created", created)
}

func (h *Handler) clockLogID(r *http.Request) (int64, bool) {
	logID, err := strconv.ParseInt(chi.URLParam(r, "logID"), 10, 64)
	return logID, err == nil
}

func (h *Handler) ApproveClockLog(w http.ResponseWriter, r *http.Request) {
	hotel := r.Context().Value(HotelCtxKey).(string)

	logID, ok := h.clockLogID(r)
	if !ok {
		h.errorResponse(w, r, "invalid clock log ID")
		return
	}

	if err := h.upstream.ApproveClockLog(r.Context(), hotel, logID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.broadcastEvent(map[string]any{
		"type":   "clock_log_approved",
		"hotel":  hotel,
		"logID":  logID,
		"status": "approved",
		"at":     time.Now(),
	})

	h.successResponse(w, r, "clock log approved", nil)
}

func (h *Handler) RejectClockLog(w http.ResponseWriter, r *http.Request) {
	hotel := r.Context().Value(HotelCtxKey).(string)

	logID, ok := h.clockLogID(r)
	if !ok {
		h.errorResponse(w, r, "invalid clock log ID")
		return
	}

	if err := h.upstream.RejectClockLog(r.Context(), hotel, logID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.broadcastEvent(map[string]any{
		"type":   "clock_log_rejected",
		"hotel":  hotel,
		"logID":  logID,
		"status": "rejected",
		"at":     time.Now(),
	})

	h.successResponse(w, r, "clock log rejected", nil)
}
