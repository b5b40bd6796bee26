package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/domain"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/roster"
)

func (h *Handler) loadDraftSet(r *http.Request) (*domain.DraftSet, error) {
	hotel := r.Context().Value(HotelCtxKey).(string)
	period := r.Context().Value(PeriodCtxKey).(*domain.RosterPeriod)
	return h.engine.Load(r.Context(), hotel, period.ID)
}

func (h *Handler) GetDrafts(w http.ResponseWriter, r *http.Request) {
	set, err := h.loadDraftSet(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "draft set fetched", set)
}

func (h *Handler) UpsertDraft(w http.ResponseWriter, r *http.Request) {
	period := r.Context().Value(PeriodCtxKey).(*domain.RosterPeriod)

	var req struct {
		ID         string `json:"id"`
		StaffID    int64  `json:"staffID" validate:"required"`
		Department string `json:"department" validate:"required"`
		ShiftDate  string `json:"shiftDate" validate:"required"`
		ShiftStart string `json:"shiftStart" validate:"required"`
		ShiftEnd   string `json:"shiftEnd" validate:"required"`
		LocationID *int64 `json:"locationID"`
		Notes      string `json:"notes"`
		OriginalID string `json:"originalID"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift := domain.Shift{
		ID:         req.ID,
		StaffID:    req.StaffID,
		Department: req.Department,
		ShiftDate:  req.ShiftDate,
		ShiftStart: req.ShiftStart,
		ShiftEnd:   req.ShiftEnd,
		LocationID: req.LocationID,
		Notes:      req.Notes,
		OriginalID: req.OriginalID,
		IsDraft:    true,
	}
	if shift.ID == "" {
		shift.ID = uuid.NewString()
	}

	if err := roster.ValidateShift(&shift); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if !period.Contains(shift.ShiftDate) {
		h.errorResponse(w, r, "shift date falls outside the roster period")
		return
	}

	set, err := h.loadDraftSet(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.engine.UpsertDraft(r.Context(), set, shift); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "draft saved", shift)
}

func (h *Handler) RemoveDraft(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "draftID")
	if draftID == "" {
		h.errorResponse(w, r, "invalid draft ID")
		return
	}

	set, err := h.loadDraftSet(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	removed, err := h.engine.RemoveDraft(r.Context(), set, draftID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !removed {
		h.errorResponse(w, r, "draft not found")
		return
	}

	h.successResponse(w, r, "draft removed", nil)
}

func (h *Handler) ClearDrafts(w http.ResponseWriter, r *http.Request) {
	set, err := h.loadDraftSet(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.engine.ClearDrafts(r.Context(), set); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "draft set cleared", nil)
}
