package handler

import (
	"net/http"

	"github.com/nlekkerman/hotelmate-roster/backend/internal/domain"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/roster"
)

// mergedShifts is the full known shift set the copy planners select from:
// published shifts plus everything pending locally.
func (h *Handler) mergedShifts(r *http.Request, hotel string, periodID int64) ([]domain.Shift, *domain.DraftSet, error) {
	serverShifts, err := h.upstream.GetShifts(r.Context(), hotel, periodID)
	if err != nil {
		return nil, nil, err
	}
	set, err := h.engine.Load(r.Context(), hotel, periodID)
	if err != nil {
		return nil, nil, err
	}
	return roster.MergeRoster(serverShifts, set), set, nil
}

// CopyDay clones one day's shifts onto another date of the same period.
func (h *Handler) CopyDay(w http.ResponseWriter, r *http.Request) {
	hotel := r.Context().Value(HotelCtxKey).(string)
	period := r.Context().Value(PeriodCtxKey).(*domain.RosterPeriod)

	var req struct {
		SourceDate string `json:"sourceDate" validate:"required"`
		TargetDate string `json:"targetDate" validate:"required"`
		Department string `json:"department"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if !period.Contains(req.TargetDate) {
		h.errorResponse(w, r, "target date falls outside the roster period")
		return
	}

	shifts, set, err := h.mergedShifts(r, hotel, period.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	planned := roster.PlanDayCopy(shifts, req.SourceDate, req.TargetDate, req.Department)
	if len(planned) == 0 {
		h.errorResponse(w, r, "nothing to copy on the source date")
		return
	}

	if err := h.engine.AddCopiedDrafts(r.Context(), set, planned); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "day copied into pending drafts", planned)
}

// CopyStaffWeek copies one staff member's shifts from a source period into
// this one, shifted by the day offset between the periods' start dates.
func (h *Handler) CopyStaffWeek(w http.ResponseWriter, r *http.Request) {
	hotel := r.Context().Value(HotelCtxKey).(string)
	target := r.Context().Value(PeriodCtxKey).(*domain.RosterPeriod)

	var req struct {
		StaffID        int64 `json:"staffID" validate:"required"`
		SourcePeriodID int64 `json:"sourcePeriodID" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	source, err := h.upstream.GetPeriod(r.Context(), hotel, req.SourcePeriodID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	sourceShifts, _, err := h.mergedShifts(r, hotel, source.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	planned, err := roster.PlanStaffWeekCopy(sourceShifts, req.StaffID, source, target)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	if len(planned) == 0 {
		h.errorResponse(w, r, "no shifts for this staff member in the source period")
		return
	}

	set, err := h.engine.Load(r.Context(), hotel, target.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.engine.AddCopiedDrafts(r.Context(), set, planned); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "staff week copied into pending drafts", planned)
}

// CopyBulk applies the day-offset copy to a department roster, an explicit
// staff list, or the intersection of the two.
func (h *Handler) CopyBulk(w http.ResponseWriter, r *http.Request) {
	hotel := r.Context().Value(HotelCtxKey).(string)
	target := r.Context().Value(PeriodCtxKey).(*domain.RosterPeriod)

	var req struct {
		Mode           string  `json:"mode" validate:"required,oneof=department staff-list staff-in-department"`
		Department     string  `json:"department" validate:"required_unless=Mode staff-list"`
		StaffIDs       []int64 `json:"staffIDs" validate:"required_unless=Mode department"`
		SourcePeriodID int64   `json:"sourcePeriodID" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	source, err := h.upstream.GetPeriod(r.Context(), hotel, req.SourcePeriodID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	var departmentStaff []int64
	if req.Department != "" {
		members, err := h.upstream.GetDepartmentRoster(r.Context(), hotel, req.Department)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		for i := range members {
			departmentStaff = append(departmentStaff, members[i].ID)
		}
	}

	sourceShifts, _, err := h.mergedShifts(r, hotel, source.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	planned, err := roster.PlanBulkCopy(sourceShifts, roster.BulkCopyMode(req.Mode), departmentStaff, req.StaffIDs, source, target)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	if len(planned) == 0 {
		h.errorResponse(w, r, "no shifts matched the copy selection")
		return
	}

	set, err := h.engine.Load(r.Context(), hotel, target.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.engine.AddCopiedDrafts(r.Context(), set, planned); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "bulk copy planned into pending drafts", planned)
}
