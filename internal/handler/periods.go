package handler

import (
	"net/http"

	"github.com/nlekkerman/hotelmate-roster/backend/internal/domain"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/roster"
)

func (h *Handler) GetPeriods(w http.ResponseWriter, r *http.Request) {
	hotel := r.Context().Value(HotelCtxKey).(string)

	periods, err := h.upstream.GetPeriods(r.Context(), hotel)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "roster periods fetched", periods)
}

func (h *Handler) GetPeriod(w http.ResponseWriter, r *http.Request) {
	period := r.Context().Value(PeriodCtxKey).(*domain.RosterPeriod)

	h.successResponse(w, r, "roster period fetched", period)
}

// GetRosterView returns the merged grid view of a period: published shifts
// shadowed by the drafts that edit them, plus pending new and copied drafts.
func (h *Handler) GetRosterView(w http.ResponseWriter, r *http.Request) {
	hotel := r.Context().Value(HotelCtxKey).(string)
	period := r.Context().Value(PeriodCtxKey).(*domain.RosterPeriod)

	serverShifts, err := h.upstream.GetShifts(r.Context(), hotel, period.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	set, err := h.engine.Load(r.Context(), hotel, period.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "roster view fetched", roster.MergeRoster(serverShifts, set))
}

// GetConflicts reports every overlap in the current pending state: within
// drafts, within copied drafts, between the two pending collections, and
// between each collection and the published shifts.
func (h *Handler) GetConflicts(w http.ResponseWriter, r *http.Request) {
	hotel := r.Context().Value(HotelCtxKey).(string)
	period := r.Context().Value(PeriodCtxKey).(*domain.RosterPeriod)

	serverShifts, err := h.upstream.GetShifts(r.Context(), hotel, period.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	set, err := h.engine.Load(r.Context(), hotel, period.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	conflicts := struct {
		Drafts         []roster.Conflict `json:"drafts"`
		CopiedDrafts   []roster.Conflict `json:"copiedDrafts"`
		DraftsVsCopied []roster.Conflict `json:"draftsVsCopied"`
		CrossDrafts    []roster.Conflict `json:"crossDrafts"`
		CrossCopied    []roster.Conflict `json:"crossCopied"`
	}{
		Drafts:         roster.DetectConflicts(set.Drafts),
		CopiedDrafts:   roster.DetectConflicts(set.CopiedDrafts),
		DraftsVsCopied: roster.DetectCrossConflicts(set.Drafts, set.CopiedDrafts),
		CrossDrafts:    roster.DetectCrossConflicts(set.Drafts, serverShifts),
		CrossCopied:    roster.DetectCrossConflicts(set.CopiedDrafts, serverShifts),
	}

	h.successResponse(w, r, "conflicts computed", conflicts)
}
