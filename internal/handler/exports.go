package handler

import (
	"fmt"
	"net/http"

	"github.com/nlekkerman/hotelmate-roster/backend/internal/domain"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/export"
	"github.com/nlekkerman/hotelmate-roster/backend/internal/roster"
)

// ExportRoster streams the period's roster as a CSV or XLSX attachment.
// With include_drafts=true the pending local state is exported too.
func (h *Handler) ExportRoster(w http.ResponseWriter, r *http.Request) {
	hotel := r.Context().Value(HotelCtxKey).(string)
	period := r.Context().Value(PeriodCtxKey).(*domain.RosterPeriod)

	shifts, err := h.upstream.GetShifts(r.Context(), hotel, period.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if r.URL.Query().Get("include_drafts") == "true" {
		set, err := h.engine.Load(r.Context(), hotel, period.ID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		shifts = roster.MergeRoster(shifts, set)
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	var data []byte
	var contentType, filename string

	switch format {
	case "csv":
		data, err = export.RosterCSV(period, shifts)
		contentType = "text/csv"
		filename = fmt.Sprintf("roster_%s_%d.csv", hotel, period.ID)
	case "xlsx":
		data, err = export.RosterXLSX(hotel, period, shifts)
		contentType = export.XLSXContentType
		filename = fmt.Sprintf("roster_%s_%d.xlsx", hotel, period.ID)
	default:
		h.errorResponse(w, r, "unsupported export format")
		return
	}
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logInternalServerError(r, err)
	}
}
