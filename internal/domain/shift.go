package domain

// DateLayout is the calendar-date format used everywhere in the roster API.
const DateLayout = "2006-01-02"

// Shift is one planned work interval for one staff member on one date.
// Times are HH:MM strings (the upstream API sometimes sends HH:MM:SS,
// comparisons truncate to HH:MM). A shift with IsDraft set shadows the
// server shift referenced by OriginalID, or is a brand-new shift when
// OriginalID is empty.
type Shift struct {
	ID            string `json:"id"`
	StaffID       int64  `json:"staffID"`
	Department    string `json:"department"`
	ShiftDate     string `json:"shiftDate"`
	ShiftStart    string `json:"shiftStart"`
	ShiftEnd      string `json:"shiftEnd"`
	LocationID    *int64 `json:"locationID,omitempty"`
	Notes         string `json:"notes,omitempty"`
	IsDraft       bool   `json:"isDraft"`
	IsCopiedDraft bool   `json:"isCopiedDraft"`
	OriginalID    string `json:"originalID,omitempty"`
	Persisted     bool   `json:"persisted"`
}

type BulkSaveRequest struct {
	Hotel  string  `json:"hotel"`
	Period int64   `json:"period"`
	Shifts []Shift `json:"shifts"`
}

type BulkSaveError struct {
	ShiftID string `json:"shiftID"`
	Detail  string `json:"detail"`
}

// BulkSaveResult is returned by the upstream bulk-save endpoint. Errors are
// per-item backend messages and are passed through to the caller unchanged.
type BulkSaveResult struct {
	Created []Shift         `json:"created"`
	Updated []Shift         `json:"updated"`
	Errors  []BulkSaveError `json:"errors"`
}
