package domain

import "time"

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// ClockLog is an actual recorded attendance event. An open log has no
// TimeOut yet. An unrostered log has no matching planned shift and is
// subject to approval.
type ClockLog struct {
	ID         int64          `json:"id"`
	StaffID    int64          `json:"staffID"`
	Date       string         `json:"date"`
	TimeIn     string         `json:"timeIn"`
	TimeOut    *string        `json:"timeOut,omitempty"`
	IsRostered bool           `json:"isRostered"`
	Approval   ApprovalStatus `json:"approval"`
	CreatedAt  time.Time      `json:"createdAt"`
}
