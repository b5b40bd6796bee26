package roster

import "github.com/nlekkerman/hotelmate-roster/backend/internal/domain"

type Status string

const (
	StatusOnDuty             Status = "on_duty"
	StatusUnrosteredPending  Status = "unrostered_pending"
	StatusRejected           Status = "rejected"
	StatusCompleted          Status = "completed"
	StatusNoClockLog         Status = "no_clock_log"
	StatusUnrosteredApproved Status = "unrostered_approved"
	StatusNoData             Status = "no_data"
)

// DeriveStatus reduces one staff member's shifts and clock logs for a single
// day to exactly one badge status. The priority order is fixed: the first
// matching condition wins.
func DeriveStatus(shifts []domain.Shift, logs []domain.ClockLog) Status {
	for i := range logs {
		if logs[i].TimeOut == nil {
			return StatusOnDuty
		}
	}
	for i := range logs {
		if !logs[i].IsRostered && logs[i].Approval == domain.ApprovalPending {
			return StatusUnrosteredPending
		}
	}
	for i := range logs {
		if logs[i].Approval == domain.ApprovalRejected {
			return StatusRejected
		}
	}
	for i := range logs {
		if logs[i].IsRostered && logs[i].Approval == domain.ApprovalApproved {
			return StatusCompleted
		}
	}
	if len(shifts) > 0 && len(logs) == 0 {
		return StatusNoClockLog
	}
	for i := range logs {
		if !logs[i].IsRostered && logs[i].Approval == domain.ApprovalApproved {
			return StatusUnrosteredApproved
		}
	}
	return StatusNoData
}
