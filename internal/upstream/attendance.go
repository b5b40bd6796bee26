package upstream

import (
	"context"
	"fmt"
	"net/url"

	"github.com/nlekkerman/hotelmate-roster/backend/internal/domain"
)

func (c *Client) GetPeriods(ctx context.Context, hotel string) ([]domain.RosterPeriod, error) {
	var periods []domain.RosterPeriod
	if err := c.do(ctx, "GET", attendancePath(hotel, "/periods/"), nil, &periods); err != nil {
		return nil, err
	}
	return periods, nil
}

func (c *Client) GetPeriod(ctx context.Context, hotel string, periodID int64) (*domain.RosterPeriod, error) {
	var period domain.RosterPeriod
	if err := c.do(ctx, "GET", attendancePath(hotel, fmt.Sprintf("/periods/%d/", periodID)), nil, &period); err != nil {
		return nil, err
	}
	return &period, nil
}

func (c *Client) GetShifts(ctx context.Context, hotel string, periodID int64) ([]domain.Shift, error) {
	var shifts []domain.Shift
	if err := c.do(ctx, "GET", attendancePath(hotel, fmt.Sprintf("/periods/%d/shifts/", periodID)), nil, &shifts); err != nil {
		return nil, err
	}
	for i := range shifts {
		shifts[i].Persisted = true
	}
	return shifts, nil
}

// BulkSaveShifts creates and updates a whole pending batch in one request.
// A 2xx reply can still carry per-item rejections in Errors; those are
// returned as-is for the caller to act on.
func (c *Client) BulkSaveShifts(ctx context.Context, hotel string, periodID int64, shifts []domain.Shift) (*domain.BulkSaveResult, error) {
	req := domain.BulkSaveRequest{
		Hotel:  hotel,
		Period: periodID,
		Shifts: shifts,
	}

	var result domain.BulkSaveResult
	if err := c.do(ctx, "POST", attendancePath(hotel, "/shifts/bulk-save/"), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) FinalizePeriod(ctx context.Context, hotel string, periodID int64) error {
	return c.do(ctx, "POST", attendancePath(hotel, fmt.Sprintf("/periods/%d/finalize/", periodID)), nil, nil)
}

func (c *Client) GetClockLogs(ctx context.Context, hotel, date string) ([]domain.ClockLog, error) {
	path := attendancePath(hotel, "/clock-logs/")
	if date != "" {
		path += "?date=" + url.QueryEscape(date)
	}

	var logs []domain.ClockLog
	if err := c.do(ctx, "GET", path, nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (c *Client) CreateClockLog(ctx context.Context, hotel string, log *domain.ClockLog) (*domain.ClockLog, error) {
	var created domain.ClockLog
	if err := c.do(ctx, "POST", attendancePath(hotel, "/clock-logs/"), log, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) ApproveClockLog(ctx context.Context, hotel string, logID int64) error {
	return c.do(ctx, "POST", attendancePath(hotel, fmt.Sprintf("/clock-logs/%d/approve/", logID)), nil, nil)
}

func (c *Client) RejectClockLog(ctx context.Context, hotel string, logID int64) error {
	return c.do(ctx, "POST", attendancePath(hotel, fmt.Sprintf("/clock-logs/%d/reject/", logID)), nil, nil)
}

func (c *Client) GetAttendanceSummary(ctx context.Context, hotel, date string) (*domain.AttendanceSummary, error) {
	path := attendancePath(hotel, "/summary/")
	if date != "" {
		path += "?date=" + url.QueryEscape(date)
	}

	var summary domain.AttendanceSummary
	if err := c.do(ctx, "GET", path, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) GetDepartmentRoster(ctx context.Context, hotel, department string) ([]domain.StaffMember, error) {
	path := fmt.Sprintf("/staff/%s/departments/%s/roster/", hotel, url.PathEscape(department))

	var staff []domain.StaffMember
	if err := c.do(ctx, "GET", path, nil, &staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// Login verifies credentials against the backend. The returned account is
// only used to mint a local session cookie, no password is stored here.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.StaffAccount, error) {
	req := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}

	var account domain.StaffAccount
	if err := c.do(ctx, "POST", "/staff/auth/login/", req, &account); err != nil {
		return nil, err
	}
	return &account, nil
}
