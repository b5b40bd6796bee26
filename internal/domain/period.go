package domain

import "time"

// RosterPeriod is a date range for which shifts are planned. A finalized
// period is locked against further edits.
type RosterPeriod struct {
	ID          int64     `json:"id"`
	Hotel       string    `json:"hotel"`
	Title       string    `json:"title"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	IsFinalized bool      `json:"isFinalized"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Contains reports whether date (a DateLayout string) falls within
// [StartDate, EndDate]. Dates compare correctly as strings in this layout.
func (p *RosterPeriod) Contains(date string) bool {
	return date >= p.StartDate && date <= p.EndDate
}

// DayOffset returns target.StartDate - p.StartDate in whole days.
func (p *RosterPeriod) DayOffset(target *RosterPeriod) (int, error) {
	src, err := time.Parse(DateLayout, p.StartDate)
	if err != nil {
		return 0, err
	}
	dst, err := time.Parse(DateLayout, target.StartDate)
	if err != nil {
		return 0, err
	}
	return int(dst.Sub(src).Hours() / 24), nil
}
