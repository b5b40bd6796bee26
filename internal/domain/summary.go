package domain

import "time"

// AttendanceSummary is the per-hotel, per-day rollup shown on the dashboard.
// It is refreshed by the poller and cached with a TTL.
type AttendanceSummary struct {
	Hotel             string    `json:"hotel"`
	Date              string    `json:"date"`
	OnDuty            int       `json:"onDuty"`
	Completed         int       `json:"completed"`
	NoClockLog        int       `json:"noClockLog"`
	UnrosteredPending int       `json:"unrosteredPending"`
	Rejected          int       `json:"rejected"`
	RefreshedAt       time.Time `json:"refreshedAt"`
}
