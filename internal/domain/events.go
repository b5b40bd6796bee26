package domain

import (
	"encoding/json"
	"time"
)

// StatusEvent is rebroadcast to websocket clients when a staff member's
// attendance status changes. Delivery is best-effort and unordered.
type StatusEvent struct {
	Hotel   string    `json:"hotel"`
	StaffID int64     `json:"staffID"`
	Date    string    `json:"date"`
	Status  string    `json:"status"`
	At      time.Time `json:"at"`
}

// NotificationMessage travels over the notification queue. Data stays raw
// so the consumer can decode it into the template payload matching Type.
type NotificationMessage struct {
	Type string          `json:"type"`
	To   string          `json:"to"`
	Data json.RawMessage `json:"data"`
}

type RosterPublishedMailData struct {
	Hotel       string `json:"hotel"`
	PeriodTitle string `json:"periodTitle"`
	Created     int    `json:"created"`
	Updated     int    `json:"updated"`
}

type PeriodFinalizedMailData struct {
	Hotel       string `json:"hotel"`
	PeriodTitle string `json:"periodTitle"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}
