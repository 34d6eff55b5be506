package events

import "time"

const ReportRequestedTopic = "time.report.requested.v1"

// ReportRequestedEvent asks the worker fleet to render a report that was
// accepted by the API. Dates are inclusive "2006-01-02" bounds.
type ReportRequestedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id"`
	ReportID    string    `json:"report_id"`
	UserID      string    `json:"user_id"`
	RequestedBy string    `json:"requested_by"`
	Period      string    `json:"period"`
	Format      string    `json:"format"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	OccurredAt  time.Time `json:"occurred_at"`
}
