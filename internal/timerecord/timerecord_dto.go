package timerecord

// ClockRequest is the body of a check-in or check-out call. Location is
// optional; the client omits it when geolocation was denied or timed out.
type ClockRequest struct {
	Location *Location `json:"location"`
}

type TimeRecordResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Type       string    `json:"type"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	RecordedAt string    `json:"recorded_at"`
	Status     string    `json:"status"`
	Location   *Location `json:"location,omitempty"`
}

// ClockResponse wraps the created record with a message in the user's
// language preference.
type ClockResponse struct {
	Record  TimeRecordResponse `json:"record"`
	Message string             `json:"message"`
}
