package timesheet

type SummaryResponse struct {
	WeeklyHours  string `json:"weekly_hours"`
	Punctuality  int    `json:"punctuality"`
	IsCheckedIn  bool   `json:"is_checked_in"`
	IsCheckedOut bool   `json:"is_checked_out"`
}
