// Package timesheet folds a user's raw clock events into per-date rows and
// derives the dashboard metrics from them.
package timesheet

import (
	"fmt"
	"sort"

	"github.com/DOINGGOODPROJECTS/timetracking/internal/timerecord"
)

const (
	StatusComplete   = "complete"
	StatusIncomplete = "incomplete"
)

// EntryLocation carries where each of the day's two events happened.
type EntryLocation struct {
	CheckIn  *timerecord.Location `json:"check_in"`
	CheckOut *timerecord.Location `json:"check_out"`
}

// Entry is one display-ready timesheet row. Status says whether the day is
// complete; CheckInStatus / CheckOutStatus carry the arrival and departure
// labels, which are a separate concept and must not be folded into Status.
type Entry struct {
	Date           string        `json:"date"`
	CheckIn        *string       `json:"check_in"`
	CheckOut       *string       `json:"check_out"`
	TotalHours     *string       `json:"total_hours"`
	Status         string        `json:"status"`
	CheckInStatus  string        `json:"check_in_status,omitempty"`
	CheckOutStatus string        `json:"check_out_status,omitempty"`
	Location       EntryLocation `json:"location"`
	EmployeeName   string        `json:"employee_name"`
}

// BuildTimesheet partitions records by calendar date and pairs each date's
// first check-in with its first check-out. Input order does not matter and
// the output carries no ordering guarantee; callers sort.
func BuildTimesheet(records []timerecord.TimeRecord, employeeName string) []Entry {
	type dayPair struct {
		checkIn  *timerecord.TimeRecord
		checkOut *timerecord.TimeRecord
	}

	days := make(map[string]*dayPair)
	order := make([]string, 0)

	for i := range records {
		rec := &records[i]
		date := rec.RecordedAt.Format("2006-01-02")

		pair, ok := days[date]
		if !ok {
			pair = &dayPair{}
			days[date] = pair
			order = append(order, date)
		}

		// at most one of each exists per date; pick the earliest if the
		// store was ever corrupted upstream
		switch rec.Type {
		case timerecord.TypeCheckIn:
			if pair.checkIn == nil || rec.RecordedAt.Before(pair.checkIn.RecordedAt) {
				pair.checkIn = rec
			}
		case timerecord.TypeCheckOut:
			if pair.checkOut == nil || rec.RecordedAt.Before(pair.checkOut.RecordedAt) {
				pair.checkOut = rec
			}
		}
	}

	sort.Strings(order)

	entries := make([]Entry, 0, len(order))
	for _, date := range order {
		pair := days[date]
		entry := Entry{
			Date:         date,
			Status:       StatusIncomplete,
			EmployeeName: employeeName,
		}

		if pair.checkIn != nil {
			at := pair.checkIn.RecordedAt.Format("15:04:05")
			entry.CheckIn = &at
			entry.CheckInStatus = pair.checkIn.Status
			if !pair.checkIn.Location.IsZero() {
				loc := pair.checkIn.Location
				entry.Location.CheckIn = &loc
			}
		}
		if pair.checkOut != nil {
			at := pair.checkOut.RecordedAt.Format("15:04:05")
			entry.CheckOut = &at
			entry.CheckOutStatus = pair.checkOut.Status
			if !pair.checkOut.Location.IsZero() {
				loc := pair.checkOut.Location
				entry.Location.CheckOut = &loc
			}
		}

		if pair.checkIn != nil && pair.checkOut != nil {
			minutes := int(pair.checkOut.RecordedAt.Sub(pair.checkIn.RecordedAt).Minutes())
			dur := FormatDuration(minutes)
			entry.TotalHours = &dur
			entry.Status = StatusComplete
		}

		entries = append(entries, entry)
	}

	return entries
}

// FormatDuration renders elapsed minutes as "9h 2m". Minutes are not
// zero-padded here; the weekly total uses a padded variant.
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
