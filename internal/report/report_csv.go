package report

import (
	"bytes"
	"encoding/csv"

	"github.com/DOINGGOODPROJECTS/timetracking/internal/timesheet"
)

func buildReportCSV(entries []timesheet.Entry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"date", "employee", "check_in", "check_out", "total_hours", "status", "check_in_status", "check_out_status"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}

	for _, e := range entries {
		row := []string{
			e.Date,
			e.EmployeeName,
			deref(e.CheckIn),
			deref(e.CheckOut),
			deref(e.TotalHours),
			e.Status,
			e.CheckInStatus,
			e.CheckOutStatus,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
