package timesheet

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"time"
)

var durationPattern = regexp.MustCompile(`(\d+)h\s+(\d+)m`)

// WeeklyHours sums the durations of entries falling in the current week.
// The week starts on Monday at local midnight; on a Sunday the boundary
// rolls back six days. Entries without a duration do not count.
func WeeklyHours(entries []Entry, now time.Time) string {
	weekStart := startOfWeek(now)

	total := 0
	for _, e := range entries {
		if e.TotalHours == nil {
			continue
		}
		date, err := time.ParseInLocation("2006-01-02", e.Date, now.Location())
		if err != nil || date.Before(weekStart) {
			continue
		}
		total += parseDuration(*e.TotalHours)
	}

	return fmt.Sprintf("%dh %02dm", total/60, total%60)
}

// Punctuality is the share of this month's entries that are complete or
// arrived on time or early, rounded to the nearest integer. No entries
// means nothing went wrong yet, so 100.
func Punctuality(entries []Entry, now time.Time) int {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	total := 0
	punctual := 0
	for _, e := range entries {
		date, err := time.ParseInLocation("2006-01-02", e.Date, now.Location())
		if err != nil || date.Before(monthStart) {
			continue
		}
		total++
		if e.Status == StatusComplete || e.CheckInStatus == "on-time" || e.CheckInStatus == "early" {
			punctual++
		}
	}

	if total == 0 {
		return 100
	}
	return int(math.Round(float64(punctual) / float64(total) * 100))
}

// SortEntriesDesc orders a timesheet newest first. The aggregator itself
// makes no ordering promise.
func SortEntriesDesc(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
}

func startOfWeek(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	offset := int(day.Weekday()) - int(time.Monday)
	if day.Weekday() == time.Sunday {
		offset = 6
	}
	return day.AddDate(0, 0, -offset)
}

func parseDuration(s string) int {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes
}
