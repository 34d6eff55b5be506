package timerecord

import (
	"os"
	"strconv"
)

const (
	// Default workday boundaries used when no configuration is provided.
	DefaultWorkdayStartHour = 9
	DefaultWorkdayEndHour   = 17

	envWorkdayStartHour = "WORKDAY_START_HOUR"
	envWorkdayEndHour   = "WORKDAY_END_HOUR"
)

// Classifier assigns a status label to a clock event from its hour of day.
// Only the hour component matters: 08:59 is early, 09:45 is still on-time.
type Classifier struct {
	startHour int
	endHour   int
}

func NewClassifier(startHour, endHour int) Classifier {
	if startHour < 0 || startHour > 23 {
		startHour = DefaultWorkdayStartHour
	}
	if endHour < 0 || endHour > 23 {
		endHour = DefaultWorkdayEndHour
	}
	return Classifier{startHour: startHour, endHour: endHour}
}

func DefaultClassifier() Classifier {
	return NewClassifier(DefaultWorkdayStartHour, DefaultWorkdayEndHour)
}

// ClassifierFromEnv reads WORKDAY_START_HOUR and WORKDAY_END_HOUR, falling
// back to the defaults when a variable is unset or not a number.
func ClassifierFromEnv() Classifier {
	return NewClassifier(
		hourFromEnv(envWorkdayStartHour, DefaultWorkdayStartHour),
		hourFromEnv(envWorkdayEndHour, DefaultWorkdayEndHour),
	)
}

func hourFromEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	h, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return h
}

// Classify is a pure function of (event type, hour 0-23).
func (c Classifier) Classify(recordType string, hour int) string {
	switch recordType {
	case TypeCheckOut:
		switch {
		case hour < c.endHour:
			return StatusEarly
		case hour == c.endHour:
			return StatusOnTime
		default:
			return StatusOvertime
		}
	default:
		switch {
		case hour < c.startHour:
			return StatusEarly
		case hour == c.startHour:
			return StatusOnTime
		default:
			return StatusLate
		}
	}
}
