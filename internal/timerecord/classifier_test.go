package timerecord_test

import (
	"testing"

	"github.com/DOINGGOODPROJECTS/timetracking/internal/timerecord"

	"github.com/stretchr/testify/assert"
)

func TestClassify_CheckIn(t *testing.T) {
	c := timerecord.DefaultClassifier()

	for h := 0; h < 24; h++ {
		got := c.Classify(timerecord.TypeCheckIn, h)
		switch {
		case h < 9:
			assert.Equal(t, timerecord.StatusEarly, got, "hour %d", h)
		case h == 9:
			assert.Equal(t, timerecord.StatusOnTime, got, "hour %d", h)
		default:
			assert.Equal(t, timerecord.StatusLate, got, "hour %d", h)
		}
	}
}

func TestClassify_CheckOut(t *testing.T) {
	c := timerecord.DefaultClassifier()

	for h := 0; h < 24; h++ {
		got := c.Classify(timerecord.TypeCheckOut, h)
		switch {
		case h < 17:
			assert.Equal(t, timerecord.StatusEarly, got, "hour %d", h)
		case h == 17:
			assert.Equal(t, timerecord.StatusOnTime, got, "hour %d", h)
		default:
			assert.Equal(t, timerecord.StatusOvertime, got, "hour %d", h)
		}
	}
}

func TestClassify_BoundariesIgnoreMinutes(t *testing.T) {
	// the cut is on the hour component alone; 09:59 is still on time
	c := timerecord.DefaultClassifier()
	assert.Equal(t, timerecord.StatusOnTime, c.Classify(timerecord.TypeCheckIn, 9))
	assert.Equal(t, timerecord.StatusOnTime, c.Classify(timerecord.TypeCheckOut, 17))
}

func TestNewClassifier_RejectsBadHours(t *testing.T) {
	// out-of-range thresholds fall back to the defaults
	c := timerecord.NewClassifier(-1, 42)
	assert.Equal(t, timerecord.StatusOnTime, c.Classify(timerecord.TypeCheckIn, timerecord.DefaultWorkdayStartHour))
	assert.Equal(t, timerecord.StatusOnTime, c.Classify(timerecord.TypeCheckOut, timerecord.DefaultWorkdayEndHour))
}

func TestClassifierFromEnv(t *testing.T) {
	t.Run("reads the workday hours from the environment", func(t *testing.T) {
		t.Setenv("WORKDAY_START_HOUR", "8")
		t.Setenv("WORKDAY_END_HOUR", "18")

		c := timerecord.ClassifierFromEnv()
		assert.Equal(t, timerecord.StatusOnTime, c.Classify(timerecord.TypeCheckIn, 8))
		assert.Equal(t, timerecord.StatusLate, c.Classify(timerecord.TypeCheckIn, 9))
		assert.Equal(t, timerecord.StatusOnTime, c.Classify(timerecord.TypeCheckOut, 18))
		assert.Equal(t, timerecord.StatusEarly, c.Classify(timerecord.TypeCheckOut, 17))
	})

	t.Run("unset or garbage values fall back to the defaults", func(t *testing.T) {
		t.Setenv("WORKDAY_START_HOUR", "noon")
		t.Setenv("WORKDAY_END_HOUR", "")

		c := timerecord.ClassifierFromEnv()
		assert.Equal(t, timerecord.StatusOnTime, c.Classify(timerecord.TypeCheckIn, timerecord.DefaultWorkdayStartHour))
		assert.Equal(t, timerecord.StatusOnTime, c.Classify(timerecord.TypeCheckOut, timerecord.DefaultWorkdayEndHour))
	})
}
