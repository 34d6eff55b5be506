package timerecord

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeCheckIn  = "check-in"
	TypeCheckOut = "check-out"

	StatusEarly    = "early"
	StatusOnTime   = "on-time"
	StatusLate     = "late"
	StatusOvertime = "overtime"
)

// Location is the optional geolocation attached to a clock event. All fields
// are nullable; a clock action never fails for lack of one.
type Location struct {
	Latitude  *float64 `gorm:"column:latitude" json:"latitude"`
	Longitude *float64 `gorm:"column:longitude" json:"longitude"`
	Accuracy  *float64 `gorm:"column:accuracy" json:"accuracy,omitempty"`
	Address   *string  `gorm:"column:address" json:"address,omitempty"`
}

func (l Location) IsZero() bool {
	return l.Latitude == nil && l.Longitude == nil
}

// TimeRecord is one immutable clock event. The unique index on
// (user_id, record_date, type) is what guarantees at most one check-in and
// one check-out per user per calendar date even under concurrent requests.
type TimeRecord struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index;uniqueIndex:uq_time_records_user_date_type"`
	RecordDate time.Time      `gorm:"column:record_date;type:date;not null;uniqueIndex:uq_time_records_user_date_type"`
	Type       string         `gorm:"column:type;type:varchar(20);not null;uniqueIndex:uq_time_records_user_date_type"`
	RecordedAt time.Time      `gorm:"column:recorded_at;not null"`
	Status     string         `gorm:"column:status;type:varchar(20);not null"`
	Location   Location       `gorm:"embedded;embeddedPrefix:location_"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (TimeRecord) TableName() string {
	return "time_records"
}
