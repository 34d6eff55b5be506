package report

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending = "pending"
	StatusReady   = "ready"
	StatusFailed  = "failed"

	FormatPDF = "pdf"
	FormatCSV = "csv"

	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodCustom  = "custom"
)

// Report is one requested export. The row is created pending inside the
// request transaction; a consumer renders the file later and flips the
// status. The rendered payload itself lives in redis, not in this table.
type Report struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index"`
	RequestedBy  uuid.UUID      `gorm:"column:requested_by;type:uuid;not null"`
	Name         string         `gorm:"column:name;type:varchar(255);not null"`
	Period       string         `gorm:"column:period;type:varchar(20);not null"`
	Format       string         `gorm:"column:format;type:varchar(10);not null"`
	StartDate    time.Time      `gorm:"column:start_date;type:date;not null"`
	EndDate      time.Time      `gorm:"column:end_date;type:date;not null"`
	Status       string         `gorm:"column:status;type:varchar(20);not null"`
	FileSize     *int64         `gorm:"column:file_size"`
	ErrorMessage *string        `gorm:"column:error_message"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Report) TableName() string {
	return "reports"
}
