package user

import (
	"time"

	"github.com/DOINGGOODPROJECTS/timetracking/internal/timerecord"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"
)

// User is an account row. The clock flags (is_checked_in, is_checked_out)
// are a denormalized view of today's time records; the clock service and the
// login flow keep them in sync.
type User struct {
	ID           uuid.UUID           `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string              `gorm:"column:name;type:varchar(255);not null"`
	Email        string              `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	PasswordHash string              `gorm:"column:password_hash;type:varchar(255);not null"`
	IsAdmin      bool                `gorm:"column:is_admin;not null;default:false"`
	IsCheckedIn  bool                `gorm:"column:is_checked_in;not null;default:false"`
	IsCheckedOut bool                `gorm:"column:is_checked_out;not null;default:false"`
	LastActivity *time.Time          `gorm:"column:last_activity"`
	LastLocation timerecord.Location `gorm:"embedded;embeddedPrefix:last_location_"`
	Department   *string             `gorm:"column:department;type:varchar(100)"`
	Language     string              `gorm:"column:language;type:varchar(5);not null;default:fr"`
	Theme        string              `gorm:"column:theme;type:varchar(10);not null;default:system"`
	CreatedAt    time.Time           `gorm:"column:created_at"`
	UpdatedAt    time.Time           `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt      `gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}
