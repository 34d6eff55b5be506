package timerecord

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// ClockState is the slice of the user row the clock flow needs.
type ClockState struct {
	IsCheckedIn  bool
	IsCheckedOut bool
}

// UserStateRepository decouples the clock service from the user package.
// The user package provides the implementation; gorm.ErrRecordNotFound means
// the user does not exist.
//
//go:generate mockgen -source=user_state.go -destination=mock/user_state_mock.go -package=mock
type UserStateRepository interface {
	WithTx(tx *gorm.DB) UserStateRepository
	GetClockState(ctx context.Context, userID string) (ClockState, error)
	SetClockState(ctx context.Context, userID string, checkedIn, checkedOut bool, lastActivity time.Time, lastLocation Location) error
}
