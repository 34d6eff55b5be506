package user

import (
	"context"
	"time"

	"github.com/DOINGGOODPROJECTS/timetracking/internal/timerecord"

	"gorm.io/gorm"
)

// clockStateRepository backs the clock service's view of the user row. It
// lives here so the dependency runs user -> timerecord only.
type clockStateRepository struct {
	db *gorm.DB
}

func NewClockStateRepository(db *gorm.DB) timerecord.UserStateRepository {
	return &clockStateRepository{db: db}
}

func (r *clockStateRepository) WithTx(tx *gorm.DB) timerecord.UserStateRepository {
	return &clockStateRepository{db: tx}
}

func (r *clockStateRepository) GetClockState(ctx context.Context, userID string) (timerecord.ClockState, error) {
	var u User
	err := r.db.WithContext(ctx).
		Select("is_checked_in", "is_checked_out").
		First(&u, "id = ?", userID).Error
	if err != nil {
		return timerecord.ClockState{}, err
	}
	return timerecord.ClockState{
		IsCheckedIn:  u.IsCheckedIn,
		IsCheckedOut: u.IsCheckedOut,
	}, nil
}

func (r *clockStateRepository) SetClockState(
	ctx context.Context,
	userID string,
	checkedIn, checkedOut bool,
	lastActivity time.Time,
	lastLocation timerecord.Location,
) error {
	updates := map[string]interface{}{
		"is_checked_in":  checkedIn,
		"is_checked_out": checkedOut,
		"last_activity":  lastActivity,
	}
	if !lastLocation.IsZero() {
		updates["last_location_latitude"] = lastLocation.Latitude
		updates["last_location_longitude"] = lastLocation.Longitude
		updates["last_location_accuracy"] = lastLocation.Accuracy
		updates["last_location_address"] = lastLocation.Address
	}

	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
