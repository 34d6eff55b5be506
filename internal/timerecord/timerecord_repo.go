package timerecord

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=timerecord_repo.go -destination=mock/timerecord_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, r *TimeRecord) error
	FindByUserDateType(ctx context.Context, userID string, date time.Time, recordType string) (*TimeRecord, error)
	ListByUser(ctx context.Context, userID string) ([]TimeRecord, error)
	ListByUserBetween(ctx context.Context, userID string, start, end time.Time) ([]TimeRecord, error)
	DeleteByUser(ctx context.Context, userID string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, rec *TimeRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) FindByUserDateType(ctx context.Context, userID string, date time.Time, recordType string) (*TimeRecord, error) {
	var rec TimeRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("record_date = ?", date.Format("2006-01-02")).
		Where("type = ?", recordType).
		Order("recorded_at ASC").
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]TimeRecord, error) {
	var rows []TimeRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("recorded_at DESC").
		Find(&rows).Error
	return rows, err
}

// ListByUserBetween returns the records whose date falls in [start, end],
// both bounds inclusive, oldest first.
func (r *repository) ListByUserBetween(ctx context.Context, userID string, start, end time.Time) ([]TimeRecord, error) {
	var rows []TimeRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("record_date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("recorded_at ASC").
		Find(&rows).Error
	return rows, err
}

// DeleteByUser removes a user's whole clock history. Only the user-deletion
// flow calls this.
func (r *repository) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&TimeRecord{}).Error
}
