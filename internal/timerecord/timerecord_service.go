package timerecord

import (
	"context"
	"errors"
	"time"

	"github.com/DOINGGOODPROJECTS/timetracking/internal/shared/contextutil"
	timerecorderrors "github.com/DOINGGOODPROJECTS/timetracking/internal/timerecord/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=timerecord_service.go -destination=mock/timerecord_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, userID string, req ClockRequest) (TimeRecordResponse, error)
	CheckOut(ctx context.Context, userID string, req ClockRequest) (TimeRecordResponse, error)
	ListForUser(ctx context.Context, userID string) ([]TimeRecordResponse, error)
}

type service struct {
	db         *gorm.DB
	repo       Repository
	users      UserStateRepository
	classifier Classifier
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, users UserStateRepository, classifier Classifier, logger ...*zap.Logger) Service {
	l := zap.L().Named("timerecord.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timerecord.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		users:      users,
		classifier: classifier,
		now:        time.Now,
		logger:     l,
	}
}

// CheckIn records an arrival for today. The duplicate check and the insert
// run in one transaction; the unique index backstops concurrent requests that
// both pass the check.
func (s *service) CheckIn(ctx context.Context, userID string, req ClockRequest) (TimeRecordResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return TimeRecordResponse{}, timerecorderrors.ErrInvalidUserID
	}

	now := s.now()
	var row *TimeRecord

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		users := s.users.WithTx(tx)

		state, err := users.GetClockState(ctx, userID)
		if err != nil {
			return mapRepositoryError(err, TypeCheckIn)
		}

		_, err = qtx.FindByUserDateType(ctx, userID, now, TypeCheckIn)
		if err == nil {
			return timerecorderrors.ErrAlreadyCheckedIn
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		row = &TimeRecord{
			ID:         uuid.New(),
			UserID:     uid,
			RecordDate: dateOf(now),
			Type:       TypeCheckIn,
			RecordedAt: now,
			Status:     s.classifier.Classify(TypeCheckIn, now.Hour()),
			Location:   locationOf(req),
		}
		if err := qtx.Create(ctx, row); err != nil {
			return mapRepositoryError(err, TypeCheckIn)
		}

		return users.SetClockState(ctx, userID, true, state.IsCheckedOut, now, row.Location)
	})
	if err != nil {
		s.logClockFailure(ctx, TypeCheckIn, userID, err)
		return TimeRecordResponse{}, err
	}

	return mapToResponse(*row), nil
}

// CheckOut records a departure for today. It requires an open check-in and
// rejects a second departure on the same date.
func (s *service) CheckOut(ctx context.Context, userID string, req ClockRequest) (TimeRecordResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return TimeRecordResponse{}, timerecorderrors.ErrInvalidUserID
	}

	now := s.now()
	var row *TimeRecord

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		users := s.users.WithTx(tx)

		state, err := users.GetClockState(ctx, userID)
		if err != nil {
			return mapRepositoryError(err, TypeCheckOut)
		}

		// duplicate check first: a closed day answers "already checked out",
		// not "not checked in"
		_, err = qtx.FindByUserDateType(ctx, userID, now, TypeCheckOut)
		if err == nil {
			return timerecorderrors.ErrAlreadyCheckedOut
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if !state.IsCheckedIn {
			return timerecorderrors.ErrNotCheckedIn
		}

		row = &TimeRecord{
			ID:         uuid.New(),
			UserID:     uid,
			RecordDate: dateOf(now),
			Type:       TypeCheckOut,
			RecordedAt: now,
			Status:     s.classifier.Classify(TypeCheckOut, now.Hour()),
			Location:   locationOf(req),
		}
		if err := qtx.Create(ctx, row); err != nil {
			return mapRepositoryError(err, TypeCheckOut)
		}

		return users.SetClockState(ctx, userID, false, true, now, row.Location)
	})
	if err != nil {
		s.logClockFailure(ctx, TypeCheckOut, userID, err)
		return TimeRecordResponse{}, err
	}

	return mapToResponse(*row), nil
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]TimeRecordResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, timerecorderrors.ErrInvalidUserID
	}

	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := make([]TimeRecordResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) logClockFailure(ctx context.Context, recordType, userID string, err error) {
	l := contextutil.GetLogger(ctx, s.logger)
	l.Warn("clock action rejected",
		zap.String("type", recordType),
		zap.String("user_id", userID),
		zap.Error(err),
	)
}

// dateOf truncates to local midnight; the date column carries no time part.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func locationOf(req ClockRequest) Location {
	if req.Location == nil {
		return Location{}
	}
	return *req.Location
}

func mapToResponse(r TimeRecord) TimeRecordResponse {
	resp := TimeRecordResponse{
		ID:         r.ID.String(),
		UserID:     r.UserID.String(),
		Type:       r.Type,
		Date:       r.RecordedAt.Format("2006-01-02"),
		Time:       r.RecordedAt.Format("15:04:05"),
		RecordedAt: r.RecordedAt.Format(time.RFC3339),
		Status:     r.Status,
	}
	if !r.Location.IsZero() {
		loc := r.Location
		resp.Location = &loc
	}
	return resp
}
