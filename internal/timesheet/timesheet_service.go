package timesheet

import (
	"context"
	"errors"
	"time"

	"github.com/DOINGGOODPROJECTS/timetracking/internal/timerecord"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/user"
	usererrors "github.com/DOINGGOODPROJECTS/timetracking/internal/user/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=timesheet_service.go -destination=mock/timesheet_service_mock.go -package=mock
type Service interface {
	GetTimesheet(ctx context.Context, actorID string, actorIsAdmin bool, targetID string) ([]Entry, error)
	Summary(ctx context.Context, userID string) (SummaryResponse, error)
}

type service struct {
	users   user.Repository
	records timerecord.Repository
	now     func() time.Time
	logger  *zap.Logger
}

func NewService(users user.Repository, records timerecord.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("timesheet.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timesheet.service")
	}
	return &service{
		users:   users,
		records: records,
		now:     time.Now,
		logger:  l,
	}
}

// GetTimesheet returns the target user's rows newest first. A non-admin
// asking about someone else, or anyone asking about a missing user, gets an
// empty sheet rather than an error.
func (s *service) GetTimesheet(ctx context.Context, actorID string, actorIsAdmin bool, targetID string) ([]Entry, error) {
	if targetID == "" {
		targetID = actorID
	}
	if targetID != actorID && !actorIsAdmin {
		return []Entry{}, nil
	}

	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []Entry{}, nil
		}
		return nil, err
	}

	records, err := s.records.ListByUser(ctx, targetID)
	if err != nil {
		return nil, err
	}

	entries := BuildTimesheet(records, target.Name)
	SortEntriesDesc(entries)
	return entries, nil
}

func (s *service) Summary(ctx context.Context, userID string) (SummaryResponse, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SummaryResponse{}, usererrors.ErrUserNotFound
		}
		return SummaryResponse{}, err
	}

	records, err := s.records.ListByUser(ctx, userID)
	if err != nil {
		return SummaryResponse{}, err
	}

	entries := BuildTimesheet(records, u.Name)
	now := s.now()

	return SummaryResponse{
		WeeklyHours:  WeeklyHours(entries, now),
		Punctuality:  Punctuality(entries, now),
		IsCheckedIn:  u.IsCheckedIn,
		IsCheckedOut: u.IsCheckedOut,
	}, nil
}
