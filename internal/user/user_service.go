package user

import (
	"context"
	"encoding/json"
	"time"

	"github.com/DOINGGOODPROJECTS/timetracking/internal/shared/contextutil"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/timerecord"
	usererrors "github.com/DOINGGOODPROJECTS/timetracking/internal/user/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// DirectoryCacheKey caches the admin employee directory. Any mutation of a
// user row invalidates it.
const DirectoryCacheKey = "users:directory"

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	GetProfile(ctx context.Context, userID string) (UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (UserResponse, error)
	UpdatePreferences(ctx context.Context, userID string, req UpdatePreferencesRequest) (UserResponse, error)
	ListEmployees(ctx context.Context) ([]UserResponse, error)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (UserResponse, error)
	UpdateEmployee(ctx context.Context, id string, req UpdateEmployeeRequest) (UserResponse, error)
	DeleteEmployee(ctx context.Context, actorID, id string) error
}

type service struct {
	db      *gorm.DB
	repo    Repository
	records timerecord.Repository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, records timerecord.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		records: records,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) GetProfile(ctx context.Context, userID string) (UserResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

// UpdateProfile changes name, email, and optionally the password. Changing
// the password requires the current one.
func (s *service) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	if req.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
			return UserResponse{}, usererrors.ErrWrongPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return UserResponse{}, err
		}
		u.PasswordHash = string(hash)
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = *req.Email
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	s.invalidateDirectory(ctx)
	return mapToResponse(*u), nil
}

func (s *service) UpdatePreferences(ctx context.Context, userID string, req UpdatePreferencesRequest) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	if req.Language != nil {
		u.Language = *req.Language
	}
	if req.Theme != nil {
		u.Theme = *req.Theme
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) ListEmployees(ctx context.Context) ([]UserResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, DirectoryCacheKey).Result(); err == nil {
			var resp []UserResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Collapse concurrent directory loads into one query.
	v, err, _ := s.sf.Do(DirectoryCacheKey, func() (interface{}, error) {
		users, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]UserResponse, len(users))
		for i, u := range users {
			resp[i] = mapToResponse(u)
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, DirectoryCacheKey, jsonData, 5*time.Minute)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]UserResponse), nil
}

func (s *service) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (UserResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	u := &User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		IsAdmin:      req.IsAdmin,
		Department:   req.Department,
		Language:     "fr",
		Theme:        ThemeSystem,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error("create employee persist failed",
			zap.String("request_id", rid),
			zap.String("email", req.Email),
			zap.Error(err),
		)
		return UserResponse{}, mapRepositoryError(err)
	}

	s.invalidateDirectory(ctx)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("user_id", u.ID.String()),
	)
	return mapToResponse(*u), nil
}

func (s *service) UpdateEmployee(ctx context.Context, id string, req UpdateEmployeeRequest) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Department != nil {
		u.Department = req.Department
	}
	if req.IsAdmin != nil {
		u.IsAdmin = *req.IsAdmin
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	s.invalidateDirectory(ctx)
	return mapToResponse(*u), nil
}

// DeleteEmployee removes the account and its whole clock history in one
// transaction. Admins cannot delete themselves.
func (s *service) DeleteEmployee(ctx context.Context, actorID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return usererrors.ErrInvalidUserID
	}
	if actorID == id {
		return usererrors.ErrSelfDeletion
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		if _, err := qtx.FindByID(ctx, id); err != nil {
			return mapRepositoryError(err)
		}
		if err := s.records.WithTx(tx).DeleteByUser(ctx, id); err != nil {
			return err
		}
		return qtx.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Error("delete employee failed",
			zap.String("user_id", id),
			zap.Error(err),
		)
		return err
	}

	s.invalidateDirectory(ctx)
	s.logger.Info("delete employee success", zap.String("user_id", id))
	return nil
}

func (s *service) invalidateDirectory(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, DirectoryCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate directory cache",
			zap.String("key", DirectoryCacheKey),
			zap.Error(err),
		)
	}
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		IsAdmin:      u.IsAdmin,
		IsCheckedIn:  u.IsCheckedIn,
		IsCheckedOut: u.IsCheckedOut,
		Department:   u.Department,
		Language:     u.Language,
		Theme:        u.Theme,
		CreatedAt:    u.CreatedAt.Format(time.RFC3339),
	}
	if u.LastActivity != nil {
		la := u.LastActivity.Format(time.RFC3339)
		resp.LastActivity = &la
	}
	if !u.LastLocation.IsZero() {
		loc := u.LastLocation
		resp.LastLocation = &loc
	}
	return resp
}
