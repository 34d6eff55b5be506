package auth

import (
	"context"
	"errors"
	"os"
	"time"

	autherrors "github.com/DOINGGOODPROJECTS/timetracking/internal/auth/errors"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/timerecord"
	"github.com/DOINGGOODPROJECTS/timetracking/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
}

type service struct {
	users   user.Repository
	records timerecord.Repository
	now     func() time.Time
	logger  *zap.Logger
}

func NewService(users user.Repository, records timerecord.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		users:   users,
		records: records,
		now:     time.Now,
		logger:  l,
	}
}

// Login verifies the credentials and reconciles the denormalized clock flags
// against today's actual records before answering. A stale flag would
// otherwise survive past midnight and block the next morning's check-in.
func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := s.reconcileClockFlags(ctx, u); err != nil {
		s.logger.Warn("clock flag reconciliation failed",
			zap.String("user_id", u.ID.String()),
			zap.Error(err),
		)
	}

	accessToken, err := s.generateToken(u, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(u, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return accessToken, refreshToken, mapToAuthResponse(u), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}
	if _, err := uuid.Parse(userID); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidUserID
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}

	newAccessToken, err := s.generateToken(u, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	newRefreshToken, err := s.generateToken(u, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, newRefreshToken, mapToAuthResponse(u), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	resp := mapToAuthResponse(u)
	return &resp, nil
}

// reconcileClockFlags recomputes is_checked_in / is_checked_out from today's
// records. Checked in means an arrival without a matching departure.
func (s *service) reconcileClockFlags(ctx context.Context, u *user.User) error {
	now := s.now()

	hasCheckIn, err := s.hasRecordToday(ctx, u.ID.String(), now, timerecord.TypeCheckIn)
	if err != nil {
		return err
	}
	hasCheckOut, err := s.hasRecordToday(ctx, u.ID.String(), now, timerecord.TypeCheckOut)
	if err != nil {
		return err
	}

	checkedIn := hasCheckIn && !hasCheckOut
	checkedOut := hasCheckOut

	if u.IsCheckedIn == checkedIn && u.IsCheckedOut == checkedOut {
		return nil
	}

	u.IsCheckedIn = checkedIn
	u.IsCheckedOut = checkedOut
	return s.users.Update(ctx, u)
}

func (s *service) hasRecordToday(ctx context.Context, userID string, now time.Time, recordType string) (bool, error) {
	_, err := s.records.FindByUserDateType(ctx, userID, now, recordType)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func (s *service) generateToken(u *user.User, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  u.ID.String(),
		"is_admin": u.IsAdmin,
		"language": u.Language,
		"exp":      s.now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToAuthResponse(u *user.User) AuthResponse {
	return AuthResponse{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		IsAdmin:      u.IsAdmin,
		IsCheckedIn:  u.IsCheckedIn,
		IsCheckedOut: u.IsCheckedOut,
		Department:   u.Department,
		Language:     u.Language,
		Theme:        u.Theme,
	}
}
