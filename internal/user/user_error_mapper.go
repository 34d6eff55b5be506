package user

import (
	"errors"
	"strings"

	usererrors "github.com/DOINGGOODPROJECTS/timetracking/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return usererrors.ErrEmailTaken
	}

	// sqlite in tests reports the same violation as plain text
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key value") ||
		(strings.Contains(msg, "unique constraint failed") && strings.Contains(msg, "users")) {
		return usererrors.ErrEmailTaken
	}

	return err
}
