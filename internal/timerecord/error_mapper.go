package timerecord

import (
	"errors"
	"strings"

	timerecorderrors "github.com/DOINGGOODPROJECTS/timetracking/internal/timerecord/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError translates storage errors into domain errors. A 23505 on
// the per-day unique index means a concurrent request won the race; it maps
// to the same duplicate error the guard check would have returned.
func mapRepositoryError(err error, recordType string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return timerecorderrors.ErrUserNotFound
	}

	duplicate := timerecorderrors.ErrAlreadyCheckedIn
	if recordType == TypeCheckOut {
		duplicate = timerecorderrors.ErrAlreadyCheckedOut
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_time_records_user_date_type" {
			return duplicate
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_time_records_user_date_type") {
		return duplicate
	}
	if strings.Contains(errMsg, "unique constraint failed") && strings.Contains(errMsg, "time_records") {
		return duplicate
	}

	return err
}
