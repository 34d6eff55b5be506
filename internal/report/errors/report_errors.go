package reporterrors

import (
	"net/http"

	"github.com/DOINGGOODPROJECTS/timetracking/internal/shared/apperror"
)

var (
	ErrReportNotFound = apperror.New(
		apperror.CodeNotFound,
		"Report not found",
		http.StatusNotFound,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown report period",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"Start date must not be after end date",
		http.StatusBadRequest,
	)
	ErrReportNotReady = apperror.New(
		apperror.CodeInvalidState,
		"Report is not ready yet",
		http.StatusUnprocessableEntity,
	)
	ErrPayloadExpired = apperror.New(
		apperror.CodeNotFound,
		"Report file has expired, generate it again",
		http.StatusNotFound,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"You do not have access to this report",
		http.StatusForbidden,
	)
)
