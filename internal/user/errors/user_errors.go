package usererrors

import (
	"net/http"

	"github.com/DOINGGOODPROJECTS/timetracking/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)
	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"This email address is already in use",
		http.StatusConflict,
	)
	ErrWrongPassword = apperror.New(
		apperror.CodeUnauthorized,
		"Current password is incorrect",
		http.StatusUnauthorized,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)
	ErrSelfDeletion = apperror.New(
		apperror.CodeInvalidState,
		"You cannot delete your own account",
		http.StatusUnprocessableEntity,
	)
)
