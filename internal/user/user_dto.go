package user

import "github.com/DOINGGOODPROJECTS/timetracking/internal/timerecord"

type CreateEmployeeRequest struct {
	Name       string  `json:"name" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=8"`
	Department *string `json:"department"`
	IsAdmin    bool    `json:"is_admin"`
}

type UpdateEmployeeRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Department *string `json:"department"`
	IsAdmin    *bool   `json:"is_admin"`
}

type UpdateProfileRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email" binding:"omitempty,email"`
	CurrentPassword string  `json:"current_password"`
	NewPassword     string  `json:"new_password" binding:"omitempty,min=8"`
}

type UpdatePreferencesRequest struct {
	Language *string `json:"language" binding:"omitempty,oneof=fr en"`
	Theme    *string `json:"theme" binding:"omitempty,oneof=system light dark"`
}

type UserResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	IsAdmin      bool                 `json:"is_admin"`
	IsCheckedIn  bool                 `json:"is_checked_in"`
	IsCheckedOut bool                 `json:"is_checked_out"`
	LastActivity *string              `json:"last_activity"`
	LastLocation *timerecord.Location `json:"last_location,omitempty"`
	Department   *string              `json:"department"`
	Language     string               `json:"language"`
	Theme        string               `json:"theme"`
	CreatedAt    string               `json:"created_at"`
}
