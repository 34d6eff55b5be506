package auth

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	IsAdmin      bool    `json:"is_admin"`
	IsCheckedIn  bool    `json:"is_checked_in"`
	IsCheckedOut bool    `json:"is_checked_out"`
	Department   *string `json:"department"`
	Language     string  `json:"language"`
	Theme        string  `json:"theme"`
}
