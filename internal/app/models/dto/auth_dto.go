package dto

import "github.com/yigit/hostelmess/internal/app/models"

// LoginRequest is the login form. Email and password are accepted as typed;
// only the role decides who the session user is.
type LoginRequest struct {
	Role     models.Role `json:"role" binding:"required,role"`
	Email    string      `json:"email" binding:"omitempty,max=254"`
	Password string      `json:"password" binding:"omitempty,max=128"`
}

// LoginResponse carries the fabricated session user and its token.
type LoginResponse struct {
	User        models.User `json:"user"`
	AccessToken string      `json:"accessToken"`
	TokenType   string      `json:"tokenType"`
	ExpiresIn   int         `json:"expiresIn"`
}

// DemoCredentials are the pre-filled login values for a role.
type DemoCredentials struct {
	Role     models.Role `json:"role"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
}
