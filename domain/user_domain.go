package domain

import (
	"errors"
)

var (
	MessageSuccessLogin = "login successful"
	MessageSuccessMe    = "user retrieved successfully"
	MessageFailedLogin  = "failed to login"
	MessageFailedGetMe  = "failed to retrieve user"

	ErrCredentialsInvalid = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Email string `json:"email"`
		Name  string `json:"name"`
		Role  string `json:"role"`
	}

	MeResponse struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
		Role  string `json:"role"`
	}
)
