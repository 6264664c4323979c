package domain

import "errors"

var (
	MessageSuccessRegister   = "registration successful"
	MessageSuccessLogin      = "login successful"
	MessageSuccessGetProfile = "success get profile"

	MessageFailedRegister   = "failed to register"
	MessageFailedLogin      = "failed to login"
	MessageFailedGetProfile = "failed to get profile"

	ErrEmailExists        = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password is too weak, please choose a stronger password")
	ErrTooManyAttempts    = errors.New("too many attempts, please try again later")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUserNotFound       = errors.New("user not found")
)

type (
	RegisterRequest struct {
		Email           string `json:"email" validate:"required,email"`
		Password        string `json:"password" validate:"required,min=6"`
		ConfirmPassword string `json:"confirm_password" validate:"required"`
		Role            string `json:"role" validate:"omitempty,oneof=chef recipe_seeker"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	AuthResponse struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
		Role   string `json:"role"`
		Token  string `json:"token"`
	}

	ProfileResponse struct {
		UserID    string  `json:"user_id"`
		Email     string  `json:"email"`
		Role      string  `json:"role"`
		CreatedAt float64 `json:"created_at"`
	}
)
