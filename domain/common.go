package domain

import (
	"errors"
	"os"
)

const (
	RoleAdmin        = "admin"
	RoleModerator    = "moderator"
	RoleChef         = "chef"
	RoleRecipeSeeker = "recipe_seeker"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageUserNotAllowed       = "user not allowed"

	JwtSecret = os.Getenv("JWT_SECRET")

	ErrNotAuthenticated = errors.New("please log in first")
	ErrUserNotAllowed   = errors.New("user not allowed")
	ErrTokenNotFound    = errors.New("failed to token not found")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenInvalid     = errors.New("token invalid")
)
