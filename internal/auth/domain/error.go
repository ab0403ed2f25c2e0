package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrInvalidPassword    = errors.New("invalid_password")
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidPhone       = errors.New("invalid_phone")
	ErrInvalidRole        = errors.New("invalid_role")
	ErrInvalidPickupPoint = errors.New("invalid_pickup_point")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrUserExists         = errors.New("user_already_exists")
	ErrAccountSuspended   = errors.New("account_suspended")
	ErrSocialAccount      = errors.New("social_account_without_password")
	ErrInvalidToken       = errors.New("invalid_token")
	ErrTokenExpired       = errors.New("token_expired")
	ErrTooManyAttempts    = errors.New("too_many_attempts")
)
