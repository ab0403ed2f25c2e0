package domain

import "errors"

var (
	ErrChefNotFound    = errors.New("chef_not_found")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidSettings = errors.New("invalid_settings")
	ErrInvalidDay      = errors.New("invalid_service_day")
	ErrInvalidLocation = errors.New("invalid_location")
)
