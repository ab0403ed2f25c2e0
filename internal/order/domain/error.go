package domain

import "errors"

var (
	ErrOrderNotFound     = errors.New("order_not_found")
	ErrForbidden         = errors.New("order_forbidden")
	ErrInvalidStatus     = errors.New("invalid_order_status")
	ErrInvalidTransition = errors.New("invalid_order_transition")
	ErrInvalidMoment     = errors.New("invalid_moment")
	ErrInvalidDate       = errors.New("invalid_date")
	ErrInvalidID         = errors.New("invalid_id")
)
