package domain

import "errors"

var (
	ErrMenuNotFound     = errors.New("menu_not_found")
	ErrForbidden        = errors.New("menu_forbidden")
	ErrInvalidStartDate = errors.New("invalid_start_date")
	ErrTooManyItems     = errors.New("too_many_menu_items")
	ErrInvalidMenuID    = errors.New("invalid_menu_id")
)
