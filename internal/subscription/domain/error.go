package domain

import "errors"

var (
	ErrSubscriptionNotFound = errors.New("subscription_not_found")
	ErrForbidden            = errors.New("subscription_forbidden")
	ErrAlreadyActive        = errors.New("subscription_already_active")
	ErrInvalidState         = errors.New("subscription_invalid_state")
	ErrInvalidFormule       = errors.New("invalid_formule")
	ErrInvalidAction        = errors.New("invalid_action")
	ErrInvalidPrice         = errors.New("invalid_price")
	ErrMenuInactive         = errors.New("menu_inactive")
	ErrChefUnavailable      = errors.New("chef_unavailable")
	ErrActivationInProgress = errors.New("activation_in_progress")
)
