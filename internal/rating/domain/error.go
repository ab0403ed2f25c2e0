package domain

import "errors"

var (
	ErrOrderNotDelivered = errors.New("order_not_delivered")
	ErrAlreadyRated      = errors.New("order_already_rated")
	ErrNoValidScores     = errors.New("no_valid_scores")
	ErrInvalidScore      = errors.New("invalid_score")
	ErrCommentTooLong    = errors.New("comment_too_long")
	ErrRecomputeFailed   = errors.New("rating_recompute_failed")
)
