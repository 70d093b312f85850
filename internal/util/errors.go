package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNotEnrolled        = errors.New("student not enrolled in class")
	ErrAlreadyEnrolled    = errors.New("student already enrolled in class")
	ErrUnknownType        = errors.New("unknown evaluation type")
	ErrAttemptsExhausted  = errors.New("attempts exhausted")
	ErrNotYetOpen         = errors.New("evaluation not yet open")
	ErrExpired            = errors.New("evaluation window expired")
	ErrReviewConflict     = errors.New("response was reviewed concurrently")
	ErrResponseNotFound   = errors.New("response not found")
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrEvaluationNotFound = errors.New("evaluation not found")
)
