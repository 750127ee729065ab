package provider

import "errors"

var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("provider profile not found")
	ErrWrongStep        = errors.New("onboarding step not reached")
	ErrAlreadySubmitted = errors.New("profile already submitted")
	ErrNotPending       = errors.New("profile is not awaiting review")
)
