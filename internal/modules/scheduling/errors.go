package scheduling

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrInvalidTimeRange  = errors.New("invalid time range")
	ErrInvalidDuration   = errors.New("invalid service duration")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotFound          = errors.New("appointment not found")
	ErrSlotTaken         = errors.New("time slot already booked")
)
