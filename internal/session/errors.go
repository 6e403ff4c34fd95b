package session

import "errors"

var (
	ErrBookingNotOpen              = errors.New("no booking wizard is open")
	ErrInvalidTransition           = errors.New("invalid booking wizard transition")
	ErrConsultationKindUnsupported = errors.New("consultation kind not supported")
	ErrExpertOffline               = errors.New("expert is offline")
	ErrScheduleIncomplete          = errors.New("booking date and time are required")
	ErrSlotUnavailable             = errors.New("booking date or time is not offered")
	ErrInvalidTab                  = errors.New("invalid tab")
	ErrInvalidRole                 = errors.New("invalid role")
)
