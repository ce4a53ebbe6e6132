package service

import "errors"

var (
	ErrEventNotFound         = errors.New("event not found")
	ErrAssistanceNotFound    = errors.New("registration not found")
	ErrEventAlreadyOccurred  = errors.New("event already occurred")
	ErrAlreadyRegistered     = errors.New("user already registered for this event")
	ErrCapacityExceeded      = errors.New("event is at capacity")
	ErrForbidden             = errors.New("only the registration owner may cancel it")
	ErrCancelledRegistration = errors.New("registration is cancelled")
	ErrInvalidStatus         = errors.New("invalid registration status")
)
