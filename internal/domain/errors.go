package domain

import "errors"

var (
	ErrSessionNotFound           = errors.New("session not found")
	ErrAutomationNotFound        = errors.New("automation not found")
	ErrNotOccupant               = errors.New("session does not occupy the slot")
	ErrAmbiguousActivationTarget = errors.New("exactly one of session id or automation id must be set")
	ErrInvalidSessionType        = errors.New("invalid session type")
	ErrInvalidTrigger            = errors.New("invalid trigger")
	ErrInvalidPhase              = errors.New("invalid phase")
)
