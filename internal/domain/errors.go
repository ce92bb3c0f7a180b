package domain

import "errors"

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrNoActiveSession  = errors.New("no active session")
	ErrRequestInFlight  = errors.New("prediction request already in flight")
	ErrPredictionFailed = errors.New("prediction failed")
	ErrUnknownTrait     = errors.New("unknown trait")
	ErrTraitOutOfRange  = errors.New("trait value out of range")
)
