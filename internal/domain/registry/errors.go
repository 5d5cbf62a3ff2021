package registry

import "errors"

var (
	ErrCenterNotFound     = errors.New("center not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrHouseholdNotFound  = errors.New("household not found")
	ErrIndividualNotFound = errors.New("individual not found")
)
