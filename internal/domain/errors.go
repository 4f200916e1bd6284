// Package domain defines the core benchmark entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrEmptyFortuneMessage is returned when a fortune has no message.
	ErrEmptyFortuneMessage = errors.New("fortune message cannot be empty")
)
