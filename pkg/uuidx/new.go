package uuidx

import "github.com/google/uuid"

// New returns a version 7 UUID. Version 7 ids sort by creation time, so
// subscription ids handed out by one process are ordered.
func New() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

// NewString returns New formatted as a string.
func NewString() string {
	return New().String()
}
