package util

import "github.com/google/uuid"

// NewID returns a unique string identifier for a new entity.
func NewID() string {
	return uuid.NewString()
}
