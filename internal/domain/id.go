package domain

import "github.com/google/uuid"

// NewID generates an identifier for a new entity
func NewID() string {
	return uuid.NewString()
}

// IsValidID reports whether s is a well-formed entity identifier
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
