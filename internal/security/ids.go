package security

import "github.com/google/uuid"

// NewID returns a random UUID string for accounts, rooms and doubts
func NewID() string {
	return uuid.New().String()
}
