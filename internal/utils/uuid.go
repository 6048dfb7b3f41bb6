package utils

import "github.com/google/uuid"

// NewID returns a time-ordered UUIDv7 string. If the v7 source fails it
// falls back to a random v4.
func NewID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}

// IsID reports whether s parses as a UUID of any version.
func IsID(s string) bool {
	return uuid.Validate(s) == nil
}

// UUIDGenerator hands out ids from NewID to components that take an id
// source as a dependency.
type UUIDGenerator struct{}

func NewUUIDGenerator() UUIDGenerator {
	return UUIDGenerator{}
}

func (UUIDGenerator) Generate() string {
	return NewID()
}
