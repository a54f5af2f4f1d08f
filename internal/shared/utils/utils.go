package utils

import (
	"github.com/google/uuid"
)

// NewID returns a time-ordered UUIDv7.
func NewID() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

// IsUUIDv7 reports whether s is a well-formed RFC 9562 version 7 UUID.
func IsUUIDv7(s string) bool {
	if len(s) != 36 {
		return false
	}
	uid, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return uid.Version() == 7 && uid.Variant() == uuid.RFC4122
}

func StringPtr(s string) *string {
	return &s
}
