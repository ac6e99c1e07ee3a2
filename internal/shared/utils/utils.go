package utils

import (
	"github.com/google/uuid"
)

// ParseStringToUUID parses s and returns uuid.Nil on any failure, which
// lets callers treat empty and malformed input the same way.
func ParseStringToUUID(s string) uuid.UUID {
	uid, err := uuid.Parse(s)
	if err != nil || s == "" {
		return uuid.Nil
	}
	return uid
}

// UUIDTokenLength is the length of a canonical UUID string, the stable
// suffix every article slug carries.
const UUIDTokenLength = 36
