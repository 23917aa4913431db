package util

import (
	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string from the current time and a
// cryptographically secure, monotonic entropy source.
func NewULID() string {
	return ulid.Make().String()
}
