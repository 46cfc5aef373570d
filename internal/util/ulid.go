package util

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string using crypto/rand entropy. Used for
// correlating an orchestration call's log lines and attempt records.
func NewULID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
