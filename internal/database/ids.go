package database

import (
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// newID generates a sortable unique identifier for new records
func newID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Now(), entropy).String()
}
