package service

import (
	"time"

	"github.com/google/uuid"
)

// newID returns a random identifier for a new record.
func newID() string {
	return uuid.New().String()
}

// now is the clock the services stamp records with. Stored instants are UTC
// and truncated to microseconds so they survive a storage round trip unchanged.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// locationOrUTC returns loc, or UTC when loc is nil.
func locationOrUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
