package utils

import "time"

// Clock returns the current time. Repositories take one so tests can control
// created_at and updated_at.
type Clock func() time.Time

func TimeNowUTC() time.Time {
	return time.Now().UTC()
}
