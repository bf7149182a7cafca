package syncer

import "time"

type systemClock struct{}

// Now returns current UTC time.
func (c systemClock) Now() *time.Time {
	now := time.Now().UTC()
	return &now
}
