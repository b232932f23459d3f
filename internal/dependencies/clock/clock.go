package clock

import "time"

// Clock provides the current time. Game ids and timestamps are derived
// from it, so tests swap in a mock.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current UTC time at millisecond precision, the precision
// of game ids and of timestamps after a storage round trip
func (c *RealClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
