// Package system provides the wall clock implementation of clock.Clock.
package system

import (
	"time"

	"github.com/JakeFAU/progress-monitor/internal/clock"
)

// Clock reads time.Now in UTC.
type Clock struct{}

var _ clock.Clock = Clock{}

// New returns a wall clock.
func New() Clock {
	return Clock{}
}

// Now returns the current UTC time.
func (Clock) Now() time.Time {
	return time.Now().UTC()
}
