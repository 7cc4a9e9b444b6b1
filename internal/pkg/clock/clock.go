// Package clock stamps grids and dice sessions with the current time
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/KirkDiggler/rpg-tabletop/internal/pkg/clock Clock

// Clock provides time functionality
type Clock interface {
	Now() time.Time
}

// Real implements Clock using the system time in UTC
type Real struct{}

// Now returns the current time truncated to milliseconds, the precision
// kept by stored grid timestamps
func (c *Real) Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}
