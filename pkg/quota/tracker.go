// Package quota limits remote generator calls to a fixed number per UTC day.
package quota

import (
	"context"
	"time"
)

// State is a snapshot of the daily budget.
type State struct {
	Used     int       `json:"used"`
	Capacity int       `json:"capacity"`
	ResetAt  time.Time `json:"reset_at"`
}

// Tracker grants at most Capacity units per UTC day.
type Tracker interface {
	// TryConsume atomically checks the budget and takes one unit.
	TryConsume(ctx context.Context) bool
	State(ctx context.Context) (State, error)
}

// Clock returns the current time; injected so tests can move it.
type Clock func() time.Time

// NextReset is the first UTC midnight strictly after t.
func NextReset(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day()+1, 0, 0, 0, 0, time.UTC)
}
