// Package dismissal remembers which alert keys a user has hidden.
// A dismissal expires after a TTL, so the same alert can come back later.
package dismissal

import (
	"context"
	"time"
)

// Store keeps dismissed alert keys per user
type Store interface {
	// Dismiss hides key for userID until now+TTL
	Dismiss(ctx context.Context, userID int, key string, now time.Time) error
	// Active returns keys still hidden at now
	Active(ctx context.Context, userID int, now time.Time) (map[string]bool, error)
}
