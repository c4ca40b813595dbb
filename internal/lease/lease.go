// Package lease computes burial lease expiry. A lease runs a fixed number of
// years from the burial date, or from the latest renewal once renewed.
package lease

import (
	"math"
	"time"
)

// Status classifies a lease relative to a point in time
type Status string

const (
	StatusActive   Status = "active"
	StatusExpiring Status = "expiring"
	StatusExpired  Status = "expired"
)

// ExpirationDate returns the end of a lease of years starting at the renewal
// date when there is one, otherwise at the burial date
func ExpirationDate(burialDate time.Time, renewedAt *time.Time, years int) time.Time {
	base := burialDate
	if renewedAt != nil {
		base = *renewedAt
	}
	return base.AddDate(years, 0, 0)
}

// Evaluation is the state of one lease at a given time
type Evaluation struct {
	ExpiresAt     time.Time
	Status        Status
	DaysRemaining int
}

// Evaluate classifies a lease ending at expiresAt as seen at now. Leases
// ending within warnDays are expiring; DaysRemaining is floored and goes
// negative once expired.
func Evaluate(expiresAt, now time.Time, warnDays int) Evaluation {
	remaining := expiresAt.Sub(now)

	status := StatusActive
	switch {
	case !expiresAt.After(now):
		status = StatusExpired
	case remaining <= time.Duration(warnDays)*24*time.Hour:
		status = StatusExpiring
	}

	return Evaluation{
		ExpiresAt:     expiresAt,
		Status:        status,
		DaysRemaining: int(math.Floor(remaining.Hours() / 24)),
	}
}
