package model

import "time"

// BurialLease is a burial together with its computed lease state
type BurialLease struct {
	BurialID   int64      `db:"burial_id" json:"burialId"`
	PersonID   int64      `db:"person_id" json:"personId"`
	FirstName  string     `db:"first_name" json:"firstName"`
	LastName   string     `db:"last_name" json:"lastName"`
	PlotID     *int64     `db:"plot_id" json:"plotId,omitempty"`
	PlotNumber *string    `db:"plot_number" json:"plotNumber,omitempty"`
	CemeteryID *int64     `db:"cemetery_id" json:"cemeteryId,omitempty"`
	BurialDate time.Time  `db:"burial_date" json:"burialDate"`
	RenewedAt  *time.Time `db:"renewed_at" json:"renewedAt,omitempty"`
	LeaseYears *int       `db:"lease_years" json:"leaseYears,omitempty"`

	ExpiresAt     time.Time `db:"-" json:"expiresAt"`
	Status        string    `db:"-" json:"status"`
	DaysRemaining int       `db:"-" json:"daysRemaining"`
}

// RenewRequest is the body of POST /api/v1/burials/:id/renew. An empty
// RenewedAt renews as of today.
type RenewRequest struct {
	RenewedAt string `json:"renewedAt" binding:"omitempty,datetime=2006-01-02"`
}

// ExpiringLeasesResponse lists leases ending within a window
type ExpiringLeasesResponse struct {
	WithinDays int           `json:"withinDays"`
	Leases     []BurialLease `json:"leases"`
	Total      int           `json:"total"`
}
