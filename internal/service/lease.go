package service

import (
	"context"
	"fmt"
	"time"

	"cemetery/internal/lease"
	"cemetery/internal/model"

	"go.uber.org/zap"
)

// LeaseRepository is the storage a LeaseService needs
type LeaseRepository interface {
	ListBurialLeases(ctx context.Context, defaultYears int, horizon time.Time, cemeteryID *int64) ([]model.BurialLease, error)
	RenewBurial(ctx context.Context, burialID int64, renewedAt time.Time) (*model.BurialLease, error)
}

// LeaseService reports and renews burial leases
type LeaseService struct {
	repo         LeaseRepository
	defaultYears int
	warnDays     int
	now          func() time.Time
	logger       *zap.Logger
}

// NewLeaseService creates a lease service. defaultYears applies to burials
// without their own lease term; leases ending within warnDays are expiring.
func NewLeaseService(repo LeaseRepository, defaultYears, warnDays int, logger *zap.Logger) *LeaseService {
	return &LeaseService{
		repo:         repo,
		defaultYears: defaultYears,
		warnDays:     warnDays,
		now:          time.Now,
		logger:       logger.Named("lease"),
	}
}

// WarnDays returns the configured warning window
func (s *LeaseService) WarnDays() int {
	return s.warnDays
}

// ListExpiring returns leases that have expired or end within withinDays,
// soonest first
func (s *LeaseService) ListExpiring(ctx context.Context, withinDays int, cemeteryID *int64) ([]model.BurialLease, error) {
	if withinDays < 0 {
		return nil, fmt.Errorf("withinDays must not be negative, got %d", withinDays)
	}

	now := s.now()
	horizon := now.AddDate(0, 0, withinDays)

	leases, err := s.repo.ListBurialLeases(ctx, s.defaultYears, horizon, cemeteryID)
	if err != nil {
		return nil, err
	}

	// the query works on intervals; keep only what the Go date math agrees on
	out := make([]model.BurialLease, 0, len(leases))
	for i := range leases {
		s.evaluate(&leases[i], now)
		if leases[i].ExpiresAt.After(horizon) {
			continue
		}
		out = append(out, leases[i])
	}

	s.logger.Debug("listed expiring leases",
		zap.Int("within_days", withinDays),
		zap.Int("count", len(out)),
	)
	return out, nil
}

// Renew rebases a burial lease on renewedAt, or today when renewedAt is nil
func (s *LeaseService) Renew(ctx context.Context, burialID int64, renewedAt *time.Time) (*model.BurialLease, error) {
	now := s.now()
	at := now
	if renewedAt != nil {
		at = *renewedAt
	}
	at = time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)

	l, err := s.repo.RenewBurial(ctx, burialID, at)
	if err != nil {
		return nil, err
	}
	s.evaluate(l, now)

	s.logger.Info("burial lease renewed",
		zap.Int64("burial_id", burialID),
		zap.Time("expires_at", l.ExpiresAt),
	)
	return l, nil
}

func (s *LeaseService) evaluate(l *model.BurialLease, now time.Time) {
	years := s.defaultYears
	if l.LeaseYears != nil {
		years = *l.LeaseYears
	}

	e := lease.Evaluate(lease.ExpirationDate(l.BurialDate, l.RenewedAt, years), now, s.warnDays)
	l.ExpiresAt = e.ExpiresAt
	l.Status = string(e.Status)
	l.DaysRemaining = e.DaysRemaining
}
