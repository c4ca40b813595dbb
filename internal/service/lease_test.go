package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"cemetery/internal/lease"
	"cemetery/internal/model"
	"cemetery/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLeaseRepo struct {
	leases       []model.BurialLease
	renewed      *model.BurialLease
	err          error
	gotYears     int
	gotHorizon   time.Time
	gotCemetery  *int64
	gotRenewedAt time.Time
}

func (f *fakeLeaseRepo) ListBurialLeases(ctx context.Context, defaultYears int, horizon time.Time, cemeteryID *int64) ([]model.BurialLease, error) {
	f.gotYears, f.gotHorizon, f.gotCemetery = defaultYears, horizon, cemeteryID
	return f.leases, f.err
}

func (f *fakeLeaseRepo) RenewBurial(ctx context.Context, burialID int64, renewedAt time.Time) (*model.BurialLease, error) {
	f.gotRenewedAt = renewedAt
	if f.err != nil {
		return nil, f.err
	}
	f.renewed.RenewedAt = &renewedAt
	return f.renewed, nil
}

func newTestLeaseService(repo LeaseRepository, now time.Time) *LeaseService {
	svc := NewLeaseService(repo, 5, 30, zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc
}

func TestLeaseService_ListExpiring(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	renewed := time.Date(2021, 10, 25, 0, 0, 0, 0, time.UTC)

	repo := &fakeLeaseRepo{leases: []model.BurialLease{
		// expired last year
		{BurialID: 1, BurialDate: time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)},
		// renewed, ends in six days
		{BurialID: 2, BurialDate: time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC), RenewedAt: &renewed},
		// ten year term, not due for years
		{BurialID: 3, BurialDate: time.Date(2021, 10, 20, 0, 0, 0, 0, time.UTC), LeaseYears: model.IntPtr(10)},
	}}
	cemetery := int64(3)

	leases, err := newTestLeaseService(repo, now).ListExpiring(context.Background(), 30, &cemetery)
	require.NoError(t, err)

	assert.Equal(t, 5, repo.gotYears)
	assert.Equal(t, now.AddDate(0, 0, 30), repo.gotHorizon)
	assert.Equal(t, &cemetery, repo.gotCemetery)

	require.Len(t, leases, 2)
	assert.Equal(t, int64(1), leases[0].BurialID)
	assert.Equal(t, string(lease.StatusExpired), leases[0].Status)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), leases[0].ExpiresAt)

	assert.Equal(t, int64(2), leases[1].BurialID)
	assert.Equal(t, string(lease.StatusExpiring), leases[1].Status)
	assert.Equal(t, time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC), leases[1].ExpiresAt)
	assert.Equal(t, 5, leases[1].DaysRemaining)
}

func TestLeaseService_ListExpiring_Errors(t *testing.T) {
	svc := newTestLeaseService(&fakeLeaseRepo{err: errors.New("boom")}, time.Now())

	_, err := svc.ListExpiring(context.Background(), -1, nil)
	assert.Error(t, err)

	_, err = svc.ListExpiring(context.Background(), 30, nil)
	assert.EqualError(t, err, "boom")
}

func TestLeaseService_Renew(t *testing.T) {
	now := time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC)
	repo := &fakeLeaseRepo{renewed: &model.BurialLease{
		BurialID:   10,
		BurialDate: time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC),
	}}
	svc := newTestLeaseService(repo, now)

	t.Run("defaults to today", func(t *testing.T) {
		l, err := svc.Renew(context.Background(), 10, nil)
		require.NoError(t, err)

		today := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, today, repo.gotRenewedAt)
		assert.Equal(t, time.Date(2031, 10, 19, 0, 0, 0, 0, time.UTC), l.ExpiresAt)
		assert.Equal(t, string(lease.StatusActive), l.Status)
	})

	t.Run("explicit date", func(t *testing.T) {
		at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		l, err := svc.Renew(context.Background(), 10, &at)
		require.NoError(t, err)
		assert.Equal(t, at, repo.gotRenewedAt)
		assert.Equal(t, time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC), l.ExpiresAt)
	})

	t.Run("not found", func(t *testing.T) {
		svc := newTestLeaseService(&fakeLeaseRepo{err: repository.ErrNotFound}, now)
		_, err := svc.Renew(context.Background(), 404, nil)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
