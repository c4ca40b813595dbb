package lease

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpirationDate(t *testing.T) {
	burial := date(2020, time.March, 15)

	t.Run("from burial date", func(t *testing.T) {
		assert.Equal(t, date(2025, time.March, 15), ExpirationDate(burial, nil, 5))
	})

	t.Run("renewal rebases the lease", func(t *testing.T) {
		renewed := date(2024, time.July, 1)
		assert.Equal(t, date(2029, time.July, 1), ExpirationDate(burial, &renewed, 5))
	})

	t.Run("leap day rolls forward", func(t *testing.T) {
		assert.Equal(t, date(2025, time.March, 1), ExpirationDate(date(2020, time.February, 29), nil, 5))
	})
}

func TestEvaluate(t *testing.T) {
	now := date(2026, time.October, 19)

	tests := []struct {
		name      string
		expiresAt time.Time
		status    Status
		days      int
	}{
		{"far future", date(2030, time.January, 1), StatusActive, 1170},
		{"just outside the window", now.AddDate(0, 0, 31), StatusActive, 31},
		{"at the window edge", now.AddDate(0, 0, 30), StatusExpiring, 30},
		{"tomorrow", now.AddDate(0, 0, 1), StatusExpiring, 1},
		{"later today", now.Add(6 * time.Hour), StatusExpiring, 0},
		{"exactly now", now, StatusExpired, 0},
		{"yesterday", now.AddDate(0, 0, -1), StatusExpired, -1},
		{"hours ago", now.Add(-2 * time.Hour), StatusExpired, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Evaluate(tt.expiresAt, now, 30)
			assert.Equal(t, tt.status, e.Status)
			assert.Equal(t, tt.days, e.DaysRemaining)
			assert.Equal(t, tt.expiresAt, e.ExpiresAt)
		})
	}
}

func TestEvaluate_ZeroWarnDays(t *testing.T) {
	now := date(2026, time.October, 19)
	assert.Equal(t, StatusActive, Evaluate(now.Add(time.Hour), now, 0).Status)
}
