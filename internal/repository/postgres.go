package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cemetery/internal/geo"
	"cemetery/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when the addressed row does not exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a unique constraint rejects an insert
	ErrDuplicate = errors.New("duplicate record")
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation
const uniqueViolation = "23505"

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return &PostgresRepository{db: db}, nil
}

// NewRepositoryFromDB wraps an existing connection
func NewRepositoryFromDB(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Ping checks the database connection
func (r *PostgresRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// SearchPersons runs a query produced by BuildSearchQuery
func (r *PostgresRepository) SearchPersons(ctx context.Context, q SearchQuery) ([]model.PersonResult, error) {
	persons := []model.PersonResult{}
	if err := r.db.SelectContext(ctx, &persons, q.Text, q.Args...); err != nil {
		return nil, fmt.Errorf("failed to search persons: %w", err)
	}
	return persons, nil
}

// LogSearch records one executed search
func (r *PostgresRepository) LogSearch(ctx context.Context, entry *model.SearchLog) error {
	intent, err := json.Marshal(entry.Intent)
	if err != nil {
		return fmt.Errorf("failed to encode search intent: %w", err)
	}

	query := `
		INSERT INTO search_logs (search_id, query, cemetery_filter, intent, result_count, response_time_ms)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.db.ExecContext(ctx, query,
		entry.SearchID, entry.Query, entry.CemeteryFilter, intent, entry.ResultCount, entry.ResponseTimeMs)
	if err != nil {
		return fmt.Errorf("failed to log search: %w", err)
	}
	return nil
}

// UpdatePlotBoundary stores a plot's boundary and its precomputed center
func (r *PostgresRepository) UpdatePlotBoundary(ctx context.Context, plotID int64, boundary geo.Polygon, center geo.Point) (*model.Plot, error) {
	query := `
		UPDATE plots
		SET boundary = $1, center_lat = $2, center_lng = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id, cemetery_id, plot_number, boundary, center_lat, center_lng, updated_at
	`
	var plot model.Plot
	err := r.db.GetContext(ctx, &plot, query, boundary, center.Lat, center.Lng, plotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("plot %d: %w", plotID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update plot boundary: %w", err)
	}
	return &plot, nil
}

const burialLeaseColumns = `
			b.id AS burial_id, b.person_id, p.first_name, p.last_name,
			b.plot_id, pl.plot_number, pl.cemetery_id,
			b.burial_date, b.renewed_at, b.lease_years`

// ListBurialLeases returns burials whose lease ends on or before horizon.
// defaultYears applies to burials without their own lease term.
func (r *PostgresRepository) ListBurialLeases(ctx context.Context, defaultYears int, horizon time.Time, cemeteryID *int64) ([]model.BurialLease, error) {
	query := `
		SELECT` + burialLeaseColumns + `
		FROM burials b
		JOIN persons p ON p.id = b.person_id
		LEFT JOIN plots pl ON pl.id = b.plot_id
		WHERE b.burial_date IS NOT NULL
			AND COALESCE(b.renewed_at, b.burial_date) + make_interval(years => COALESCE(b.lease_years, $1)) <= $2
			AND ($3::bigint IS NULL OR pl.cemetery_id = $3)
		ORDER BY COALESCE(b.renewed_at, b.burial_date) + make_interval(years => COALESCE(b.lease_years, $1)), b.id
	`
	leases := []model.BurialLease{}
	if err := r.db.SelectContext(ctx, &leases, query, defaultYears, horizon, cemeteryID); err != nil {
		return nil, fmt.Errorf("failed to list burial leases: %w", err)
	}
	return leases, nil
}

// RenewBurial rebases a burial's lease on renewedAt
func (r *PostgresRepository) RenewBurial(ctx context.Context, burialID int64, renewedAt time.Time) (*model.BurialLease, error) {
	query := `
		WITH b AS (
			UPDATE burials SET renewed_at = $1 WHERE id = $2
			RETURNING id, person_id, plot_id, burial_date, renewed_at, lease_years
		)
		SELECT` + burialLeaseColumns + `
		FROM b
		JOIN persons p ON p.id = b.person_id
		LEFT JOIN plots pl ON pl.id = b.plot_id
	`
	var lease model.BurialLease
	if err := r.db.GetContext(ctx, &lease, query, renewedAt, burialID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("burial %d: %w", burialID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to renew burial: %w", err)
	}
	return &lease, nil
}

// CreatePermitSubmission stores a permit and fills in its ID and ReceivedAt
func (r *PostgresRepository) CreatePermitSubmission(ctx context.Context, permit *model.PermitSubmission) error {
	query := `
		INSERT INTO permit_submissions (
			external_id, permit_type, applicant_name, applicant_email,
			deceased_first_name, deceased_last_name, date_of_death,
			cemetery_id, plot_id, notes, submitted_by
		)
		VALUES (
			:external_id, :permit_type, :applicant_name, :applicant_email,
			:deceased_first_name, :deceased_last_name, :date_of_death,
			:cemetery_id, :plot_id, :notes, :submitted_by
		)
		RETURNING id, received_at
	`
	rows, err := r.db.NamedQueryContext(ctx, query, permit)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("permit %s: %w", permit.ExternalID, ErrDuplicate)
		}
		return fmt.Errorf("failed to create permit submission: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to create permit submission: %w", err)
		}
		return fmt.Errorf("failed to create permit submission: no row returned")
	}
	if err := rows.Scan(&permit.ID, &permit.ReceivedAt); err != nil {
		return fmt.Errorf("failed to read permit submission: %w", err)
	}
	return nil
}
