package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bptracker/internal/domain"

	"github.com/lib/pq"
)

// Ensure interfaces are met.
var _ domain.ReadingRepository = (*DB)(nil)

const readingColumns = "id, user_id, systolic, diastolic, pulse, notes, tags, recorded_at, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReading(row rowScanner) (*domain.Reading, error) {
	var (
		r     domain.Reading
		pulse sql.NullInt64
		notes sql.NullString
		tags  pq.StringArray
	)
	if err := row.Scan(&r.ID, &r.UserID, &r.Systolic, &r.Diastolic, &pulse, &notes, &tags, &r.RecordedAt, &r.CreatedAt); err != nil {
		return nil, err
	}
	if pulse.Valid {
		p := int(pulse.Int64)
		r.Pulse = &p
	}
	r.Notes = notes.String
	r.Tags = []string(tags)
	return &r, nil
}

// AddReading inserts a new reading and returns it with the store-assigned
// ID and creation time.
func (d *DB) AddReading(ctx context.Context, userID int64, r domain.NewReading) (*domain.Reading, error) {
	var pulse any
	if r.Pulse != nil {
		pulse = *r.Pulse
	}
	var notes any
	if r.Notes != "" {
		notes = r.Notes
	}

	row := d.sql.QueryRowContext(ctx,
		"INSERT INTO blood_pressure_readings(user_id, systolic, diastolic, pulse, notes, tags, recorded_at) VALUES($1, $2, $3, $4, $5, $6, $7) RETURNING "+readingColumns+";",
		userID, r.Systolic, r.Diastolic, pulse, notes, pq.Array(r.Tags), r.RecordedAt.UTC(),
	)
	return scanReading(row)
}

// GetReading returns a reading by ID, scoped to the owning user, or nil.
func (d *DB) GetReading(ctx context.Context, id, userID int64) (*domain.Reading, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT "+readingColumns+" FROM blood_pressure_readings WHERE id=$1 AND user_id=$2;",
		id, userID,
	)
	reading, err := scanReading(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return reading, err
}

// LatestReading returns the most recently recorded reading, or nil.
func (d *DB) LatestReading(ctx context.Context, userID int64) (*domain.Reading, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT "+readingColumns+" FROM blood_pressure_readings WHERE user_id=$1 ORDER BY recorded_at DESC LIMIT 1;",
		userID,
	)
	reading, err := scanReading(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return reading, err
}

// ListRecentReadings returns the most recent readings up to limit, newest first.
func (d *DB) ListRecentReadings(ctx context.Context, userID int64, limit int) ([]domain.Reading, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+readingColumns+" FROM blood_pressure_readings WHERE user_id=$1 ORDER BY recorded_at DESC LIMIT $2;",
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReadings(rows, limit)
}

// ListReadingsInRange returns readings recorded within [start, end], newest first.
func (d *DB) ListReadingsInRange(ctx context.Context, userID int64, start, end time.Time) ([]domain.Reading, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+readingColumns+" FROM blood_pressure_readings WHERE user_id=$1 AND recorded_at >= $2 AND recorded_at <= $3 ORDER BY recorded_at DESC;",
		userID, start.UTC(), end.UTC(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReadings(rows, 0)
}

// DeleteReading removes a reading owned by the given user and reports whether
// a row was deleted.
func (d *DB) DeleteReading(ctx context.Context, id, userID int64) (bool, error) {
	result, err := d.sql.ExecContext(ctx,
		"DELETE FROM blood_pressure_readings WHERE id=$1 AND user_id=$2;",
		id, userID,
	)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func collectReadings(rows *sql.Rows, capacity int) ([]domain.Reading, error) {
	out := make([]domain.Reading, 0, capacity)
	for rows.Next() {
		reading, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *reading)
	}
	return out, rows.Err()
}
