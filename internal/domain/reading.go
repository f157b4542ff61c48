// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates that the requested reading does not exist or is not
// owned by the caller.
var ErrNotFound = errors.New("reading not found")

// Reading represents one persisted blood-pressure measurement.
type Reading struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	Systolic   int       `json:"systolic"`
	Diastolic  int       `json:"diastolic"`
	Pulse      *int      `json:"pulse"`
	Notes      string    `json:"notes,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewReading holds the caller-supplied fields of a reading about to be
// persisted. ID and CreatedAt are assigned by the store.
type NewReading struct {
	Systolic   int
	Diastolic  int
	Pulse      *int
	Notes      string
	Tags       []string
	RecordedAt time.Time
}

// ReadingRepository is the port for reading persistence. Every operation is
// scoped to the owning user; list results are ordered by recorded time,
// most recent first.
type ReadingRepository interface {
	AddReading(ctx context.Context, userID int64, r NewReading) (*Reading, error)
	GetReading(ctx context.Context, id, userID int64) (*Reading, error)
	LatestReading(ctx context.Context, userID int64) (*Reading, error)
	ListRecentReadings(ctx context.Context, userID int64, limit int) ([]Reading, error)
	ListReadingsInRange(ctx context.Context, userID int64, start, end time.Time) ([]Reading, error)
	DeleteReading(ctx context.Context, id, userID int64) (bool, error)
}

// User represents an account that owns readings.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRepository is the port for user persistence.
type UserRepository interface {
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, username, passwordHash string) (*User, error)
}
