// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"bptracker/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu       sync.Mutex
	readings []domain.Reading
	users    []*domain.User

	readingIDCounter int64
	userIDCounter    int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ domain.ReadingRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)

// --- ReadingRepository ---

// AddReading stores a new reading, assigning its ID and creation time.
func (db *DB) AddReading(ctx context.Context, userID int64, r domain.NewReading) (*domain.Reading, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.readingIDCounter++
	reading := domain.Reading{
		ID:         db.readingIDCounter,
		UserID:     userID,
		Systolic:   r.Systolic,
		Diastolic:  r.Diastolic,
		Pulse:      r.Pulse,
		Notes:      r.Notes,
		Tags:       append([]string(nil), r.Tags...),
		RecordedAt: r.RecordedAt.UTC(),
		CreatedAt:  time.Now().UTC(),
	}
	db.readings = append(db.readings, reading)
	return copyReading(reading), nil
}

// GetReading returns a reading by ID, scoped to the owning user.
func (db *DB) GetReading(ctx context.Context, id, userID int64) (*domain.Reading, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, r := range db.readings {
		if r.ID == id && r.UserID == userID {
			return copyReading(r), nil
		}
	}
	return nil, nil
}

// LatestReading returns the most recently recorded reading, or nil.
func (db *DB) LatestReading(ctx context.Context, userID int64) (*domain.Reading, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var latest *domain.Reading
	for i := range db.readings {
		r := &db.readings[i]
		if r.UserID != userID {
			continue
		}
		if latest == nil || r.RecordedAt.After(latest.RecordedAt) {
			latest = r
		}
	}
	if latest == nil {
		return nil, nil
	}
	return copyReading(*latest), nil
}

// ListRecentReadings lists the most recent readings up to limit, newest first.
func (db *DB) ListRecentReadings(ctx context.Context, userID int64, limit int) ([]domain.Reading, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := db.sortedUserReadings(userID)
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ListReadingsInRange returns readings recorded within [start, end], newest first.
func (db *DB) ListReadingsInRange(ctx context.Context, userID int64, start, end time.Time) ([]domain.Reading, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return domain.FilterByDateRange(db.sortedUserReadings(userID), start, end), nil
}

// DeleteReading removes a reading owned by the given user. A reading owned by
// another user is left untouched and reported as not found.
func (db *DB) DeleteReading(ctx context.Context, id, userID int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, r := range db.readings {
		if r.ID == id && r.UserID == userID {
			db.readings = append(db.readings[:i], db.readings[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// sortedUserReadings copies the user's readings sorted newest first.
// Callers must hold db.mu.
func (db *DB) sortedUserReadings(userID int64) []domain.Reading {
	result := make([]domain.Reading, 0, len(db.readings))
	for _, r := range db.readings {
		if r.UserID == userID {
			result = append(result, *copyReading(r))
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].RecordedAt.After(result[j].RecordedAt)
	})
	return result
}

func copyReading(r domain.Reading) *domain.Reading {
	out := r
	out.Tags = append([]string(nil), r.Tags...)
	if r.Pulse != nil {
		p := *r.Pulse
		out.Pulse = &p
	}
	return &out
}

// --- UserRepository ---

// GetUserByUsername retrieves a user by username, or nil when absent.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// CreateUser creates a new user.
func (db *DB) CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, errors.New("user already exists")
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}
