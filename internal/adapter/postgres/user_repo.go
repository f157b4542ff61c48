package postgres

import (
	"context"
	"database/sql"
	"errors"

	"bptracker/internal/domain"
)

var _ domain.UserRepository = (*DB)(nil)

// GetUserByUsername retrieves a user by username, or nil when absent.
func (d *DB) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE username=$1;",
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user and returns it with the assigned ID.
func (d *DB) CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	var u domain.User
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO users(username, password_hash) VALUES($1, $2) RETURNING id, username, password_hash, created_at;",
		username, passwordHash,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
