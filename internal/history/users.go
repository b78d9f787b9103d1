// internal/history/users.go
//
// User rows backing the auth layer. Password hashing and token logic
// live with the HTTP server; this file only stores and loads rows.

package history

import (
	"context"
	"database/sql"
	"errors"
)

// ErrUsernameTaken is returned by CreateUser on a duplicate username.
var ErrUsernameTaken = errors.New("history: username taken")

// User matches the users table shape.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    string
}

// CreateUser inserts a new user row. The caller hashes the password.
func (s *Store) CreateUser(ctx context.Context, u User) error {
	var exists int
	_ = s.db.QueryRowContext(ctx,
		`SELECT 1 FROM users WHERE lower(username)=lower(?)`, u.Username).Scan(&exists)
	if exists == 1 {
		return ErrUsernameTaken
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		u.ID, u.Username, u.PasswordHash, now())
	return err
}

// UserByUsername loads a user row by (case-insensitive) username.
func (s *Store) UserByUsername(ctx context.Context, username string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE lower(username)=lower(?)`,
		username)
	return scanUser(row)
}

// UserByID loads a user row by ID.
func (s *Store) UserByID(ctx context.Context, id string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE id=?`, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
