package sqlite

import (
	"context"
	"database/sql"

	"github.com/caterdir/caterdir-server/internal/domain"
	"github.com/caterdir/caterdir-server/internal/errors"
)

// CreateUser inserts a new API account and assigns its generated ID.
// Returns errors.ErrDuplicate on a taken username.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash, created_at)
		VALUES (?, ?, ?)`,
		u.Username,
		u.PasswordHash,
		formatTime(u.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.ErrDuplicate.WithCause(err)
		}
		return wrapDB("create user", err)
	}

	u.ID, err = res.LastInsertId()
	if err != nil {
		return wrapDB("create user", err)
	}
	return nil
}

// GetUserByUsername retrieves an account by exact username.
// Returns errors.ErrNotFound if no such account exists.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at
		FROM users WHERE username = ?`, username)

	var u domain.User
	var createdAt string
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &createdAt)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, wrapDB("get user", err)
	}

	u.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, wrapDB("get user", err)
	}
	return &u, nil
}

// CountUsers returns the total number of accounts.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, wrapDB("count users", err)
	}
	return n, nil
}
