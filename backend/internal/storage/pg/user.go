package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desichan/desichan/shared/domain"
	internal_errors "github.com/desichan/desichan/shared/errors"
	sharedpg "github.com/desichan/desichan/shared/storage/pg"
)

const userColumns = "id, username, pass_hash, is_admin, created_at"

// SaveUser inserts a user and returns its id. A taken username is a Conflict.
func (s *Storage) SaveUser(ctx context.Context, user domain.User) (domain.UserId, error) {
	return s.saveUser(ctx, s.db, user)
}

func (s *Storage) User(ctx context.Context, id domain.UserId) (*domain.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

func (s *Storage) UserByName(ctx context.Context, username domain.Username) (*domain.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username))
}

func (s *Storage) SetAdmin(ctx context.Context, username domain.Username, admin bool) error {
	result, err := s.db.ExecContext(ctx, "UPDATE users SET is_admin = $1 WHERE username = $2", admin, username)
	if err != nil {
		return fmt.Errorf("failed to update admin flag: %w", err)
	}
	return expectOneRow(result, "User not found")
}

// DeleteUser removes the account. Authored content keeps the dangling author id and reads back as anonymous.
func (s *Storage) DeleteUser(ctx context.Context, id domain.UserId) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return expectOneRow(result, "User not found")
}

func (s *Storage) saveUser(ctx context.Context, q sharedpg.Querier, user domain.User) (domain.UserId, error) {
	var id int64
	err := q.QueryRowContext(ctx,
		"INSERT INTO users(username, pass_hash, is_admin) VALUES($1, $2, $3) RETURNING id",
		user.Username, user.PassHash, user.Admin).Scan(&id)
	if err != nil {
		if sharedpg.IsUniqueViolation(err) {
			return -1, internal_errors.Conflict("Username already taken")
		}
		return -1, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func (s *Storage) scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.Id, &user.Username, &user.PassHash, &user.Admin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("User not found")
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	user.CreatedAt = user.CreatedAt.UTC()
	return &user, nil
}

func expectOneRow(result sql.Result, notFound string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return internal_errors.NotFound(notFound)
	}
	return nil
}
