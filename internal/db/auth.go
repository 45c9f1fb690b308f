package db

import (
	"context"
	"fmt"

	"github.com/staffpoints/backend/internal/model"
)

// LoadUsers returns ErrNotExist for an empty table; the schema itself is
// always present after migration.
func (db *Postgres) LoadUsers(ctx context.Context) ([]model.User, error) {
	query := `
		SELECT username, password_hash, role
		FROM users
		ORDER BY position
	`
	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.Username, &user.PasswordHash, &user.Role); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrNotExist
	}
	return users, nil
}

// SaveUsers replaces the whole table in one transaction, keeping slice order
// in the position column.
func (db *Postgres) SaveUsers(ctx context.Context, users []model.User) error {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}

	for i, user := range users {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO users (username, password_hash, role, position)
			VALUES ($1, $2, $3, $4)
		`, user.Username, user.PasswordHash, string(user.Role), i); err != nil {
			if isUniqueViolation(err) {
				return ErrConflict
			}
			return fmt.Errorf("insert user %q: %w", user.Username, err)
		}
	}

	return tx.Commit()
}
