package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vsynytsia/clothing-shop/internal/domain"
)

func (r *Repository) InsertUser(ctx context.Context, user *domain.User) (int64, error) {
	query := `INSERT INTO users (first_name, last_name, phone_number, email, password_hash, role_id)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	roleID := user.RoleID
	if roleID == 0 {
		roleID = domain.RoleCustomer
	}

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		user.FirstName,
		user.LastName,
		user.PhoneNumber,
		user.Email,
		user.PasswordHash,
		roleID,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateUser
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

// GetUserByEmailAndHash is the sign-in lookup: both credentials must match.
func (r *Repository) GetUserByEmailAndHash(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	query := `SELECT id, first_name, last_name, phone_number, email, password_hash, role_id
	          FROM users WHERE email = $1 AND password_hash = $2`

	var user domain.User
	err := r.db.QueryRowContext(ctx, query, email, passwordHash).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.PhoneNumber,
		&user.Email,
		&user.PasswordHash,
		&user.RoleID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user by credentials: %w", err)
	}
	return &user, nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT id, first_name, last_name, phone_number, email, password_hash, role_id
	          FROM users ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.FirstName,
			&user.LastName,
			&user.PhoneNumber,
			&user.Email,
			&user.PasswordHash,
			&user.RoleID,
		); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return users, nil
}

func (r *Repository) UpdateUserRole(ctx context.Context, userID int64, role domain.Role) error {
	query := `UPDATE users SET role_id = $1 WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, role, userID)
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *Repository) DeleteUser(ctx context.Context, userID int64) error {
	query := `DELETE FROM users WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
