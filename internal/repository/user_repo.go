// This file handles user accounts created at the end of the scan funnel.
package repository

import (
	"context"

	"github.com/dbartell/employarmor-sub001/internal/database"
	"github.com/dbartell/employarmor-sub001/internal/models"
)

// UserRepository handles user account database operations.
type UserRepository struct{}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// Create inserts a new user account.
//
// Side Effects: Populates user.ID and user.CreatedAt with database values
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, name, org_id, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return database.DB.QueryRow(ctx, query,
		user.Email, user.Name, user.OrgID, user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt)
}

// FindByEmail retrieves a user by email address for authentication.
// Returns pgx.ErrNoRows when no account exists.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, name, org_id, password_hash, created_at
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := database.DB.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Name, &user.OrgID,
		&user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &user, nil
}
