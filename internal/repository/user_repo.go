package repository

import (
	"context"
	"fmt"

	"peersatpark/internal/database"
	"peersatpark/internal/models"
)

const userColumns = `user_id, COALESCE(name, '') AS name, COALESCE(email, '') AS email, COALESCE(location, '') AS location`

// UserRepository handles database operations for users
type UserRepository struct {
	db database.DBTX
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user and sets its ID
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := "INSERT INTO users (name, email, location) VALUES (?, ?, ?)"
	id, err := r.db.InsertReturningID(ctx, query, "user_id", user.Name, user.Email, user.Location)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = id
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	user := &models.User{}
	err := r.db.GetContext(ctx, user, "SELECT "+userColumns+" FROM users WHERE user_id = ?", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	return user, nil
}

// List retrieves all users
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.SelectContext(ctx, &users, "SELECT "+userColumns+" FROM users ORDER BY user_id ASC"); err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	return users, nil
}

// Update writes the user's profile fields
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	query := "UPDATE users SET name = ?, email = ?, location = ? WHERE user_id = ?"
	result, err := r.db.ExecContext(ctx, query, user.Name, user.Email, user.Location, user.ID)
	if err != nil {
		return fmt.Errorf("failed to update user %d: %w", user.ID, err)
	}
	return checkAffected(result, "user", user.ID)
}

// Delete removes a user. Users that still own kids or checkins are not
// cascaded; the store rejects the delete with a ReferentialIntegrityError.
func (r *UserRepository) Delete(ctx context.Context, userID int64) error {
	return deleteByID(ctx, r.db, "users", "user_id", "user", userID)
}
