package repository

import (
	"context"
	"fmt"

	"peersatpark/internal/database"
	"peersatpark/internal/models"
)

const kidColumns = `kids.kid_id AS kid_id, kids.user_id AS user_id, COALESCE(kids.name, '') AS name, kids.date_of_birth AS date_of_birth, COALESCE(kids.gender, '') AS gender`

// KidRepository handles database operations for kids
type KidRepository struct {
	db database.DBTX
}

// NewKidRepository creates a new kid repository
func NewKidRepository(db database.DBTX) *KidRepository {
	return &KidRepository{db: db}
}

// Create inserts the kid and sets its ID. The owning user must exist.
func (r *KidRepository) Create(ctx context.Context, kid *models.Kid) error {
	query := "INSERT INTO kids (name, date_of_birth, gender, user_id) VALUES (?, ?, ?, ?)"
	id, err := r.db.InsertReturningID(ctx, query, "kid_id", kid.Name, kid.DateOfBirth, kid.Gender, kid.UserID)
	if err != nil {
		return fmt.Errorf("failed to create kid: %w", err)
	}

	kid.ID = id
	return nil
}

// GetByID retrieves a kid by ID
func (r *KidRepository) GetByID(ctx context.Context, kidID int64) (*models.Kid, error) {
	kid := &models.Kid{}
	err := r.db.GetContext(ctx, kid, "SELECT "+kidColumns+" FROM kids WHERE kids.kid_id = ?", kidID)
	if err != nil {
		return nil, fmt.Errorf("failed to get kid %d: %w", kidID, err)
	}
	return kid, nil
}

// List retrieves all kids
func (r *KidRepository) List(ctx context.Context) ([]models.Kid, error) {
	var kids []models.Kid
	if err := r.db.SelectContext(ctx, &kids, "SELECT "+kidColumns+" FROM kids ORDER BY kids.kid_id ASC"); err != nil {
		return nil, fmt.Errorf("failed to query kids: %w", err)
	}
	return kids, nil
}

// FindKidsByUser retrieves all kids owned by a user
func (r *KidRepository) FindKidsByUser(ctx context.Context, userID int64) ([]models.Kid, error) {
	query := `
		SELECT ` + kidColumns + `
		FROM kids
		WHERE kids.user_id = ?
		ORDER BY kids.kid_id ASC
	`
	var kids []models.Kid
	if err := r.db.SelectContext(ctx, &kids, query, userID); err != nil {
		return nil, fmt.Errorf("failed to query kids for user %d: %w", userID, err)
	}
	return kids, nil
}

// FindKidsByCheckin retrieves the kids present during a checkin
func (r *KidRepository) FindKidsByCheckin(ctx context.Context, checkinID int64) ([]models.Kid, error) {
	query := `
		SELECT ` + kidColumns + `
		FROM kids
		JOIN kid_checkin ON kid_checkin.kid_id = kids.kid_id
		WHERE kid_checkin.checkin_id = ?
		ORDER BY kids.kid_id ASC
	`
	var kids []models.Kid
	if err := r.db.SelectContext(ctx, &kids, query, checkinID); err != nil {
		return nil, fmt.Errorf("failed to query kids for checkin %d: %w", checkinID, err)
	}
	return kids, nil
}

// Update writes the kid's fields, including a change of owner
func (r *KidRepository) Update(ctx context.Context, kid *models.Kid) error {
	query := "UPDATE kids SET name = ?, date_of_birth = ?, gender = ?, user_id = ? WHERE kid_id = ?"
	result, err := r.db.ExecContext(ctx, query, kid.Name, kid.DateOfBirth, kid.Gender, kid.UserID, kid.ID)
	if err != nil {
		return fmt.Errorf("failed to update kid %d: %w", kid.ID, err)
	}
	return checkAffected(result, "kid", kid.ID)
}

// Delete removes a kid that no checkin references
func (r *KidRepository) Delete(ctx context.Context, kidID int64) error {
	return deleteByID(ctx, r.db, "kids", "kid_id", "kid", kidID)
}
