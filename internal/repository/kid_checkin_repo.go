package repository

import (
	"context"
	"fmt"

	"peersatpark/internal/database"
	"peersatpark/internal/models"
)

const kidCheckinColumns = `kid_checkin_id, checkin_id, kid_id`

// KidCheckinRepository handles the kid/checkin association
type KidCheckinRepository struct {
	db database.DBTX
}

// NewKidCheckinRepository creates a new kid checkin repository
func NewKidCheckinRepository(db database.DBTX) *KidCheckinRepository {
	return &KidCheckinRepository{db: db}
}

// Create links a kid to a checkin and sets the association's ID
func (r *KidCheckinRepository) Create(ctx context.Context, kc *models.KidCheckin) error {
	query := "INSERT INTO kid_checkin (checkin_id, kid_id) VALUES (?, ?)"
	id, err := r.db.InsertReturningID(ctx, query, "kid_checkin_id", kc.CheckinID, kc.KidID)
	if err != nil {
		return fmt.Errorf("failed to link kid %d to checkin %d: %w", kc.KidID, kc.CheckinID, err)
	}

	kc.ID = id
	return nil
}

// GetByID retrieves an association by ID
func (r *KidCheckinRepository) GetByID(ctx context.Context, id int64) (*models.KidCheckin, error) {
	kc := &models.KidCheckin{}
	err := r.db.GetContext(ctx, kc, "SELECT "+kidCheckinColumns+" FROM kid_checkin WHERE kid_checkin_id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get kid checkin %d: %w", id, err)
	}
	return kc, nil
}

// List retrieves all associations
func (r *KidCheckinRepository) List(ctx context.Context) ([]models.KidCheckin, error) {
	var links []models.KidCheckin
	if err := r.db.SelectContext(ctx, &links, "SELECT "+kidCheckinColumns+" FROM kid_checkin ORDER BY kid_checkin_id ASC"); err != nil {
		return nil, fmt.Errorf("failed to query kid checkins: %w", err)
	}
	return links, nil
}

// FindByCheckin retrieves the associations of a checkin
func (r *KidCheckinRepository) FindByCheckin(ctx context.Context, checkinID int64) ([]models.KidCheckin, error) {
	var links []models.KidCheckin
	query := "SELECT " + kidCheckinColumns + " FROM kid_checkin WHERE checkin_id = ? ORDER BY kid_checkin_id ASC"
	if err := r.db.SelectContext(ctx, &links, query, checkinID); err != nil {
		return nil, fmt.Errorf("failed to query kid checkins for checkin %d: %w", checkinID, err)
	}
	return links, nil
}

// FindByKid retrieves the associations of a kid
func (r *KidCheckinRepository) FindByKid(ctx context.Context, kidID int64) ([]models.KidCheckin, error) {
	var links []models.KidCheckin
	query := "SELECT " + kidCheckinColumns + " FROM kid_checkin WHERE kid_id = ? ORDER BY kid_checkin_id ASC"
	if err := r.db.SelectContext(ctx, &links, query, kidID); err != nil {
		return nil, fmt.Errorf("failed to query kid checkins for kid %d: %w", kidID, err)
	}
	return links, nil
}

// Delete removes an association
func (r *KidCheckinRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "kid_checkin", "kid_checkin_id", "kid checkin", id)
}
