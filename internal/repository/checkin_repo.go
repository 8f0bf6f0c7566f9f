package repository

import (
	"context"
	"fmt"
	"time"

	"peersatpark/internal/database"
	"peersatpark/internal/models"
)

const checkinColumns = `checkin_id, user_id, checkin_date, arrival_time, departure_time, park_id`

// CheckinRepository handles database operations for checkins
type CheckinRepository struct {
	db database.DBTX
}

// NewCheckinRepository creates a new checkin repository
func NewCheckinRepository(db database.DBTX) *CheckinRepository {
	return &CheckinRepository{db: db}
}

// Create inserts the checkin and sets its ID. A departure before the
// arrival is rejected before touching the store.
func (r *CheckinRepository) Create(ctx context.Context, checkin *models.Checkin) error {
	if err := checkin.Validate(); err != nil {
		return err
	}

	checkin.CheckinDate = models.DateOnly(checkin.CheckinDate)
	query := `
		INSERT INTO checkins (user_id, checkin_date, arrival_time, departure_time, park_id)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.InsertReturningID(ctx, query, "checkin_id",
		checkin.UserID, checkin.CheckinDate, checkin.ArrivalTime, checkin.DepartureTime, checkin.ParkID)
	if err != nil {
		return fmt.Errorf("failed to create checkin: %w", err)
	}

	checkin.ID = id
	return nil
}

// GetByID retrieves a checkin by ID
func (r *CheckinRepository) GetByID(ctx context.Context, checkinID int64) (*models.Checkin, error) {
	checkin := &models.Checkin{}
	err := r.db.GetContext(ctx, checkin, "SELECT "+checkinColumns+" FROM checkins WHERE checkin_id = ?", checkinID)
	if err != nil {
		return nil, fmt.Errorf("failed to get checkin %d: %w", checkinID, err)
	}
	return checkin, nil
}

// List retrieves all checkins
func (r *CheckinRepository) List(ctx context.Context) ([]models.Checkin, error) {
	var checkins []models.Checkin
	if err := r.db.SelectContext(ctx, &checkins, "SELECT "+checkinColumns+" FROM checkins ORDER BY checkin_id ASC"); err != nil {
		return nil, fmt.Errorf("failed to query checkins: %w", err)
	}
	return checkins, nil
}

// FindCheckinsByUser retrieves a user's checkins, most recent first
func (r *CheckinRepository) FindCheckinsByUser(ctx context.Context, userID int64) ([]models.Checkin, error) {
	query := `
		SELECT ` + checkinColumns + `
		FROM checkins
		WHERE user_id = ?
		ORDER BY checkin_date DESC, arrival_time DESC, checkin_id DESC
	`
	var checkins []models.Checkin
	if err := r.db.SelectContext(ctx, &checkins, query, userID); err != nil {
		return nil, fmt.Errorf("failed to query checkins for user %d: %w", userID, err)
	}
	return checkins, nil
}

// FindCheckinsByPark retrieves all checkins at a park on a given day
func (r *CheckinRepository) FindCheckinsByPark(ctx context.Context, parkID string, day time.Time) ([]models.Checkin, error) {
	query := `
		SELECT ` + checkinColumns + `
		FROM checkins
		WHERE park_id = ? AND checkin_date = ?
		ORDER BY arrival_time ASC, checkin_id ASC
	`
	var checkins []models.Checkin
	if err := r.db.SelectContext(ctx, &checkins, query, parkID, models.DateOnly(day)); err != nil {
		return nil, fmt.Errorf("failed to query checkins for park %s: %w", parkID, err)
	}
	return checkins, nil
}

// Update writes all checkin fields
func (r *CheckinRepository) Update(ctx context.Context, checkin *models.Checkin) error {
	if err := checkin.Validate(); err != nil {
		return err
	}

	checkin.CheckinDate = models.DateOnly(checkin.CheckinDate)
	query := `
		UPDATE checkins
		SET user_id = ?, checkin_date = ?, arrival_time = ?, departure_time = ?, park_id = ?
		WHERE checkin_id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		checkin.UserID, checkin.CheckinDate, checkin.ArrivalTime, checkin.DepartureTime, checkin.ParkID, checkin.ID)
	if err != nil {
		return fmt.Errorf("failed to update checkin %d: %w", checkin.ID, err)
	}
	return checkAffected(result, "checkin", checkin.ID)
}

// SetDeparture records when the user left the park
func (r *CheckinRepository) SetDeparture(ctx context.Context, checkinID int64, departure models.ClockTime) (*models.Checkin, error) {
	checkin, err := r.GetByID(ctx, checkinID)
	if err != nil {
		return nil, err
	}

	checkin.DepartureTime = &departure
	if err := checkin.Validate(); err != nil {
		return nil, err
	}

	result, err := r.db.ExecContext(ctx, "UPDATE checkins SET departure_time = ? WHERE checkin_id = ?", departure, checkinID)
	if err != nil {
		return nil, fmt.Errorf("failed to set departure for checkin %d: %w", checkinID, err)
	}
	if err := checkAffected(result, "checkin", checkinID); err != nil {
		return nil, err
	}
	return checkin, nil
}

// Delete removes a checkin that no kid_checkin row references
func (r *CheckinRepository) Delete(ctx context.Context, checkinID int64) error {
	return deleteByID(ctx, r.db, "checkins", "checkin_id", "checkin", checkinID)
}
