package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"peersatpark/internal/database"
	"peersatpark/internal/models"
	"peersatpark/internal/repository"
)

// ErrKidNotOwned is returned when a user checks in a kid that is not theirs
var ErrKidNotOwned = errors.New("kid does not belong to user")

// CheckinService handles park check-in and check-out
type CheckinService struct {
	db *database.DB
}

// NewCheckinService creates a new checkin service
func NewCheckinService(db *database.DB) *CheckinService {
	return &CheckinService{db: db}
}

// CheckInRequest describes a user arriving at a park with some of their kids
type CheckInRequest struct {
	UserID  int64
	ParkID  string
	Date    time.Time
	Arrival models.ClockTime
	KidIDs  []int64
}

// CheckIn records the visit and links each kid to it in one transaction.
// A kid listed more than once is linked once.
func (s *CheckinService) CheckIn(ctx context.Context, req CheckInRequest) (*models.Checkin, error) {
	checkin := models.NewCheckin(req.UserID, req.ParkID, req.Date, req.Arrival)
	req.KidIDs = uniqueIDs(req.KidIDs)

	err := s.db.WithTx(ctx, func(tx *database.Tx) error {
		kids := repository.NewKidRepository(tx)
		for _, kidID := range req.KidIDs {
			kid, err := kids.GetByID(ctx, kidID)
			if err != nil {
				return err
			}
			if kid.UserID != req.UserID {
				return fmt.Errorf("kid %d: %w %d", kidID, ErrKidNotOwned, req.UserID)
			}
		}

		if err := repository.NewCheckinRepository(tx).Create(ctx, checkin); err != nil {
			return err
		}

		links := repository.NewKidCheckinRepository(tx)
		for _, kidID := range req.KidIDs {
			if err := links.Create(ctx, &models.KidCheckin{CheckinID: checkin.ID, KidID: kidID}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check in user %d at park %s: %w", req.UserID, req.ParkID, err)
	}

	log.Printf("User %d checked in at park %s with %d kid(s)", req.UserID, req.ParkID, len(req.KidIDs))
	return checkin, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	return unique
}

// CheckOut records the departure time of a checkin
func (s *CheckinService) CheckOut(ctx context.Context, checkinID int64, departure models.ClockTime) (*models.Checkin, error) {
	checkin, err := repository.NewCheckinRepository(s.db).SetDeparture(ctx, checkinID, departure)
	if err != nil {
		return nil, fmt.Errorf("failed to check out checkin %d: %w", checkinID, err)
	}
	return checkin, nil
}

// Visit is a checkin together with the kids who came along
type Visit struct {
	Checkin models.Checkin
	Kids    []models.Kid
}

// UserVisits lists a user's checkins, most recent first, with their kids
func (s *CheckinService) UserVisits(ctx context.Context, userID int64) ([]Visit, error) {
	var visits []Visit

	err := s.db.WithSession(ctx, func(session *database.Session) error {
		checkins, err := repository.NewCheckinRepository(session).FindCheckinsByUser(ctx, userID)
		if err != nil {
			return err
		}

		kids := repository.NewKidRepository(session)
		for _, checkin := range checkins {
			present, err := kids.FindKidsByCheckin(ctx, checkin.ID)
			if err != nil {
				return err
			}
			visits = append(visits, Visit{Checkin: checkin, Kids: present})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list visits for user %d: %w", userID, err)
	}

	return visits, nil
}

// Peer is a kid checked in at a park. Age is nil when the kid has no
// date of birth on record.
type Peer struct {
	Kid       models.Kid
	Age       *int
	CheckinID int64
	Arrival   models.ClockTime
	Departure *models.ClockTime
}

// KidsAtPark lists the kids checked in at a park on a day, with their age
// as of today.
func (s *CheckinService) KidsAtPark(ctx context.Context, parkID string, day, today time.Time) ([]Peer, error) {
	var peers []Peer

	err := s.db.WithSession(ctx, func(session *database.Session) error {
		checkins, err := repository.NewCheckinRepository(session).FindCheckinsByPark(ctx, parkID, day)
		if err != nil {
			return err
		}

		kids := repository.NewKidRepository(session)
		for _, checkin := range checkins {
			present, err := kids.FindKidsByCheckin(ctx, checkin.ID)
			if err != nil {
				return err
			}

			for _, kid := range present {
				peer := Peer{
					Kid:       kid,
					CheckinID: checkin.ID,
					Arrival:   checkin.ArrivalTime,
					Departure: checkin.DepartureTime,
				}

				age, err := kid.AgeAt(today)
				var missing *models.MissingFieldError
				switch {
				case err == nil:
					peer.Age = &age
				case !errors.As(err, &missing):
					return err
				}

				peers = append(peers, peer)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list kids at park %s: %w", parkID, err)
	}

	return peers, nil
}
