package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrDepartureBeforeArrival is returned when a checkin would end before it starts
var ErrDepartureBeforeArrival = errors.New("departure time precedes arrival time")

// Checkin represents a visit to a park by a user
type Checkin struct {
	ID            int64      `db:"checkin_id" json:"checkin_id"`
	UserID        int64      `db:"user_id" json:"user_id"`
	CheckinDate   time.Time  `db:"checkin_date" json:"checkin_date"`
	ArrivalTime   ClockTime  `db:"arrival_time" json:"arrival_time"`
	DepartureTime *ClockTime `db:"departure_time" json:"departure_time,omitempty"`
	ParkID        string     `db:"park_id" json:"park_id"`
}

// NewCheckin creates an unsaved, still open checkin
func NewCheckin(userID int64, parkID string, date time.Time, arrival ClockTime) *Checkin {
	return &Checkin{
		UserID:      userID,
		CheckinDate: DateOnly(date),
		ArrivalTime: arrival,
		ParkID:      parkID,
	}
}

// CheckedOut reports whether a departure time has been recorded
func (c *Checkin) CheckedOut() bool {
	return c.DepartureTime != nil
}

// Validate checks that the departure, when present, is not before arrival
func (c *Checkin) Validate() error {
	if c.DepartureTime != nil && c.DepartureTime.Before(c.ArrivalTime) {
		return fmt.Errorf("checkin %d: %w (arrival %s, departure %s)",
			c.ID, ErrDepartureBeforeArrival, c.ArrivalTime, *c.DepartureTime)
	}
	return nil
}

func (c Checkin) String() string {
	departure := "-"
	if c.DepartureTime != nil {
		departure = c.DepartureTime.String()
	}
	return fmt.Sprintf("<Checkin checkin_id=%d checkin_date=%s user_id=%d arrival_time=%s departure_time=%s park_id=%s>",
		c.ID, c.CheckinDate.Format(time.DateOnly), c.UserID, c.ArrivalTime, departure, c.ParkID)
}
