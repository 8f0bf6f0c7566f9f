package models

import (
	"fmt"
	"time"
)

// Kid represents a child belonging to exactly one user
type Kid struct {
	ID          int64      `db:"kid_id" json:"kid_id"`
	UserID      int64      `db:"user_id" json:"user_id"`
	Name        string     `db:"name" json:"name"`
	DateOfBirth *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Gender      string     `db:"gender" json:"gender"`
}

// NewKid creates an unsaved kid for the given user. A zero dateOfBirth
// leaves the date of birth unset.
func NewKid(userID int64, name string, dateOfBirth time.Time, gender string) *Kid {
	kid := &Kid{UserID: userID, Name: name, Gender: gender}
	if !dateOfBirth.IsZero() {
		kid.SetDateOfBirth(dateOfBirth)
	}
	return kid
}

// SetDateOfBirth stores the calendar date of t, dropping the time of day
func (k *Kid) SetDateOfBirth(t time.Time) {
	dob := DateOnly(t)
	k.DateOfBirth = &dob
}

// Age returns the kid's age in whole years as of today
func (k *Kid) Age() (int, error) {
	return k.AgeAt(time.Now())
}

// AgeAt returns the kid's age in whole years on the given day. The new age
// applies from the birthday itself. A date of birth in the future yields a
// negative age.
func (k *Kid) AgeAt(today time.Time) (int, error) {
	if k.DateOfBirth == nil {
		return 0, &MissingFieldError{Record: "kid", Field: "date_of_birth", ID: k.ID}
	}

	dob := *k.DateOfBirth
	age := today.Year() - dob.Year()

	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}

	return age, nil
}

func (k Kid) String() string {
	return fmt.Sprintf("<Kid kid_id=%d name=%s>", k.ID, k.Name)
}

// DateOnly truncates t to midnight UTC of its calendar date
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
