package models

import "fmt"

// User represents a registered parent account
type User struct {
	ID       int64  `db:"user_id" json:"user_id"`
	Name     string `db:"name" json:"name"`
	Email    string `db:"email" json:"email"`
	Location string `db:"location" json:"location"`
}

// NewUser creates an unsaved user
func NewUser(name, email, location string) *User {
	return &User{Name: name, Email: email, Location: location}
}

func (u User) String() string {
	return fmt.Sprintf("<User user_id=%d name=%s email=%s>", u.ID, u.Name, u.Email)
}
