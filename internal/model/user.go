// Package model defines domain entities for the application.
package model

import "time"

// User represents a user record. ID and CreatedAt are assigned by the
// database on insert and never change afterwards.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserUpdate carries the optional fields of a partial update.
// A nil field means "leave unchanged".
type UserUpdate struct {
	Name  *string
	Email *string
}

// IsEmpty returns true if no field is set.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil
}
