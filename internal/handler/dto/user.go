// Package dto defines request and response shapes for the HTTP API.
package dto

import (
	"github.com/userhub/userhub/internal/model"
)

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateUserRequest is the body of PUT /users/{id}.
// Absent fields are left unchanged.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// MessageResponse is a simple confirmation payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the error envelope for all failures.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ToUserResponse returns the wire representation of a user. The model
// already carries the JSON shape; the indirection keeps the handler layer
// decoupled from the entity should the two ever diverge.
func ToUserResponse(user *model.User) *model.User {
	return user
}

// ToUserListResponse returns the wire representation of the collection.
// A nil slice serializes as [] rather than null.
func ToUserListResponse(users []model.User) []model.User {
	if users == nil {
		return []model.User{}
	}
	return users
}
