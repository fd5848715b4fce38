package domain

import (
	"context"
	"fmt"
	"strings"
)

// User represents a user record as served by the backend
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Age       int    `json:"age" validate:"gt=0"`
}

// FullName joins first and last name
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Matches reports whether query is a case-insensitive substring of
// "first last email".
func (u User) Matches(query string) bool {
	haystack := fmt.Sprintf("%s %s %s", u.FirstName, u.LastName, u.Email)
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(query))
}

// UserPage is one page of the remote users collection
type UserPage struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
	Skip  int    `json:"skip"`
	Limit int    `json:"limit"`
}

// Sort order used for every page request
const (
	SortByID  = "id"
	OrderDesc = "desc"
)

// CacheUsers is the key the user snapshot is stored under
const CacheUsers = "users"

// UserCache is the local persisted snapshot of users
type UserCache interface {
	Read(ctx context.Context) ([]User, error)
	Write(ctx context.Context, users []User) error
}

// UserRemote is the backend holding the full users collection
type UserRemote interface {
	ListUsers(ctx context.Context, limit, skip int, sortBy, order string) (*UserPage, error)
	CreateUser(ctx context.Context, user User) (*User, error)
}
