package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/glebk/userlist-bot/internal/domain"
)

type memoryCache struct {
	users    []domain.User
	readErr  error
	writeErr error
	writes   int
}

func (c *memoryCache) Read(ctx context.Context) ([]domain.User, error) {
	if c.readErr != nil {
		return nil, c.readErr
	}
	return append([]domain.User{}, c.users...), nil
}

func (c *memoryCache) Write(ctx context.Context, users []domain.User) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	c.writes++
	c.users = append([]domain.User{}, users...)
	return nil
}

// fakeRemote serves users as an id-descending collection
type fakeRemote struct {
	users     []domain.User
	total     int
	listErr   error
	createErr error
	requests  []int
	created   []domain.User
}

func (r *fakeRemote) ListUsers(ctx context.Context, limit, skip int, sortBy, order string) (*domain.UserPage, error) {
	r.requests = append(r.requests, skip)
	if r.listErr != nil {
		return nil, r.listErr
	}

	page := &domain.UserPage{Total: r.total, Skip: skip, Limit: limit}
	for i := skip; i < skip+limit && i < len(r.users); i++ {
		page.Users = append(page.Users, r.users[i])
	}
	return page, nil
}

func (r *fakeRemote) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.created = append(r.created, user)
	user.ID = 9999
	return &user, nil
}

// remoteUsers returns n users with IDs n..1
func remoteUsers(n int) []domain.User {
	users := make([]domain.User, 0, n)
	for id := n; id >= 1; id-- {
		users = append(users, user(int64(id), fmt.Sprintf("First%d", id), fmt.Sprintf("Last%d", id)))
	}
	return users
}

func user(id int64, first, last string) domain.User {
	return domain.User{
		ID:        id,
		FirstName: first,
		LastName:  last,
		Email:     fmt.Sprintf("user%d@example.com", id),
		Age:       30,
	}
}

var errNetwork = errors.New("connection refused")
