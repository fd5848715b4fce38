package service

import (
	"context"
	"fmt"
	"log"

	"github.com/glebk/userlist-bot/internal/domain"
)

// Mutations applies create, update and delete to both the local cache and
// the in-memory user list
type Mutations struct {
	cache  domain.UserCache
	remote domain.UserRemote
	list   *UserList
}

// NewMutations creates a new Mutations
func NewMutations(cache domain.UserCache, remote domain.UserRemote, list *UserList) *Mutations {
	return &Mutations{
		cache:  cache,
		remote: remote,
		list:   list,
	}
}

// Create posts the user to the backend, then assigns it a local ID and puts
// it in front of the list. The backend response is not used for the ID.
func (m *Mutations) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if err := domain.Validate(user); err != nil {
		return domain.User{}, &domain.MutationError{Op: "create", Err: err}
	}

	if _, err := m.remote.CreateUser(ctx, user); err != nil {
		return domain.User{}, &domain.MutationError{Op: "create", Err: err}
	}

	cached, err := m.cache.Read(ctx)
	if err != nil {
		return domain.User{}, &domain.MutationError{Op: "create", Err: err}
	}

	id, err := nextID(cached, m.list.Total(), m.list.contains)
	if err != nil {
		return domain.User{}, &domain.MutationError{Op: "create", Err: err}
	}
	user.ID = id
	cached = append(cached, user)

	if err := m.cache.Write(ctx, cached); err != nil {
		return domain.User{}, &domain.MutationError{Op: "create", Err: err}
	}

	m.list.prepend(user)
	log.Printf("Created user %d (%s)", user.ID, user.FullName())

	return user, nil
}

// Update rewrites the user in the cache and in the list. A user that is
// listed but was never cached is inserted into the cache.
func (m *Mutations) Update(ctx context.Context, id int64, user domain.User) (domain.User, error) {
	user.ID = id
	if err := domain.Validate(user); err != nil {
		return domain.User{}, &domain.MutationError{Op: "update", ID: id, Err: err}
	}

	cached, err := m.cache.Read(ctx)
	if err != nil {
		return domain.User{}, &domain.MutationError{Op: "update", ID: id, Err: err}
	}

	if i := indexOf(cached, id); i >= 0 {
		cached[i] = user
	} else if m.list.contains(id) {
		// Keep locally created users last so the next ID follows them.
		cached = append([]domain.User{user}, cached...)
	} else {
		return domain.User{}, &domain.MutationError{Op: "update", ID: id, Err: domain.ErrUserNotFound}
	}

	if err := m.cache.Write(ctx, cached); err != nil {
		return domain.User{}, &domain.MutationError{Op: "update", ID: id, Err: err}
	}

	m.list.replace(user)

	return user, nil
}

// Delete removes the user from the cache and the list. Deleting an unknown
// ID is not an error.
func (m *Mutations) Delete(ctx context.Context, id int64) error {
	cached, err := m.cache.Read(ctx)
	if err != nil {
		return &domain.MutationError{Op: "delete", ID: id, Err: err}
	}

	if i := indexOf(cached, id); i >= 0 {
		cached = append(cached[:i], cached[i+1:]...)
		if err := m.cache.Write(ctx, cached); err != nil {
			return &domain.MutationError{Op: "delete", ID: id, Err: err}
		}
	}

	m.list.remove(id)

	return nil
}

// nextID is one more than the last cached user, or total+1 on an empty cache.
// When the last cached user is an edited server record, its successor is
// usually another listed server user, so total+1 is used instead. An ID that
// is still taken is an ErrIDConflict.
func nextID(cached []domain.User, total int, taken func(int64) bool) (int64, error) {
	candidates := []int64{int64(total) + 1}
	if len(cached) > 0 {
		candidates = append([]int64{cached[len(cached)-1].ID + 1}, candidates...)
	}

	for _, id := range candidates {
		if !taken(id) && indexOf(cached, id) < 0 {
			return id, nil
		}
	}
	return 0, fmt.Errorf("%w: %d", domain.ErrIDConflict, candidates[len(candidates)-1])
}
