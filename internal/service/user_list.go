package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/glebk/userlist-bot/internal/domain"
)

// UserList merges the locally cached users with pages fetched from the
// backend into one deduplicated, ordered list
type UserList struct {
	cache    domain.UserCache
	remote   domain.UserRemote
	pageSize int

	mu     sync.Mutex
	users  []domain.User
	offset int
	total  int
	phase  domain.Phase
}

// NewUserList creates a new UserList
func NewUserList(cache domain.UserCache, remote domain.UserRemote, pageSize int) *UserList {
	return &UserList{
		cache:    cache,
		remote:   remote,
		pageSize: pageSize,
		phase:    domain.PhaseIdle,
	}
}

// Initialize seeds the list with the cached users, most recent first, and
// fetches the first page. It does nothing once the list is ready.
func (l *UserList) Initialize(ctx context.Context) error {
	l.mu.Lock()
	switch l.phase {
	case domain.PhaseReady:
		l.mu.Unlock()
		return nil
	case domain.PhaseInitialLoading, domain.PhaseLoadingMore:
		l.mu.Unlock()
		return domain.ErrFetchInFlight
	}

	cached, err := l.cache.Read(ctx)
	if err != nil {
		l.mu.Unlock()
		return fmt.Errorf("failed to read cached users: %w", err)
	}

	seeded := make([]domain.User, 0, len(cached))
	for i := len(cached) - 1; i >= 0; i-- {
		seeded = append(seeded, cached[i])
	}
	l.users = dedupe(nil, seeded)
	l.mu.Unlock()

	return l.FetchPage(ctx, 0, true)
}

// FetchPage requests one page at offset and appends the users not already
// listed. On failure the list is left as it was.
func (l *UserList) FetchPage(ctx context.Context, offset int, initial bool) error {
	ev := domain.EventFetchMore
	if initial {
		ev = domain.EventInitialFetch
	}

	l.mu.Lock()
	next, err := domain.Transition(l.phase, ev)
	if err != nil {
		l.mu.Unlock()
		return err
	}
	l.phase = next
	l.mu.Unlock()

	page, err := l.remote.ListUsers(ctx, l.pageSize, offset, domain.SortByID, domain.OrderDesc)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err != nil {
		l.phase, _ = domain.Transition(l.phase, domain.EventFetchFailed)
		var terr *domain.TransportError
		if !errors.As(err, &terr) {
			err = &domain.TransportError{Op: "list users", Err: err}
		}
		log.Printf("Error fetching users at offset %d: %v", offset, err)
		return err
	}

	l.users = dedupe(l.users, page.Users)
	l.total = page.Total
	l.offset = offset
	l.phase, _ = domain.Transition(l.phase, domain.EventFetchDone)

	return nil
}

// LoadMore fetches the next page. It does nothing when every known user is
// already listed or when a page is still loading.
func (l *UserList) LoadMore(ctx context.Context) error {
	l.mu.Lock()
	if len(l.users) >= l.total || l.phase != domain.PhaseReady {
		l.mu.Unlock()
		return nil
	}
	offset := l.offset + l.pageSize
	l.mu.Unlock()

	err := l.FetchPage(ctx, offset, false)
	if errors.Is(err, domain.ErrFetchInFlight) {
		return nil
	}
	return err
}

// Search returns the listed users whose "first last email" contains query,
// ignoring case
func (l *UserList) Search(query string) []domain.User {
	l.mu.Lock()
	defer l.mu.Unlock()

	var found []domain.User
	for _, u := range l.users {
		if u.Matches(query) {
			found = append(found, u)
		}
	}
	return found
}

// Users returns a copy of the list
func (l *UserList) Users() []domain.User {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]domain.User(nil), l.users...)
}

// Len returns the number of listed users
func (l *UserList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.users)
}

// Total returns the backend-reported user count
func (l *UserList) Total() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// Offset returns the offset of the last page fetched
func (l *UserList) Offset() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.offset
}

// Phase returns the current loading phase
func (l *UserList) Phase() domain.Phase {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.phase
}

// HasMore reports whether the backend holds users not yet listed
func (l *UserList) HasMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.users) < l.total
}

func (l *UserList) contains(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return indexOf(l.users, id) >= 0
}

func (l *UserList) prepend(u domain.User) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := indexOf(l.users, u.ID); i >= 0 {
		l.users = append(l.users[:i], l.users[i+1:]...)
	}
	l.users = append([]domain.User{u}, l.users...)
	l.phase, _ = domain.Transition(l.phase, domain.EventMutated)
}

func (l *UserList) replace(u domain.User) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := indexOf(l.users, u.ID); i >= 0 {
		l.users[i] = u
	}
	l.phase, _ = domain.Transition(l.phase, domain.EventMutated)
}

func (l *UserList) remove(id int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := indexOf(l.users, id); i >= 0 {
		l.users = append(l.users[:i], l.users[i+1:]...)
	}
	l.phase, _ = domain.Transition(l.phase, domain.EventMutated)
}

// dedupe appends to list the users of more whose ID is not present yet
func dedupe(list, more []domain.User) []domain.User {
	seen := make(map[int64]bool, len(list)+len(more))
	for _, u := range list {
		seen[u.ID] = true
	}
	for _, u := range more {
		if seen[u.ID] {
			continue
		}
		seen[u.ID] = true
		list = append(list, u)
	}
	return list
}

func indexOf(users []domain.User, id int64) int {
	for i, u := range users {
		if u.ID == id {
			return i
		}
	}
	return -1
}
