package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glebk/userlist-bot/internal/domain"
)

// CacheRepository implements domain.UserCache as a JSON snapshot stored
// under a single key
type CacheRepository struct {
	db  *Database
	key string
}

// NewCacheRepository creates a new CacheRepository using the "users" key
func NewCacheRepository(db *Database) *CacheRepository {
	return &CacheRepository{db: db, key: domain.CacheUsers}
}

// Read returns the cached users in stored order. A missing snapshot reads as
// empty; a malformed one is a CacheError.
func (r *CacheRepository) Read(ctx context.Context) ([]domain.User, error) {
	query := `SELECT value FROM cache WHERE key = ?`

	var value string
	err := r.db.GetDB().QueryRowContext(ctx, query, r.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return []domain.User{}, nil
	}
	if err != nil {
		return nil, &domain.CacheError{Op: "read", Err: fmt.Errorf("failed to get snapshot: %w", err)}
	}

	users := []domain.User{}
	if err := json.Unmarshal([]byte(value), &users); err != nil {
		return nil, &domain.CacheError{Op: "read", Err: fmt.Errorf("malformed snapshot: %w", err)}
	}

	return users, nil
}

// Write replaces the snapshot with users
func (r *CacheRepository) Write(ctx context.Context, users []domain.User) error {
	if users == nil {
		users = []domain.User{}
	}

	value, err := json.Marshal(users)
	if err != nil {
		return &domain.CacheError{Op: "write", Err: fmt.Errorf("failed to encode snapshot: %w", err)}
	}

	query := `
		INSERT INTO cache (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := r.db.GetDB().ExecContext(ctx, query, r.key, string(value), time.Now()); err != nil {
		return &domain.CacheError{Op: "write", Err: fmt.Errorf("failed to save snapshot: %w", err)}
	}

	return nil
}
