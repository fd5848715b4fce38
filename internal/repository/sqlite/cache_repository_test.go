package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glebk/userlist-bot/internal/domain"
)

func newTestRepo(t *testing.T) *CacheRepository {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCacheRepository(db)
}

func TestReadEmpty(t *testing.T) {
	repo := newTestRepo(t)

	users, err := repo.Read(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NotNil(t, users)
}

func TestWriteRead(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	users := []domain.User{
		{ID: 5, FirstName: "Ali", LastName: "Veli", Email: "ali@example.com", Age: 30},
		{ID: 6, FirstName: "Zeynep", LastName: "Kaya", Email: "zeynep@example.com", Age: 28},
	}

	require.NoError(t, repo.Write(ctx, users))
	got, err := repo.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, users, got)

	require.NoError(t, repo.Write(ctx, users[:1]))
	got, err = repo.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, users[:1], got)
}

func TestWriteReadIsFixedPoint(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Write(ctx, []domain.User{
		{ID: 1, FirstName: "Ali", LastName: "Veli", Email: "ali@example.com", Age: 30},
	}))

	first, err := repo.Read(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Write(ctx, first))
	second, err := repo.Read(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWriteNilReadsEmpty(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Write(ctx, nil))
	users, err := repo.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestReadMalformedSnapshot(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.db.GetDB().Exec(`INSERT INTO cache (key, value) VALUES (?, ?)`, domain.CacheUsers, "{not json")
	require.NoError(t, err)

	_, err = repo.Read(ctx)
	var cerr *domain.CacheError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "read", cerr.Op)
}

func TestSnapshotSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()
	users := []domain.User{{ID: 9, FirstName: "Ali", LastName: "Veli", Email: "ali@example.com", Age: 30}}

	db, err := New(path)
	require.NoError(t, err)
	require.NoError(t, NewCacheRepository(db).Write(ctx, users))
	require.NoError(t, db.Close())

	db, err = New(path)
	require.NoError(t, err)
	defer db.Close()

	got, err := NewCacheRepository(db).Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, users, got)
}
