package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanban_backend/internal/feature/board/domain/entity"
)

// mockColumnStore is a test double for ColumnStore.
type mockColumnStore struct {
	listFn            func(ctx context.Context, userID uint) ([]entity.Column, error)
	createFn          func(ctx context.Context, col *entity.Column) error
	deleteFn          func(ctx context.Context, userID, id uint) error
	listCalls         int
	deleteAllByUserFn func(ctx context.Context, userID uint) error
}

func (m *mockColumnStore) List(ctx context.Context, userID uint) ([]entity.Column, error) {
	m.listCalls++
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return []entity.Column{}, nil
}

func (m *mockColumnStore) FindByID(ctx context.Context, userID, id uint) (*entity.Column, error) {
	return &entity.Column{ID: id, UserID: userID}, nil
}

func (m *mockColumnStore) NextPosition(ctx context.Context, userID uint) (int, error) {
	return 0, nil
}

func (m *mockColumnStore) Create(ctx context.Context, col *entity.Column) error {
	if m.createFn != nil {
		return m.createFn(ctx, col)
	}
	return nil
}

func (m *mockColumnStore) Update(ctx context.Context, col *entity.Column) error {
	return nil
}

func (m *mockColumnStore) Delete(ctx context.Context, userID, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

func (m *mockColumnStore) Reorder(ctx context.Context, userID uint, ids []uint) error {
	return nil
}

func (m *mockColumnStore) DeleteAllByUser(ctx context.Context, userID uint) error {
	if m.deleteAllByUserFn != nil {
		return m.deleteAllByUserFn(ctx, userID)
	}
	return nil
}

var sampleColumns = []entity.Column{
	{ID: 1, UserID: 7, Title: "To Do", Position: 0, CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
}

func TestNewCachingColumnRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{name: "default values when zero/empty", expectedTTL: 5 * time.Minute, expectedNamespace: "columns"},
		{name: "negative ttl uses default", ttl: -time.Minute, expectedTTL: 5 * time.Minute, expectedNamespace: "columns"},
		{name: "custom values preserved", ttl: 10 * time.Minute, namespace: "custom", expectedTTL: 10 * time.Minute, expectedNamespace: "custom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingColumnRepository(nil, tt.ttl, &mockColumnStore{}, tt.namespace)

			assert.Equal(t, tt.expectedTTL, repo.ttl)
			assert.Equal(t, tt.expectedNamespace, repo.namespace)
		})
	}
}

func TestCachingColumnRepository_List_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockColumnStore{listFn: func(ctx context.Context, userID uint) ([]entity.Column, error) {
		return sampleColumns, nil
	}}
	repo := NewCachingColumnRepository(nil, time.Minute, inner, "")

	cols, err := repo.List(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, sampleColumns, cols)
	require.NoError(t, repo.Create(context.Background(), &entity.Column{UserID: 7}), "invalidation is a no-op without redis")
}

func TestCachingColumnRepository_List_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cached, _ := json.Marshal(sampleColumns)
	mock.ExpectGet("columns:7:ver").SetVal("3")
	mock.ExpectGet("columns:7:v3").SetVal(string(cached))

	inner := &mockColumnStore{}
	repo := NewCachingColumnRepository(rdb, 5*time.Minute, inner, "columns")

	cols, err := repo.List(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, 0, inner.listCalls, "inner repository should not be called on cache hit")
	assert.Equal(t, sampleColumns, cols)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingColumnRepository_List_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedJSON, _ := json.Marshal(sampleColumns)
	mock.ExpectGet("columns:7:ver").RedisNil()
	mock.ExpectGet("columns:7:v0").RedisNil()
	mock.ExpectSet("columns:7:v0", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockColumnStore{listFn: func(ctx context.Context, userID uint) ([]entity.Column, error) {
		return sampleColumns, nil
	}}
	repo := NewCachingColumnRepository(rdb, 5*time.Minute, inner, "columns")

	cols, err := repo.List(context.Background(), 7)

	require.NoError(t, err)
	assert.Len(t, cols, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingColumnRepository_List_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedJSON, _ := json.Marshal(sampleColumns)
	mock.ExpectGet("columns:7:ver").SetVal("2")
	mock.ExpectGet("columns:7:v2").SetVal("invalid json")
	mock.ExpectDel("columns:7:v2").SetVal(1)
	mock.ExpectSet("columns:7:v2", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockColumnStore{listFn: func(ctx context.Context, userID uint) ([]entity.Column, error) {
		return sampleColumns, nil
	}}
	repo := NewCachingColumnRepository(rdb, 5*time.Minute, inner, "columns")

	cols, err := repo.List(context.Background(), 7)

	require.NoError(t, err)
	assert.Len(t, cols, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingColumnRepository_List_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("database error")
	mock.ExpectGet("columns:7:ver").RedisNil()
	mock.ExpectGet("columns:7:v0").RedisNil()

	inner := &mockColumnStore{listFn: func(ctx context.Context, userID uint) ([]entity.Column, error) {
		return nil, expectedErr
	}}
	repo := NewCachingColumnRepository(rdb, 5*time.Minute, inner, "columns")

	_, err := repo.List(context.Background(), 7)

	assert.ErrorIs(t, err, expectedErr)
}

func TestCachingColumnRepository_DeleteInvalidates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectIncr("columns:7:ver").SetVal(1)
	mock.ExpectExpire("columns:7:ver", versionTTL).SetVal(true)
	repo := NewCachingColumnRepository(rdb, 5*time.Minute, &mockColumnStore{}, "columns")

	require.NoError(t, repo.Delete(context.Background(), 7, 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingColumnRepository_List_VersionUnavailable(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("columns:7:ver").SetErr(errors.New("connection refused"))
	inner := &mockColumnStore{listFn: func(ctx context.Context, userID uint) ([]entity.Column, error) {
		return sampleColumns, nil
	}}
	repo := NewCachingColumnRepository(rdb, 5*time.Minute, inner, "columns")

	cols, err := repo.List(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, sampleColumns, cols)
	assert.Equal(t, 1, inner.listCalls)
	assert.NoError(t, mock.ExpectationsWereMet(), "nothing is cached without a version")
}

func TestCachingColumnRepository_FailedWriteKeepsCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("insert failed")
	inner := &mockColumnStore{createFn: func(ctx context.Context, col *entity.Column) error { return expectedErr }}
	repo := NewCachingColumnRepository(rdb, 5*time.Minute, inner, "columns")

	err := repo.Create(context.Background(), &entity.Column{UserID: 7})

	assert.ErrorIs(t, err, expectedErr)
	assert.NoError(t, mock.ExpectationsWereMet(), "no DEL expected")
}

// TestCachingColumnRepository_Miniredis runs the decorator against a real Redis protocol server.
func TestCachingColumnRepository_Miniredis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()

	current := []entity.Column{{ID: 1, UserID: 7, Title: "To Do"}}
	inner := &mockColumnStore{listFn: func(ctx context.Context, userID uint) ([]entity.Column, error) {
		return current, nil
	}}
	repo := NewCachingColumnRepository(rdb, time.Minute, inner, "")

	_, err := repo.List(ctx, 7)
	require.NoError(t, err)
	_, err = repo.List(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.listCalls, "second list is served from cache")
	assert.True(t, mr.Exists("columns:7:v0"))

	current = append(current, entity.Column{ID: 2, UserID: 7, Title: "Done", Position: 1})
	require.NoError(t, repo.Create(ctx, &entity.Column{ID: 2, UserID: 7, Title: "Done"}))
	ver, err := mr.Get("columns:7:ver")
	require.NoError(t, err)
	assert.Equal(t, "1", ver)

	cols, err := repo.List(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, cols, 2)
	assert.Equal(t, 2, inner.listCalls)

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("columns:7:v0"), "entry expires with its ttl")
	assert.False(t, mr.Exists("columns:7:v1"), "entry expires with its ttl")

	require.NoError(t, repo.DeleteAllByUser(ctx, 7))
}

func TestCachingColumnRepository_StaleReadDuringWriteIsNotServed(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()

	current := []entity.Column{{ID: 1, UserID: 7, Title: "To Do"}}
	var repo *CachingColumnRepository
	raced := false
	inner := &mockColumnStore{listFn: func(ctx context.Context, userID uint) ([]entity.Column, error) {
		snapshot := append([]entity.Column(nil), current...)
		if !raced {
			// A write commits and invalidates after this read saw the old rows.
			raced = true
			current = append(current, entity.Column{ID: 2, UserID: 7, Title: "Done", Position: 1})
			require.NoError(t, repo.Create(ctx, &entity.Column{ID: 2, UserID: 7}))
		}
		return snapshot, nil
	}}
	repo = NewCachingColumnRepository(rdb, time.Minute, inner, "")

	stale, err := repo.List(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, stale, 1)

	fresh, err := repo.List(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, fresh, 2, "the stale list was written under a superseded version")
	assert.Equal(t, 2, inner.listCalls)
}
