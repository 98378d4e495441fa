package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kanban_backend/internal/feature/auth/domain/entity"
	"kanban_backend/internal/feature/auth/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&entity.User{}), "failed to migrate table")
	return db
}

func TestUserGorm_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("successful user creation", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		user := &entity.User{Email: "test@example.com", Password: "hashed_password", FullName: "Test"}

		err := repo.Create(ctx, user)

		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.False(t, user.CreatedAt.IsZero())
		assert.False(t, user.UpdatedAt.IsZero())
	})

	t.Run("duplicate email error", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		require.NoError(t, repo.Create(ctx, &entity.User{Email: "dup@example.com", Password: "p1"}))

		err := repo.Create(ctx, &entity.User{Email: "dup@example.com", Password: "p2"})

		assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists)
	})

	t.Run("nil user error", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))

		assert.Error(t, repo.Create(ctx, nil))
	})
}

func TestUserGorm_FindByEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))
	users := []*entity.User{
		{Email: "user1@example.com", Password: "pass1"},
		{Email: "user2@example.com", Password: "pass2", ProfilePicture: "/uploads/u2.png"},
		{Email: "user3@example.com", Password: "pass3"},
	}
	for _, u := range users {
		require.NoError(t, repo.Create(ctx, u))
	}

	found, err := repo.FindByEmail(ctx, "user2@example.com")
	require.NoError(t, err)
	assert.Equal(t, users[1].ID, found.ID)
	assert.Equal(t, "pass2", found.Password)
	assert.Equal(t, "/uploads/u2.png", found.ProfilePicture)

	found, err = repo.FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	assert.Nil(t, found)
}

func TestUserGorm_FindByID(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))
	user := &entity.User{Email: "byid@example.com", Password: "pw"}
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)
	assert.Equal(t, user.CreatedAt.Unix(), found.CreatedAt.Unix())

	for _, id := range []uint{0, 999} {
		found, err := repo.FindByID(ctx, id)
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
		assert.Nil(t, found)
	}
}

func TestUserGorm_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))
	user := &entity.User{Email: "upd@example.com", Password: "pw"}
	require.NoError(t, repo.Create(ctx, user))
	createdAt := user.UpdatedAt

	time.Sleep(5 * time.Millisecond)
	user.FullName = "Renamed"
	user.ProfilePicture = "/uploads/new.png"
	require.NoError(t, repo.Update(ctx, user))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", found.FullName)
	assert.Equal(t, "/uploads/new.png", found.ProfilePicture)
	assert.True(t, found.UpdatedAt.After(createdAt))
}

func TestUserGorm_Update_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))
	a := &entity.User{Email: "a@example.com", Password: "pw"}
	b := &entity.User{Email: "b@example.com", Password: "pw"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	b.Email = "a@example.com"

	assert.ErrorIs(t, repo.Update(ctx, b), usecase.ErrEmailAlreadyExists)
}

func TestUserGorm_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))
	user := &entity.User{Email: "del@example.com", Password: "pw"}
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err := repo.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, user.ID), usecase.ErrUserNotFound)
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, isDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateKey(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isDuplicateKey(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isDuplicateKey(errors.New("boom")))
}
