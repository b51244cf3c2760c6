package repository

import (
	"context"
	"testing"

	"clipstream/internal/cache"
	"clipstream/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Create and GetByID", func(t *testing.T) {
		user := &models.User{Username: "alice", Email: "alice@e.com", Password: "hashed"}
		require.NoError(t, repo.Create(ctx, user))
		require.NotZero(t, user.ID)

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("Create duplicate username is a validation error", func(t *testing.T) {
		err := repo.Create(ctx, &models.User{Username: "alice", Email: "other@e.com"})
		require.Error(t, err)

		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("GetByEmail and GetByUsername return nil on miss", func(t *testing.T) {
		got, err := repo.GetByEmail(ctx, "nobody@e.com")
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = repo.GetByUsername(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = repo.GetByEmail(ctx, "alice@e.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("GetByIDWithVideos limits the preload", func(t *testing.T) {
		owner, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			require.NoError(t, db.Create(&models.Video{Title: "v", VodVideoID: "vod", UserID: owner.ID}).Error)
		}

		got, err := repo.GetByIDWithVideos(ctx, owner.ID, 2)
		require.NoError(t, err)
		assert.Len(t, got.Videos, 2)
	})

	t.Run("AdjustSubscribersCount applies deltas", func(t *testing.T) {
		user, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)

		require.NoError(t, repo.AdjustSubscribersCount(ctx, user.ID, 2))
		require.NoError(t, repo.AdjustSubscribersCount(ctx, user.ID, -1))

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.SubscribersCount)
	})

	t.Run("SetSubscribersCount overwrites", func(t *testing.T) {
		user, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)

		require.NoError(t, repo.SetSubscribersCount(ctx, user.ID, 42))

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(42), got.SubscribersCount)
	})

	t.Run("AdjustSubscribersCount on missing user returns not found", func(t *testing.T) {
		err := repo.AdjustSubscribersCount(ctx, 9999, 1)
		require.Error(t, err)

		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("GetByID on missing user returns not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		require.Error(t, err)

		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}

// A user read back through the cache has no password hash and may carry a
// stale subscriber counter. Updating the profile from such a copy must not
// write either column back.
func TestUserRepository_UpdateFromCachedRead(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.InitRedis(mr.Addr())
	defer cache.InitRedis("127.0.0.1:1")

	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "carol", Email: "carol@e.com", Password: "$2a$10$hash"}
	require.NoError(t, repo.Create(ctx, user))

	// Prime the cache, then read through it. The cached copy drops the hash.
	_, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	cached, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, cached.Password)

	// The counter moves after the cached read.
	require.NoError(t, repo.AdjustSubscribersCount(ctx, user.ID, 3))

	cached.Username = "carol2"
	require.NoError(t, repo.Update(ctx, cached))

	var raw models.User
	require.NoError(t, db.First(&raw, user.ID).Error)
	assert.Equal(t, "carol2", raw.Username)
	assert.Equal(t, "$2a$10$hash", raw.Password)
	assert.Equal(t, int64(3), raw.SubscribersCount)
}
