package repository

import (
	"context"
	"testing"

	"clipstream/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	viewer := &models.User{Username: "viewer", Email: "viewer@e.com"}
	ch1 := &models.User{Username: "channel1", Email: "ch1@e.com"}
	ch2 := &models.User{Username: "channel2", Email: "ch2@e.com"}
	require.NoError(t, db.Create(viewer).Error)
	require.NoError(t, db.Create(ch1).Error)
	require.NoError(t, db.Create(ch2).Error)

	t.Run("CreateIfAbsent reports creation once", func(t *testing.T) {
		created, err := repo.CreateIfAbsent(ctx, viewer.ID, ch1.ID)
		require.NoError(t, err)
		assert.True(t, created)

		created, err = repo.CreateIfAbsent(ctx, viewer.ID, ch1.ID)
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("Exists", func(t *testing.T) {
		ok, err := repo.Exists(ctx, viewer.ID, ch1.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.Exists(ctx, viewer.ID, ch2.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("GetChannelIDs and GetSubscribedChannelIDs", func(t *testing.T) {
		_, err := repo.CreateIfAbsent(ctx, viewer.ID, ch2.ID)
		require.NoError(t, err)

		ids, err := repo.GetChannelIDs(ctx, viewer.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []uint{ch1.ID, ch2.ID}, ids)

		subset, err := repo.GetSubscribedChannelIDs(ctx, viewer.ID, []uint{ch1.ID, 999})
		require.NoError(t, err)
		assert.Equal(t, []uint{ch1.ID}, subset)
	})

	t.Run("GetBySubscriber preloads channels", func(t *testing.T) {
		subs, err := repo.GetBySubscriber(ctx, viewer.ID, 10, 0)
		require.NoError(t, err)
		require.Len(t, subs, 2)
		assert.NotZero(t, subs[0].Channel.ID)
	})

	t.Run("CountForChannel", func(t *testing.T) {
		count, err := repo.CountForChannel(ctx, ch1.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Remove reports whether a row was removed", func(t *testing.T) {
		removed, err := repo.Remove(ctx, viewer.ID, ch1.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = repo.Remove(ctx, viewer.ID, ch1.ID)
		require.NoError(t, err)
		assert.False(t, removed)

		count, err := repo.CountForChannel(ctx, ch1.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}
