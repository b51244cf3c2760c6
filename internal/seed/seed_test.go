package seed

import (
	"testing"

	"clipstream/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if migrateErr := db.AutoMigrate(
		&models.User{},
		&models.Video{},
		&models.Reaction{},
		&models.Subscription{},
		&models.Comment{},
	); migrateErr != nil {
		t.Fatalf("migrate: %v", migrateErr)
	}
	return db
}

func TestSeed_CountersMatchRows(t *testing.T) {
	db := openSeedTestDB(t)

	opts := Options{NumUsers: 6, NumVideos: 10, SkipBcrypt: true}
	if err := Seed(db, opts); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var videos []models.Video
	if err := db.Find(&videos).Error; err != nil {
		t.Fatalf("load videos: %v", err)
	}
	if len(videos) != opts.NumVideos {
		t.Fatalf("expected %d videos, got %d", opts.NumVideos, len(videos))
	}

	for _, v := range videos {
		var likes, dislikes, comments int64
		db.Model(&models.Reaction{}).Where("video_id = ? AND polarity = ?", v.ID, models.PolarityLike).Count(&likes)
		db.Model(&models.Reaction{}).Where("video_id = ? AND polarity = ?", v.ID, models.PolarityDislike).Count(&dislikes)
		db.Model(&models.Comment{}).Where("video_id = ?", v.ID).Count(&comments)

		if v.LikesCount != likes {
			t.Fatalf("video %d likes_count=%d, reaction rows=%d", v.ID, v.LikesCount, likes)
		}
		if v.DislikesCount != dislikes {
			t.Fatalf("video %d dislikes_count=%d, reaction rows=%d", v.ID, v.DislikesCount, dislikes)
		}
		if v.CommentsCount != comments {
			t.Fatalf("video %d comments_count=%d, comment rows=%d", v.ID, v.CommentsCount, comments)
		}
	}

	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		t.Fatalf("load users: %v", err)
	}
	for _, u := range users {
		var subs int64
		db.Model(&models.Subscription{}).Where("channel_id = ?", u.ID).Count(&subs)
		if u.SubscribersCount != subs {
			t.Fatalf("user %d subscribers_count=%d, edge rows=%d", u.ID, u.SubscribersCount, subs)
		}
	}
}

func TestSeed_BaseUsersPresent(t *testing.T) {
	db := openSeedTestDB(t)

	if err := Seed(db, Options{NumUsers: 4, NumVideos: 2, SkipBcrypt: true}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	for _, username := range []string{"demo", "creator", "test"} {
		var count int64
		db.Model(&models.User{}).Where("username = ?", username).Count(&count)
		if count != 1 {
			t.Fatalf("expected base user %q to exist once, got %d", username, count)
		}
	}
}

func TestReconcileCounters_HealsStaleCounts(t *testing.T) {
	db := openSeedTestDB(t)

	f := NewFactory(db, Options{SkipBcrypt: true})
	channel, err := f.CreateUser()
	if err != nil {
		t.Fatalf("create channel: %v", err)
	}
	viewer, err := f.CreateUser()
	if err != nil {
		t.Fatalf("create viewer: %v", err)
	}
	video, err := f.CreateVideo(channel)
	if err != nil {
		t.Fatalf("create video: %v", err)
	}
	if err := f.CreateReaction(viewer, video, models.PolarityLike); err != nil {
		t.Fatalf("create reaction: %v", err)
	}
	if err := f.CreateSubscription(viewer, channel); err != nil {
		t.Fatalf("create subscription: %v", err)
	}

	// Corrupt the denormalized counters.
	if err := db.Model(&models.Video{}).Where("id = ?", video.ID).
		Updates(map[string]any{"likes_count": 99, "comments_count": 42}).Error; err != nil {
		t.Fatalf("corrupt video counters: %v", err)
	}
	if err := db.Model(&models.User{}).Where("id = ?", channel.ID).
		Update("subscribers_count", 77).Error; err != nil {
		t.Fatalf("corrupt subscriber counter: %v", err)
	}

	if err := ReconcileCounters(db); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	var healed models.Video
	if err := db.First(&healed, video.ID).Error; err != nil {
		t.Fatalf("load video: %v", err)
	}
	if healed.LikesCount != 1 || healed.CommentsCount != 0 {
		t.Fatalf("counters not healed: likes=%d comments=%d", healed.LikesCount, healed.CommentsCount)
	}

	var healedChannel models.User
	if err := db.First(&healedChannel, channel.ID).Error; err != nil {
		t.Fatalf("load channel: %v", err)
	}
	if healedChannel.SubscribersCount != 1 {
		t.Fatalf("subscriber counter not healed: %d", healedChannel.SubscribersCount)
	}
}
