// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"clipstream/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts, nextID: 1000}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:           gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:              gofakeit.Email(),
		ChannelDescription: gofakeit.Sentence(10),
		Avatar:             fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Cover:              fmt.Sprintf("https://picsum.photos/seed/%s/1280/300", gofakeit.UUID()),
	}

	if f.opts.SkipBcrypt {
		user.Password = "seed-password"
	} else {
		hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s (no DB write)", user.Username)
		return user, nil
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildVideo constructs a video struct without persisting it. Useful for
// batching.
func (f *Factory) BuildVideo(user *models.User, overrides ...func(*models.Video)) *models.Video {
	vodID := gofakeit.UUID()
	video := &models.Video{
		Title:       gofakeit.Sentence(5),
		Description: gofakeit.Paragraph(1, 3, 5, "\n"),
		VodVideoID:  vodID,
		Cover:       fmt.Sprintf("https://picsum.photos/seed/%s/1280/720", vodID),
		UserID:      user.ID,
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	daysBack := r.Intn(maxDays)
	hoursBack := r.Intn(24)
	minsBack := r.Intn(60)
	video.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(video)
	}
	return video
}

// CreateVideo constructs and persists a sample video owned by the user.
func (f *Factory) CreateVideo(user *models.User, overrides ...func(*models.Video)) (*models.Video, error) {
	video := f.BuildVideo(user, overrides...)
	if f.opts.DryRun {
		f.nextID++
		video.ID = f.nextID
		log.Printf("[dry-run] CreateVideo: %s (no DB write)", video.Title)
		return video, nil
	}
	if err := f.db.Create(video).Error; err != nil {
		return nil, err
	}
	return video, nil
}

// CreateVideosBatch persists multiple videos in a single DB call when possible.
func (f *Factory) CreateVideosBatch(videos []*models.Video) error {
	if f.opts.DryRun {
		for _, v := range videos {
			f.nextID++
			v.ID = f.nextID
		}
		log.Printf("[dry-run] CreateVideosBatch: %d videos (no DB write)", len(videos))
		return nil
	}
	return f.db.Create(&videos).Error
}

// CreateComment constructs and persists a comment by the user on the video.
func (f *Factory) CreateComment(user *models.User, video *models.Video, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(gofakeit.Number(3, 20)),
		UserID:  user.ID,
		VideoID: video.ID,
	}
	for _, override := range overrides {
		override(comment)
	}
	if f.opts.DryRun {
		f.nextID++
		comment.ID = f.nextID
		return comment, nil
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateReaction persists a reaction with the given polarity. The unique
// index on (user, video) means calling this twice for the same pair fails,
// callers pick distinct pairs.
func (f *Factory) CreateReaction(user *models.User, video *models.Video, polarity int8) error {
	if f.opts.DryRun {
		return nil
	}
	return f.db.Create(&models.Reaction{
		UserID:   user.ID,
		VideoID:  video.ID,
		Polarity: polarity,
	}).Error
}

// CreateSubscription persists a subscription edge from subscriber to channel.
func (f *Factory) CreateSubscription(subscriber, channel *models.User) error {
	if f.opts.DryRun {
		return nil
	}
	return f.db.Create(&models.Subscription{
		SubscriberID: subscriber.ID,
		ChannelID:    channel.ID,
	}).Error
}
