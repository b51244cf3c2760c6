package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"clipstream/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers  int
	NumVideos int
	// ShouldClean truncates all engagement tables before seeding.
	ShouldClean bool
	// SkipBcrypt stores a plain placeholder password, tests use it to avoid
	// burning CPU on hashing.
	SkipBcrypt bool
	// MaxDays is how far back video timestamps are spread.
	MaxDays int
	// DryRun builds entities without touching the database.
	DryRun bool
}

var (
	firstNames = []string{
		"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael", "Linda",
		"William", "Elizabeth", "David", "Barbara", "Richard", "Susan", "Joseph", "Jessica",
		"Thomas", "Sarah", "Charles", "Karen", "Christopher", "Nancy", "Daniel", "Lisa",
		"Matthew", "Betty", "Anthony", "Margaret", "Mark", "Sandra", "Donald", "Ashley",
		"Steven", "Kimberly", "Paul", "Emily", "Andrew", "Donna", "Joshua", "Michelle",
		"Kenneth", "Dorothy", "Kevin", "Carol", "Brian", "Amanda", "George", "Melissa",
		"Edward", "Deborah", "Ronald", "Stephanie", "Timothy", "Rebecca", "Jason", "Sharon",
		"Jeffrey", "Laura", "Ryan", "Cynthia", "Jacob", "Kathleen", "Gary", "Amy",
		"Nicholas", "Shirley", "Eric", "Angela", "Jonathan", "Helen", "Stephen", "Anna",
		"Larry", "Brenda", "Justin", "Pamela", "Scott", "Nicole", "Brandon", "Emma",
	}

	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
		"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas",
		"Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson", "White",
		"Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson", "Walker", "Young",
		"Allen", "King", "Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores",
		"Green", "Adams", "Nelson", "Baker", "Hall", "Rivera", "Campbell", "Mitchell",
		"Carter", "Roberts", "Gomez", "Phillips", "Evans", "Turner", "Diaz", "Parker",
	}

	videoTopics = []string{
		"speedrun", "unboxing", "tutorial", "devlog", "vlog", "review", "reaction",
		"highlights", "cooking", "workout", "travel", "music", "podcast", "gameplay",
		"timelapse", "deep dive", "retrospective", "tier list", "build guide",
	}

	adjectives = []string{
		"amazing", "incredible", "fascinating", "challenging", "relaxing", "chaotic",
		"cozy", "ambitious", "honest", "complete", "definitive", "unexpected",
		"beautiful", "elegant", "cursed", "fast", "reliable", "dynamic",
	}
)

// Seed populates the database with demo users, videos and engagement data.
// After the raw rows are written, every denormalized counter is recomputed
// from them so the seeded state is internally consistent.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d videos...", opts.NumUsers, opts.NumVideos)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	users, err := createUsers(db, opts)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	videos, err := createVideos(db, users, opts)
	if err != nil {
		return fmt.Errorf("failed to create videos: %w", err)
	}
	log.Printf("✓ %d videos created", len(videos))

	if err := createEngagement(db, users, videos, opts); err != nil {
		return fmt.Errorf("failed to create engagement data: %w", err)
	}
	log.Println("✓ subscriptions, reactions and comments created")

	if err := ReconcileCounters(db); err != nil {
		return fmt.Errorf("failed to reconcile counters: %w", err)
	}
	log.Println("✓ denormalized counters reconciled")

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE comments, reactions, subscriptions, videos, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func generateRandomName() (string, string) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	first := firstNames[r.Intn(len(firstNames))]
	last := lastNames[r.Intn(len(lastNames))]
	return first, last
}

func generateUsername(first, last string) string {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	formats := []string{"%s%s", "%s.%s", "%s_%s", "%s%d", "%s_%d"}
	format := formats[r.Intn(len(formats))]

	switch format {
	case "%s%d", "%s_%d":
		return strings.ToLower(fmt.Sprintf(format, first, r.Intn(1000)))
	default:
		return strings.ToLower(fmt.Sprintf(format, first, last))
	}
}

func generateVideoTitle() string {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	adj := adjectives[r.Intn(len(adjectives))]
	topic := videoTopics[r.Intn(len(videoTopics))]

	templates := []string{
		"The %s %s",
		"My most %s %s yet",
		"An %s %s, start to finish",
		"This %s %s changed my mind",
	}
	template := templates[r.Intn(len(templates))]
	title := fmt.Sprintf(template, adj, topic)
	return strings.ToUpper(string(title[0])) + title[1:]
}

func createUsers(db *gorm.DB, opts Options) ([]models.User, error) {
	count := opts.NumUsers
	users := make([]models.User, 0, count)

	password := "seed-password"
	if !opts.SkipBcrypt {
		hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		password = string(hashed)
	}

	// Always include some specific users for consistency if cleaning
	if count >= 3 {
		baseUsers := []string{"demo", "creator", "test"}
		for _, u := range baseUsers {
			user := models.User{
				Username:           u,
				Email:              fmt.Sprintf("%s@example.com", u),
				Password:           password,
				ChannelDescription: "One of the OGs.",
				Avatar:             fmt.Sprintf("https://i.pravatar.cc/150?u=%s", u),
			}
			if err := db.Create(&user).Error; err == nil {
				users = append(users, user)
			}
		}
	}

	for i := len(users); i < count; i++ {
		first, last := generateRandomName()
		username := generateUsername(first, last)

		// Ensure uniqueness roughly
		username = fmt.Sprintf("%s%d", username, i)

		user := models.User{
			Username:           username,
			Email:              fmt.Sprintf("%s@example.com", username),
			Password:           password,
			ChannelDescription: fmt.Sprintf("%s %s's channel.", first, last),
			Avatar:             fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username),
		}

		if err := db.Create(&user).Error; err != nil {
			log.Printf("Failed to create user %s: %v", username, err)
			continue
		}
		users = append(users, user)

		if i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

func createVideos(db *gorm.DB, users []models.User, opts Options) ([]models.Video, error) {
	if len(users) == 0 {
		return nil, nil
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	factory := NewFactory(db, opts)
	videos := make([]models.Video, 0, opts.NumVideos)

	for i := 0; i < opts.NumVideos; i++ {
		user := users[r.Intn(len(users))]

		video := factory.BuildVideo(&user, func(v *models.Video) {
			v.Title = generateVideoTitle()
		})
		if err := db.Create(video).Error; err != nil {
			return nil, err
		}
		videos = append(videos, *video)

		if i%100 == 0 {
			log.Printf("Created %d videos...", i)
		}
	}

	return videos, nil
}

// createEngagement wires random subscriptions, reactions and comments between
// the seeded users and videos. Reaction and subscription pairs are chosen
// uniquely so the table-level unique indexes are never violated.
func createEngagement(db *gorm.DB, users []models.User, videos []models.Video, opts Options) error {
	if len(users) == 0 || len(videos) == 0 {
		return nil
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	factory := NewFactory(db, opts)

	// Each user subscribes to a handful of other channels.
	for i := range users {
		for j := range users {
			if i == j {
				continue
			}
			if r.Float32() < 0.2 {
				if err := factory.CreateSubscription(&users[i], &users[j]); err != nil {
					return err
				}
			}
		}
	}

	// Each user reacts to a subset of videos, at most once per video.
	for i := range users {
		for j := range videos {
			if videos[j].UserID == users[i].ID {
				continue
			}
			roll := r.Float32()
			switch {
			case roll < 0.25:
				if err := factory.CreateReaction(&users[i], &videos[j], models.PolarityLike); err != nil {
					return err
				}
			case roll < 0.30:
				if err := factory.CreateReaction(&users[i], &videos[j], models.PolarityDislike); err != nil {
					return err
				}
			}
		}
	}

	// Sprinkle comments, repeat commenters are fine.
	for j := range videos {
		numComments := r.Intn(6)
		for c := 0; c < numComments; c++ {
			user := users[r.Intn(len(users))]
			if _, err := factory.CreateComment(&user, &videos[j]); err != nil {
				return err
			}
		}
	}

	return nil
}

// ReconcileCounters recomputes every denormalized counter from its
// source-of-truth rows: video like/dislike counts from reactions, video
// comment counts from comments, and channel subscriber counts from
// subscription edges.
func ReconcileCounters(db *gorm.DB) error {
	if err := db.Exec(`
		UPDATE videos SET
			likes_count = (SELECT COUNT(*) FROM reactions WHERE reactions.video_id = videos.id AND reactions.polarity = 1),
			dislikes_count = (SELECT COUNT(*) FROM reactions WHERE reactions.video_id = videos.id AND reactions.polarity = -1)
	`).Error; err != nil {
		return fmt.Errorf("reconcile reaction counters: %w", err)
	}

	if err := db.Exec(`
		UPDATE videos SET
			comments_count = (SELECT COUNT(*) FROM comments WHERE comments.video_id = videos.id AND comments.deleted_at IS NULL)
	`).Error; err != nil {
		return fmt.Errorf("reconcile comment counters: %w", err)
	}

	if err := db.Exec(`
		UPDATE users SET
			subscribers_count = (SELECT COUNT(*) FROM subscriptions WHERE subscriptions.channel_id = users.id)
	`).Error; err != nil {
		return fmt.Errorf("reconcile subscriber counters: %w", err)
	}

	return nil
}
