package main

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"vidstream/internal/entity"
	"vidstream/internal/model"
	"vidstream/internal/repo/persistent"
	"vidstream/pkg/config"
	"vidstream/pkg/database"
	"vidstream/pkg/logger"
	"vidstream/pkg/token"
)

// Seeds a handful of demo channels, cross-subscriptions, videos and
// watch history for local development.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	tokenService := token.NewService(
		cfg.AccessTokenSecret,
		cfg.RefreshTokenSecret,
		cfg.AccessTokenExpiry,
		cfg.RefreshTokenExpiry,
	)

	userRepo := persistent.NewUserRepository(db)
	channelRepo := persistent.NewChannelRepository(db)

	demoUsers := []struct {
		username string
		email    string
		fullName string
	}{
		{"alice", "alice@example.com", "Alice Anders"},
		{"bob", "bob@example.com", "Bob Brown"},
		{"carol", "carol@example.com", "Carol Chen"},
	}

	hashed, err := tokenService.HashPassword("password123")
	if err != nil {
		panic(err)
	}

	created := make([]*entity.User, 0, len(demoUsers))
	for _, du := range demoUsers {
		user := &entity.User{
			Username:      du.username,
			Email:         du.email,
			FullName:      du.fullName,
			AvatarURL:     fmt.Sprintf("https://placehold.co/avatars/%s.png", du.username),
			CoverImageURL: fmt.Sprintf("https://placehold.co/covers/%s.png", du.username),
			Password:      hashed,
		}
		if err := userRepo.Create(user); err != nil {
			log.Warn("Skipping user %s: %v", du.username, err)
			continue
		}
		created = append(created, user)
		log.Info("Created user %s (%s)", user.Username, user.ID)
	}

	if len(created) < 2 {
		log.Warn("Not enough users created, skipping graph seed")
		return
	}

	// Everyone subscribes to alice; alice subscribes to bob
	for _, u := range created[1:] {
		if err := channelRepo.CreateSubscription(u.ID, created[0].ID); err != nil {
			log.Warn("Failed to subscribe %s to %s: %v", u.Username, created[0].Username, err)
		}
	}
	if err := channelRepo.CreateSubscription(created[0].ID, created[1].ID); err != nil {
		log.Warn("Failed to subscribe %s to %s: %v", created[0].Username, created[1].Username, err)
	}

	// A few videos owned by bob, watched by alice
	for i := 1; i <= 3; i++ {
		video := seedVideo(db, created[1].ID, i)
		if video == "" {
			continue
		}
		if err := channelRepo.AddToWatchHistory(created[0].ID, video); err != nil {
			log.Warn("Failed to record watch history: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	log.Info("Seed finished")
}

func seedVideo(db *gorm.DB, ownerID string, n int) string {
	video := model.VideoModel{
		OwnerID:      ownerID,
		Title:        fmt.Sprintf("Demo video %d", n),
		Description:  "Seeded for local development",
		VideoURL:     fmt.Sprintf("https://placehold.co/videos/demo-%d.mp4", n),
		ThumbnailURL: fmt.Sprintf("https://placehold.co/thumbnails/demo-%d.png", n),
		Duration:     float64(60 * n),
	}
	if err := db.Create(&video).Error; err != nil {
		return ""
	}
	return video.ID
}
