package persistent

import (
	"strings"
	"time"

	"vidstream/internal/entity"
	"vidstream/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChannelRepository covers the social graph: subscription edges plus
// the read-only aggregations derived from them. Counts and membership
// checks run inside the database so edge lists never reach memory.
type ChannelRepository interface {
	GetChannelProfile(username, viewerID string) (*entity.ChannelProfile, error)
	GetWatchHistory(userID string) ([]*entity.WatchEntry, error)
	AddToWatchHistory(userID, videoID string) error
	CreateSubscription(subscriberID, channelID string) error
	DeleteSubscription(subscriberID, channelID string) error
	IsSubscribed(subscriberID, channelID string) (bool, error)
	GetVideoByID(videoID string) (*entity.Video, error)
}

type channelRepository struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) ChannelRepository {
	return &channelRepository{db: db}
}

func (r *channelRepository) GetChannelProfile(username, viewerID string) (*entity.ChannelProfile, error) {
	var userModel model.UserModel
	if err := r.db.Where("username = ?", strings.ToLower(strings.TrimSpace(username))).First(&userModel).Error; err != nil {
		return nil, err
	}

	var subscriberCount int64
	if err := r.db.Model(&model.SubscriptionModel{}).
		Where("channel_id = ?", userModel.ID).
		Count(&subscriberCount).Error; err != nil {
		return nil, err
	}

	var subscribedTo int64
	if err := r.db.Model(&model.SubscriptionModel{}).
		Where("subscriber_id = ?", userModel.ID).
		Count(&subscribedTo).Error; err != nil {
		return nil, err
	}

	isSubscribed := false
	if viewerID != "" {
		var err error
		isSubscribed, err = r.IsSubscribed(viewerID, userModel.ID)
		if err != nil {
			return nil, err
		}
	}

	return &entity.ChannelProfile{
		ID:              userModel.ID,
		FullName:        userModel.FullName,
		Username:        userModel.Username,
		Email:           userModel.Email,
		AvatarURL:       userModel.AvatarURL,
		CoverImageURL:   userModel.CoverImageURL,
		SubscriberCount: subscriberCount,
		SubscribedTo:    subscribedTo,
		IsSubscribed:    isSubscribed,
	}, nil
}

// watchHistoryRow is the flattened join result before it is folded into
// the video-plus-owner shape.
type watchHistoryRow struct {
	model.VideoModel
	WatchedAt      time.Time
	OwnerFullName  string
	OwnerUsername  string
	OwnerAvatarURL string
}

func (r *channelRepository) GetWatchHistory(userID string) ([]*entity.WatchEntry, error) {
	var rows []watchHistoryRow
	err := r.db.Model(&model.WatchHistoryModel{}).
		Select(`videos.*, watch_history.watched_at,
			owners.full_name AS owner_full_name,
			owners.username AS owner_username,
			owners.avatar_url AS owner_avatar_url`).
		Joins("JOIN videos ON videos.id = watch_history.video_id").
		Joins("JOIN users AS owners ON owners.id = videos.owner_id").
		Where("watch_history.user_id = ?", userID).
		Order("watch_history.watched_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*entity.WatchEntry, len(rows))
	for i := range rows {
		entries[i] = &entity.WatchEntry{
			Video: *ToVideoEntity(&rows[i].VideoModel),
			Owner: entity.Owner{
				ID:        rows[i].VideoModel.OwnerID,
				FullName:  rows[i].OwnerFullName,
				Username:  rows[i].OwnerUsername,
				AvatarURL: rows[i].OwnerAvatarURL,
			},
			WatchedAt: rows[i].WatchedAt,
		}
	}
	return entries, nil
}

func (r *channelRepository) AddToWatchHistory(userID, videoID string) error {
	entry := &model.WatchHistoryModel{
		ID:        uuid.New().String(),
		UserID:    userID,
		VideoID:   videoID,
		WatchedAt: time.Now(),
	}
	// Re-watching moves the entry to the front of the history
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"watched_at": entry.WatchedAt}),
	}).Create(entry).Error
}

func (r *channelRepository) CreateSubscription(subscriberID, channelID string) error {
	var existing model.SubscriptionModel
	err := r.db.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).First(&existing).Error
	if err == nil {
		// Duplicate subscribe is idempotent
		return nil
	}

	subscriptionModel := &model.SubscriptionModel{
		ID:           uuid.New().String(),
		SubscriberID: subscriberID,
		ChannelID:    channelID,
	}
	return r.db.Create(subscriptionModel).Error
}

func (r *channelRepository) DeleteSubscription(subscriberID, channelID string) error {
	return r.db.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&model.SubscriptionModel{}).Error
}

func (r *channelRepository) IsSubscribed(subscriberID, channelID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.SubscriptionModel{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *channelRepository) GetVideoByID(videoID string) (*entity.Video, error) {
	var videoModel model.VideoModel
	if err := r.db.Where("id = ?", videoID).First(&videoModel).Error; err != nil {
		return nil, err
	}
	return ToVideoEntity(&videoModel), nil
}
