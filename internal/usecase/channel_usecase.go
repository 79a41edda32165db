package usecase

import (
	"time"

	"vidstream/internal/entity"
	"vidstream/internal/repo/persistent"
	"vidstream/pkg/apperr"
	"vidstream/pkg/logger"
	"vidstream/pkg/queue"
)

// SubscriptionPublisher is the broker-side interest in new edges.
type SubscriptionPublisher interface {
	PublishSubscriptionEvent(event queue.SubscriptionEvent) error
}

type ChannelUseCase interface {
	GetChannelProfile(username, viewerID string) (*entity.ChannelProfile, error)
	GetWatchHistory(userID string) ([]*entity.WatchEntry, error)
	AddToWatchHistory(userID, videoID string) error
	Subscribe(subscriberID, channelUsername string) error
	Unsubscribe(subscriberID, channelUsername string) error
}

type channelUseCase struct {
	channelRepo persistent.ChannelRepository
	userRepo    persistent.UserRepository
	publisher   SubscriptionPublisher
	logger      *logger.Logger
}

func NewChannelUseCase(
	channelRepo persistent.ChannelRepository,
	userRepo persistent.UserRepository,
	publisher SubscriptionPublisher,
	logger *logger.Logger,
) ChannelUseCase {
	return &channelUseCase{
		channelRepo: channelRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

func (uc *channelUseCase) GetChannelProfile(username, viewerID string) (*entity.ChannelProfile, error) {
	if username == "" {
		return nil, apperr.BadRequest("username is required")
	}

	profile, err := uc.channelRepo.GetChannelProfile(username, viewerID)
	if err != nil {
		if appErr := apperr.Wrap(err, "failed to fetch channel"); apperr.IsNotFound(appErr) {
			return nil, apperr.NotFound("channel not found")
		}
		uc.logger.Error("Failed to fetch channel profile: %v", err)
		return nil, apperr.Internal("failed to fetch channel")
	}
	return profile, nil
}

func (uc *channelUseCase) GetWatchHistory(userID string) ([]*entity.WatchEntry, error) {
	if _, err := uc.userRepo.FindByID(userID); err != nil {
		return nil, apperr.NotFound("user not found")
	}

	entries, err := uc.channelRepo.GetWatchHistory(userID)
	if err != nil {
		uc.logger.Error("Failed to fetch watch history: %v", err)
		return nil, apperr.Internal("failed to fetch watch history")
	}
	// An empty history is a valid answer, not an error
	if entries == nil {
		entries = []*entity.WatchEntry{}
	}
	return entries, nil
}

func (uc *channelUseCase) AddToWatchHistory(userID, videoID string) error {
	if _, err := uc.channelRepo.GetVideoByID(videoID); err != nil {
		return apperr.NotFound("video not found")
	}

	if err := uc.channelRepo.AddToWatchHistory(userID, videoID); err != nil {
		uc.logger.Error("Failed to record watch history: %v", err)
		return apperr.Internal("failed to record watch history")
	}
	return nil
}

func (uc *channelUseCase) Subscribe(subscriberID, channelUsername string) error {
	channel, err := uc.userRepo.FindByUsername(channelUsername)
	if err != nil {
		return apperr.NotFound("channel not found")
	}
	if channel.ID == subscriberID {
		return apperr.BadRequest("cannot subscribe to your own channel")
	}

	if err := uc.channelRepo.CreateSubscription(subscriberID, channel.ID); err != nil {
		uc.logger.Error("Failed to create subscription: %v", err)
		return apperr.Internal("failed to subscribe")
	}

	if uc.publisher != nil {
		go func() {
			event := queue.SubscriptionEvent{
				ChannelID:    channel.ID,
				SubscriberID: subscriberID,
				OccurredAt:   time.Now(),
			}
			if err := uc.publisher.PublishSubscriptionEvent(event); err != nil {
				uc.logger.Warn("Failed to publish subscription event: %v", err)
			}
		}()
	}

	return nil
}

func (uc *channelUseCase) Unsubscribe(subscriberID, channelUsername string) error {
	channel, err := uc.userRepo.FindByUsername(channelUsername)
	if err != nil {
		return apperr.NotFound("channel not found")
	}

	if err := uc.channelRepo.DeleteSubscription(subscriberID, channel.ID); err != nil {
		uc.logger.Error("Failed to delete subscription: %v", err)
		return apperr.Internal("failed to unsubscribe")
	}
	return nil
}
