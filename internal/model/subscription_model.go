package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionModel struct {
	ID           string    `gorm:"type:uuid;primary_key"`
	SubscriberID string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_subscriber_channel"`
	ChannelID    string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_subscriber_channel"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
