package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WatchHistoryModel stores one watch-history reference per row;
// watched_at carries the ordering.
type WatchHistoryModel struct {
	ID        string    `gorm:"type:uuid;primary_key"`
	UserID    string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_video"`
	VideoID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_video"`
	WatchedAt time.Time `gorm:"not null;index"`
}

func (WatchHistoryModel) TableName() string {
	return "watch_history"
}

func (w *WatchHistoryModel) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return nil
}
