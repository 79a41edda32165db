package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID            string    `gorm:"type:uuid;primary_key"`
	Username      string    `gorm:"uniqueIndex;not null"`
	Email         string    `gorm:"uniqueIndex;not null"`
	FullName      string    `gorm:"not null;index"`
	AvatarURL     string    `gorm:"not null"`
	CoverImageURL string    `gorm:"not null"`
	Password      string    `gorm:"not null"`
	RefreshToken  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
