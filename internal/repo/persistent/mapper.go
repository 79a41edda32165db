package persistent

import (
	"vidstream/internal/entity"
	"vidstream/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:            m.ID,
		Username:      m.Username,
		Email:         m.Email,
		FullName:      m.FullName,
		AvatarURL:     m.AvatarURL,
		CoverImageURL: m.CoverImageURL,
		Password:      m.Password,
		RefreshToken:  m.RefreshToken,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:            e.ID,
		Username:      e.Username,
		Email:         e.Email,
		FullName:      e.FullName,
		AvatarURL:     e.AvatarURL,
		CoverImageURL: e.CoverImageURL,
		Password:      e.Password,
		RefreshToken:  e.RefreshToken,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func ToSubscriptionEntity(m *model.SubscriptionModel) *entity.Subscription {
	if m == nil {
		return nil
	}

	return &entity.Subscription{
		ID:           m.ID,
		SubscriberID: m.SubscriberID,
		ChannelID:    m.ChannelID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToVideoEntity(m *model.VideoModel) *entity.Video {
	if m == nil {
		return nil
	}

	return &entity.Video{
		ID:           m.ID,
		OwnerID:      m.OwnerID,
		Title:        m.Title,
		Description:  m.Description,
		VideoURL:     m.VideoURL,
		ThumbnailURL: m.ThumbnailURL,
		Duration:     m.Duration,
		Views:        m.Views,
		IsPublished:  m.IsPublished,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToCommentEntity(m *model.CommentModel) *entity.Comment {
	if m == nil {
		return nil
	}

	return &entity.Comment{
		ID:        m.ID,
		VideoID:   m.VideoID,
		OwnerID:   m.OwnerID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
