package usecase

import (
	"vidstream/internal/entity"
	"vidstream/internal/repo/persistent"
	"vidstream/pkg/apperr"
	"vidstream/pkg/logger"
)

type CommentUseCase interface {
	AddComment(videoID, ownerID, content string) (*entity.Comment, error)
	ListComments(videoID string, page, limit int) ([]*entity.Comment, int64, error)
	DeleteComment(commentID, requesterID string) error
}

type commentUseCase struct {
	commentRepo persistent.CommentRepository
	channelRepo persistent.ChannelRepository
	logger      *logger.Logger
}

func NewCommentUseCase(
	commentRepo persistent.CommentRepository,
	channelRepo persistent.ChannelRepository,
	logger *logger.Logger,
) CommentUseCase {
	return &commentUseCase{
		commentRepo: commentRepo,
		channelRepo: channelRepo,
		logger:      logger,
	}
}

func (uc *commentUseCase) AddComment(videoID, ownerID, content string) (*entity.Comment, error) {
	if content == "" {
		return nil, apperr.BadRequest("content is required")
	}

	if _, err := uc.channelRepo.GetVideoByID(videoID); err != nil {
		return nil, apperr.NotFound("video not found")
	}

	comment := &entity.Comment{VideoID: videoID, OwnerID: ownerID, Content: content}
	if err := uc.commentRepo.Create(comment); err != nil {
		uc.logger.Error("Failed to create comment: %v", err)
		return nil, apperr.Internal("failed to add comment")
	}
	return comment, nil
}

func (uc *commentUseCase) ListComments(videoID string, page, limit int) ([]*entity.Comment, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	if _, err := uc.channelRepo.GetVideoByID(videoID); err != nil {
		return nil, 0, apperr.NotFound("video not found")
	}

	comments, total, err := uc.commentRepo.ListByVideo(videoID, limit, (page-1)*limit)
	if err != nil {
		uc.logger.Error("Failed to list comments: %v", err)
		return nil, 0, apperr.Internal("failed to list comments")
	}
	if comments == nil {
		comments = []*entity.Comment{}
	}
	return comments, total, nil
}

func (uc *commentUseCase) DeleteComment(commentID, requesterID string) error {
	comment, err := uc.commentRepo.GetByID(commentID)
	if err != nil {
		return apperr.NotFound("comment not found")
	}
	if comment.OwnerID != requesterID {
		return apperr.Unauthorized("you can only delete your own comments")
	}

	if err := uc.commentRepo.Delete(commentID); err != nil {
		uc.logger.Error("Failed to delete comment: %v", err)
		return apperr.Internal("failed to delete comment")
	}
	return nil
}
