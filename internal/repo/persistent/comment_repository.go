package persistent

import (
	"vidstream/internal/entity"
	"vidstream/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *entity.Comment) error
	GetByID(id string) (*entity.Comment, error)
	ListByVideo(videoID string, limit, offset int) ([]*entity.Comment, int64, error)
	Delete(id string) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *entity.Comment) error {
	commentModel := &model.CommentModel{
		ID:      uuid.New().String(),
		VideoID: comment.VideoID,
		OwnerID: comment.OwnerID,
		Content: comment.Content,
	}
	if err := r.db.Create(commentModel).Error; err != nil {
		return err
	}
	*comment = *ToCommentEntity(commentModel)
	return nil
}

func (r *commentRepository) GetByID(id string) (*entity.Comment, error) {
	var commentModel model.CommentModel
	if err := r.db.Where("id = ?", id).First(&commentModel).Error; err != nil {
		return nil, err
	}
	return ToCommentEntity(&commentModel), nil
}

type commentRow struct {
	model.CommentModel
	OwnerFullName  string
	OwnerUsername  string
	OwnerAvatarURL string
}

func (r *commentRepository) ListByVideo(videoID string, limit, offset int) ([]*entity.Comment, int64, error) {
	var total int64
	if err := r.db.Model(&model.CommentModel{}).
		Where("video_id = ?", videoID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []commentRow
	err := r.db.Model(&model.CommentModel{}).
		Select(`comments.*,
			owners.full_name AS owner_full_name,
			owners.username AS owner_username,
			owners.avatar_url AS owner_avatar_url`).
		Joins("JOIN users AS owners ON owners.id = comments.owner_id").
		Where("comments.video_id = ?", videoID).
		Order("comments.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	comments := make([]*entity.Comment, len(rows))
	for i := range rows {
		comment := ToCommentEntity(&rows[i].CommentModel)
		comment.Owner = &entity.Owner{
			ID:        rows[i].OwnerID,
			FullName:  rows[i].OwnerFullName,
			Username:  rows[i].OwnerUsername,
			AvatarURL: rows[i].OwnerAvatarURL,
		}
		comments[i] = comment
	}
	return comments, total, nil
}

func (r *commentRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.CommentModel{}).Error
}
