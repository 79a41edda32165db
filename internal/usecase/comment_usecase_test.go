package usecase

import (
	"errors"
	"testing"

	"vidstream/internal/entity"
	"vidstream/internal/repo/persistent"
	"vidstream/pkg/apperr"
	"vidstream/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(comment *entity.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(id string) (*entity.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByVideo(videoID string, limit, offset int) ([]*entity.Comment, int64, error) {
	args := m.Called(videoID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

var _ persistent.CommentRepository = (*MockCommentRepository)(nil)

func TestAddComment_Success(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	channelRepo := new(MockChannelRepository)
	uc := NewCommentUseCase(commentRepo, channelRepo, logger.New())

	channelRepo.On("GetVideoByID", "video-1").Return(&entity.Video{ID: "video-1"}, nil)
	commentRepo.On("Create", mock.MatchedBy(func(c *entity.Comment) bool {
		return c.VideoID == "video-1" && c.OwnerID == "user-1" && c.Content == "nice video"
	})).Return(nil)

	comment, err := uc.AddComment("video-1", "user-1", "nice video")

	assert.NoError(t, err)
	assert.Equal(t, "nice video", comment.Content)
	commentRepo.AssertExpectations(t)
}

func TestAddComment_EmptyContent(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	channelRepo := new(MockChannelRepository)
	uc := NewCommentUseCase(commentRepo, channelRepo, logger.New())

	_, err := uc.AddComment("video-1", "user-1", "")

	assert.Error(t, err)
	assert.Equal(t, 400, apperr.Wrap(err, "").Code)
	commentRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAddComment_VideoNotFound(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	channelRepo := new(MockChannelRepository)
	uc := NewCommentUseCase(commentRepo, channelRepo, logger.New())

	channelRepo.On("GetVideoByID", "missing").Return(nil, errors.New("record not found"))

	_, err := uc.AddComment("missing", "user-1", "hello")

	assert.Error(t, err)
	assert.Equal(t, 404, apperr.Wrap(err, "").Code)
}

func TestListComments_ClampsPagination(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	channelRepo := new(MockChannelRepository)
	uc := NewCommentUseCase(commentRepo, channelRepo, logger.New())

	channelRepo.On("GetVideoByID", "video-1").Return(&entity.Video{ID: "video-1"}, nil)
	commentRepo.On("ListByVideo", "video-1", 10, 0).Return([]*entity.Comment{}, int64(0), nil)

	_, _, err := uc.ListComments("video-1", 0, 500)

	assert.NoError(t, err)
	commentRepo.AssertExpectations(t)
}

func TestListComments_Success(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	channelRepo := new(MockChannelRepository)
	uc := NewCommentUseCase(commentRepo, channelRepo, logger.New())

	comments := []*entity.Comment{
		{ID: "comment-1", VideoID: "video-1", Content: "first", Owner: &entity.Owner{Username: "alice"}},
		{ID: "comment-2", VideoID: "video-1", Content: "second", Owner: &entity.Owner{Username: "bob"}},
	}
	channelRepo.On("GetVideoByID", "video-1").Return(&entity.Video{ID: "video-1"}, nil)
	commentRepo.On("ListByVideo", "video-1", 10, 10).Return(comments, int64(12), nil)

	got, total, err := uc.ListComments("video-1", 2, 10)

	assert.NoError(t, err)
	assert.Equal(t, int64(12), total)
	assert.Len(t, got, 2)
	assert.Equal(t, "alice", got[0].Owner.Username)
}

func TestListComments_NilBecomesEmpty(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	channelRepo := new(MockChannelRepository)
	uc := NewCommentUseCase(commentRepo, channelRepo, logger.New())

	channelRepo.On("GetVideoByID", "video-1").Return(&entity.Video{ID: "video-1"}, nil)
	commentRepo.On("ListByVideo", "video-1", 10, 0).Return(nil, int64(0), nil)

	got, total, err := uc.ListComments("video-1", 1, 10)

	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, int64(0), total)
}

func TestDeleteComment_OwnerOnly(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	channelRepo := new(MockChannelRepository)
	uc := NewCommentUseCase(commentRepo, channelRepo, logger.New())

	commentRepo.On("GetByID", "comment-1").Return(&entity.Comment{ID: "comment-1", OwnerID: "user-1"}, nil)

	err := uc.DeleteComment("comment-1", "intruder")

	assert.Error(t, err)
	assert.Equal(t, 401, apperr.Wrap(err, "").Code)
	commentRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestDeleteComment_Success(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	channelRepo := new(MockChannelRepository)
	uc := NewCommentUseCase(commentRepo, channelRepo, logger.New())

	commentRepo.On("GetByID", "comment-1").Return(&entity.Comment{ID: "comment-1", OwnerID: "user-1"}, nil)
	commentRepo.On("Delete", "comment-1").Return(nil)

	err := uc.DeleteComment("comment-1", "user-1")

	assert.NoError(t, err)
	commentRepo.AssertExpectations(t)
}

func TestDeleteComment_NotFound(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	channelRepo := new(MockChannelRepository)
	uc := NewCommentUseCase(commentRepo, channelRepo, logger.New())

	commentRepo.On("GetByID", "ghost").Return(nil, errors.New("record not found"))

	err := uc.DeleteComment("ghost", "user-1")

	assert.Error(t, err)
	assert.Equal(t, 404, apperr.Wrap(err, "").Code)
}
