package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vidstream/internal/entity"
	"vidstream/internal/usecase"
	"vidstream/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockChannelUseCase is a mock implementation of ChannelUseCase
type MockChannelUseCase struct {
	mock.Mock
}

func (m *MockChannelUseCase) GetChannelProfile(username, viewerID string) (*entity.ChannelProfile, error) {
	args := m.Called(username, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ChannelProfile), args.Error(1)
}

func (m *MockChannelUseCase) GetWatchHistory(userID string) ([]*entity.WatchEntry, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.WatchEntry), args.Error(1)
}

func (m *MockChannelUseCase) AddToWatchHistory(userID, videoID string) error {
	args := m.Called(userID, videoID)
	return args.Error(0)
}

func (m *MockChannelUseCase) Subscribe(subscriberID, channelUsername string) error {
	args := m.Called(subscriberID, channelUsername)
	return args.Error(0)
}

func (m *MockChannelUseCase) Unsubscribe(subscriberID, channelUsername string) error {
	args := m.Called(subscriberID, channelUsername)
	return args.Error(0)
}

var _ usecase.ChannelUseCase = (*MockChannelUseCase)(nil)

func TestGetChannelProfile_Handler_Success(t *testing.T) {
	mockUseCase := new(MockChannelUseCase)
	handler := NewChannelHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/users/channel/:username", func(c *gin.Context) {
		c.Set("user_id", "viewer-1")
		handler.GetChannelProfile(c)
	})

	profile := &entity.ChannelProfile{
		ID:              "channel-1",
		Username:        "alice",
		FullName:        "Alice Anders",
		SubscriberCount: 42,
		SubscribedTo:    7,
		IsSubscribed:    true,
	}
	mockUseCase.On("GetChannelProfile", "alice", "viewer-1").Return(profile, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/channel/alice", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(42), data["subscribersCount"])
	assert.Equal(t, float64(7), data["channelsSubscribedTo"])
	assert.Equal(t, true, data["isSubscribed"])
	mockUseCase.AssertExpectations(t)
}

func TestGetChannelProfile_Handler_NotFound(t *testing.T) {
	mockUseCase := new(MockChannelUseCase)
	handler := NewChannelHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/users/channel/:username", handler.GetChannelProfile)

	mockUseCase.On("GetChannelProfile", "ghost", "").Return(nil, apperr.NotFound("channel not found"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/channel/ghost", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetWatchHistory_Handler_Success(t *testing.T) {
	mockUseCase := new(MockChannelUseCase)
	handler := NewChannelHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/users/history", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		handler.GetWatchHistory(c)
	})

	entries := []*entity.WatchEntry{
		{
			Video:     entity.Video{ID: "video-1", Title: "First"},
			Owner:     entity.Owner{ID: "owner-1", Username: "bob"},
			WatchedAt: time.Now(),
		},
	}
	mockUseCase.On("GetWatchHistory", "user-1").Return(entries, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/history", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
	entry := data[0].(map[string]interface{})
	owner := entry["owner"].(map[string]interface{})
	assert.Equal(t, "bob", owner["username"])
	mockUseCase.AssertExpectations(t)
}

func TestGetWatchHistory_Handler_Empty(t *testing.T) {
	mockUseCase := new(MockChannelUseCase)
	handler := NewChannelHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/users/history", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		handler.GetWatchHistory(c)
	})

	mockUseCase.On("GetWatchHistory", "user-1").Return([]*entity.WatchEntry{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/history", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestGetWatchHistory_Handler_NoIdentity(t *testing.T) {
	mockUseCase := new(MockChannelUseCase)
	handler := NewChannelHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/users/history", handler.GetWatchHistory)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/history", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockUseCase.AssertNotCalled(t, "GetWatchHistory", mock.Anything)
}

func TestAddToWatchHistory_Handler_Success(t *testing.T) {
	mockUseCase := new(MockChannelUseCase)
	handler := NewChannelHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/users/history/:videoId", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		handler.AddToWatchHistory(c)
	})

	mockUseCase.On("AddToWatchHistory", "user-1", "video-1").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users/history/video-1", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestSubscribe_Handler_Success(t *testing.T) {
	mockUseCase := new(MockChannelUseCase)
	handler := NewChannelHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/users/channel/:username/subscribe", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		handler.Subscribe(c)
	})

	mockUseCase.On("Subscribe", "user-1", "bob").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users/channel/bob/subscribe", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestSubscribe_Handler_SelfSubscribe(t *testing.T) {
	mockUseCase := new(MockChannelUseCase)
	handler := NewChannelHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/users/channel/:username/subscribe", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		handler.Subscribe(c)
	})

	mockUseCase.On("Subscribe", "user-1", "alice").Return(apperr.BadRequest("cannot subscribe to your own channel"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users/channel/alice/subscribe", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnsubscribe_Handler_Success(t *testing.T) {
	mockUseCase := new(MockChannelUseCase)
	handler := NewChannelHandler(mockUseCase)

	router := setupTestRouter()
	router.DELETE("/users/channel/:username/subscribe", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		handler.Unsubscribe(c)
	})

	mockUseCase.On("Unsubscribe", "user-1", "bob").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/users/channel/bob/subscribe", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}
