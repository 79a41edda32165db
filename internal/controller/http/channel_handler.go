package http

import (
	"net/http"

	"vidstream/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ChannelHandler struct {
	channelUseCase usecase.ChannelUseCase
}

func NewChannelHandler(channelUseCase usecase.ChannelUseCase) *ChannelHandler {
	return &ChannelHandler{channelUseCase: channelUseCase}
}

// GetChannelProfile godoc
// @Summary      Get a channel profile
// @Description  Channel identity plus subscriber counts and whether the viewer is subscribed
// @Tags         channels
// @Security     BearerAuth
// @Param        username path string true "Channel username"
// @Success      200  {object}  apiResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/channel/{username} [get]
func (h *ChannelHandler) GetChannelProfile(c *gin.Context) {
	username := c.Param("username")
	viewerID := c.GetString("user_id")

	profile, err := h.channelUseCase.GetChannelProfile(username, viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "channel fetched successfully", profile)
}

// GetWatchHistory godoc
// @Summary      Get the current user's watch history
// @Description  Videos in most-recent-first order, each with its owner projection
// @Tags         channels
// @Security     BearerAuth
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  errorResponse
// @Router       /users/history [get]
func (h *ChannelHandler) GetWatchHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.channelUseCase.GetWatchHistory(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "watch history fetched successfully", entries)
}

// AddToWatchHistory godoc
// @Summary      Record a video in the watch history
// @Tags         channels
// @Security     BearerAuth
// @Param        videoId path string true "Video ID"
// @Success      200  {object}  apiResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/history/{videoId} [post]
func (h *ChannelHandler) AddToWatchHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.channelUseCase.AddToWatchHistory(userID, c.Param("videoId")); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "watch history updated", nil)
}

// Subscribe godoc
// @Summary      Subscribe to a channel
// @Tags         channels
// @Security     BearerAuth
// @Param        username path string true "Channel username"
// @Success      201  {object}  apiResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/channel/{username}/subscribe [post]
func (h *ChannelHandler) Subscribe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.channelUseCase.Subscribe(userID, c.Param("username")); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "subscribed successfully", nil)
}

// Unsubscribe godoc
// @Summary      Unsubscribe from a channel
// @Tags         channels
// @Security     BearerAuth
// @Param        username path string true "Channel username"
// @Success      200  {object}  apiResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/channel/{username}/subscribe [delete]
func (h *ChannelHandler) Unsubscribe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.channelUseCase.Unsubscribe(userID, c.Param("username")); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "unsubscribed successfully", nil)
}
