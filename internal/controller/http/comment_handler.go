package http

import (
	"net/http"
	"strconv"

	"vidstream/internal/usecase"
	"vidstream/pkg/apperr"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentUseCase usecase.CommentUseCase
}

func NewCommentHandler(commentUseCase usecase.CommentUseCase) *CommentHandler {
	return &CommentHandler{commentUseCase: commentUseCase}
}

type AddCommentRequest struct {
	Content string `json:"content"`
}

// ListComments godoc
// @Summary      List comments on a video
// @Tags         comments
// @Param        videoId path  string true  "Video ID"
// @Param        page    query int    false "Page number"
// @Param        limit   query int    false "Page size"
// @Success      200  {object}  apiResponse
// @Failure      404  {object}  errorResponse
// @Router       /videos/{videoId}/comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	comments, total, err := h.commentUseCase.ListComments(c.Param("videoId"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "comments fetched successfully", gin.H{
		"comments": comments,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// AddComment godoc
// @Summary      Comment on a video
// @Tags         comments
// @Security     BearerAuth
// @Param        videoId path string            true "Video ID"
// @Param        request body AddCommentRequest true "Comment"
// @Success      201  {object}  apiResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /videos/{videoId}/comments [post]
func (h *CommentHandler) AddComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.BadRequest("invalid request body"))
		return
	}

	comment, err := h.commentUseCase.AddComment(c.Param("videoId"), userID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "comment added successfully", comment)
}

// DeleteComment godoc
// @Summary      Delete an owned comment
// @Tags         comments
// @Security     BearerAuth
// @Param        id path string true "Comment ID"
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.commentUseCase.DeleteComment(c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "comment deleted successfully", nil)
}
