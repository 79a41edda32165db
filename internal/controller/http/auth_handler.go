package http

import (
	"net/http"
	"path/filepath"

	"vidstream/internal/entity"
	"vidstream/internal/usecase"
	"vidstream/pkg/apperr"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	session     *SessionWriter
}

func NewAuthHandler(authUseCase usecase.AuthUseCase, session *SessionWriter) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		session:     session,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User         *entity.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type UpdateAccountRequest struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Register godoc
// @Summary      Register a new user
// @Description  Multipart registration with required avatar and cover image
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        fullname   formData string true "Full name"
// @Param        email      formData string true "Email"
// @Param        username   formData string true "Username"
// @Param        password   formData string true "Password"
// @Param        avatar     formData file   true "Avatar image"
// @Param        coverImage formData file   true "Cover image"
// @Success      201  {object}  apiResponse
// @Failure      400  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /users/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	input := usecase.RegisterInput{
		FullName: c.PostForm("fullname"),
		Email:    c.PostForm("email"),
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	}

	avatar, avatarClose, err := formUpload(c, "avatar")
	if err != nil {
		respondError(c, err)
		return
	}
	defer avatarClose()

	coverImage, coverClose, err := formUpload(c, "coverImage")
	if err != nil {
		respondError(c, err)
		return
	}
	defer coverClose()

	user, err := h.authUseCase.Register(input, avatar, coverImage)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "user registered successfully", user)
}

// Login godoc
// @Summary      Log in
// @Description  Authenticate and receive an access/refresh token pair, also set as session cookies
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200  {object}  apiResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.BadRequest("invalid request body"))
		return
	}

	user, pair, err := h.authUseCase.Login(req.Email, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.session.SetSession(c, pair)
	respond(c, http.StatusOK, "user logged in successfully", LoginResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout godoc
// @Summary      Log out
// @Tags         users
// @Security     BearerAuth
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  errorResponse
// @Router       /users/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.authUseCase.Logout(userID); err != nil {
		respondError(c, err)
		return
	}

	h.session.ClearSession(c)
	respond(c, http.StatusOK, "user logged out successfully", nil)
}

// RefreshToken godoc
// @Summary      Rotate the token pair
// @Description  Reads the refresh token from cookie or body and returns a new pair
// @Tags         users
// @Accept       json
// @Produce      json
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  errorResponse
// @Router       /users/refresh-token [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	presented := refreshTokenFromRequest(c)

	pair, err := h.authUseCase.Refresh(presented)
	if err != nil {
		respondError(c, err)
		return
	}

	h.session.SetSession(c, pair)
	respond(c, http.StatusOK, "tokens refreshed successfully", pair)
}

// ChangePassword godoc
// @Summary      Change the current user's password
// @Tags         users
// @Security     BearerAuth
// @Param        request body ChangePasswordRequest true "Passwords"
// @Success      200  {object}  apiResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /users/change-password [patch]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.BadRequest("invalid request body"))
		return
	}

	if err := h.authUseCase.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "password changed successfully", nil)
}

// UpdateAccount godoc
// @Summary      Update account details
// @Tags         users
// @Security     BearerAuth
// @Param        request body UpdateAccountRequest true "Account details"
// @Success      200  {object}  apiResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/update-account [patch]
func (h *AuthHandler) UpdateAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.BadRequest("invalid request body"))
		return
	}

	user, err := h.authUseCase.UpdateAccount(userID, req.FullName, req.Email, req.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "account details updated successfully", user)
}

// UpdateAvatar godoc
// @Summary      Update avatar image
// @Tags         users
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Param        avatar formData file true "Avatar image"
// @Success      200  {object}  apiResponse
// @Failure      400  {object}  errorResponse
// @Router       /users/avatar [patch]
func (h *AuthHandler) UpdateAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	upload, closeFn, err := formUpload(c, "avatar")
	if err != nil {
		respondError(c, err)
		return
	}
	defer closeFn()

	user, err := h.authUseCase.UpdateAvatar(userID, upload)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "avatar updated successfully", user)
}

// UpdateCoverImage godoc
// @Summary      Update cover image
// @Tags         users
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Param        coverImage formData file true "Cover image"
// @Success      200  {object}  apiResponse
// @Failure      400  {object}  errorResponse
// @Router       /users/cover-image [patch]
func (h *AuthHandler) UpdateCoverImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	upload, closeFn, err := formUpload(c, "coverImage")
	if err != nil {
		respondError(c, err)
		return
	}
	defer closeFn()

	user, err := h.authUseCase.UpdateCoverImage(userID, upload)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "cover image updated successfully", user)
}

// CurrentUser godoc
// @Summary      Get the current user
// @Tags         users
// @Security     BearerAuth
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  errorResponse
// @Router       /users/current-user [get]
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.authUseCase.GetCurrentUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "current user fetched successfully", user)
}

// formUpload pulls one image file out of a multipart form. The caller
// must invoke the returned close func.
func formUpload(c *gin.Context, field string) (usecase.Upload, func(), error) {
	noop := func() {}

	file, err := c.FormFile(field)
	if err != nil {
		return usecase.Upload{}, noop, apperr.BadRequest(field + " file is required")
	}

	ext := filepath.Ext(file.Filename)
	if !allowedImageExt(ext) {
		return usecase.Upload{}, noop, apperr.BadRequest("invalid image format, only jpg, jpeg, png, gif are allowed")
	}

	src, err := file.Open()
	if err != nil {
		return usecase.Upload{}, noop, apperr.Internal("failed to process file")
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return usecase.Upload{Reader: src, Ext: ext, ContentType: contentType}, func() { src.Close() }, nil
}

func allowedImageExt(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif":
		return true
	}
	return false
}
