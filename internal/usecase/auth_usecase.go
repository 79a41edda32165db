package usecase

import (
	"crypto/subtle"
	"io"

	"vidstream/internal/entity"
	"vidstream/internal/repo/persistent"
	"vidstream/pkg/apperr"
	"vidstream/pkg/logger"
	"vidstream/pkg/storage"
	"vidstream/pkg/token"

	"github.com/google/uuid"
)

// TokenPair bundles the short-lived access token with the long-lived
// refresh token issued alongside it.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Upload carries one incoming media file from the HTTP layer.
type Upload struct {
	Reader      io.Reader
	Ext         string
	ContentType string
}

type RegisterInput struct {
	FullName string
	Email    string
	Username string
	Password string
}

type AuthUseCase interface {
	Register(input RegisterInput, avatar, coverImage Upload) (*entity.User, error)
	Login(email, username, password string) (*entity.User, *TokenPair, error)
	RotateTokens(userID string) (*TokenPair, error)
	Refresh(presentedToken string) (*TokenPair, error)
	Logout(userID string) error
	ChangePassword(userID, oldPassword, newPassword string) error
	UpdateAccount(userID, fullName, email, username string) (*entity.User, error)
	UpdateAvatar(userID string, avatar Upload) (*entity.User, error)
	UpdateCoverImage(userID string, coverImage Upload) (*entity.User, error)
	GetCurrentUser(userID string) (*entity.User, error)
}

type authUseCase struct {
	userRepo     persistent.UserRepository
	tokenService *token.Service
	mediaStore   storage.MediaStore
	logger       *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	tokenService *token.Service,
	mediaStore storage.MediaStore,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:     userRepo,
		tokenService: tokenService,
		mediaStore:   mediaStore,
		logger:       logger,
	}
}

func (uc *authUseCase) Register(input RegisterInput, avatar, coverImage Upload) (*entity.User, error) {
	var missing []string
	if input.FullName == "" {
		missing = append(missing, "fullname is required")
	}
	if input.Email == "" {
		missing = append(missing, "email is required")
	}
	if input.Username == "" {
		missing = append(missing, "username is required")
	}
	if input.Password == "" {
		missing = append(missing, "password is required")
	}
	if len(missing) > 0 {
		return nil, apperr.BadRequest("all fields are required", missing...)
	}
	if avatar.Reader == nil {
		return nil, apperr.BadRequest("avatar is required")
	}
	if coverImage.Reader == nil {
		return nil, apperr.BadRequest("cover image is required")
	}

	if _, err := uc.userRepo.FindByUsernameOrEmail(input.Username, input.Email); err == nil {
		return nil, apperr.Conflict("user with this username or email already exists")
	}

	hashedPassword, err := uc.tokenService.HashPassword(input.Password)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, apperr.Internal("failed to process registration")
	}

	userID := uuid.New().String()

	avatarKey := storage.AvatarKey(userID, avatar.Ext)
	avatarURL, err := uc.mediaStore.UploadFile(avatarKey, avatar.Reader, avatar.ContentType)
	if err != nil {
		uc.logger.Error("Failed to upload avatar: %v", err)
		return nil, apperr.Internal("failed to upload avatar")
	}

	coverKey := storage.CoverImageKey(userID, coverImage.Ext)
	coverURL, err := uc.mediaStore.UploadFile(coverKey, coverImage.Reader, coverImage.ContentType)
	if err != nil {
		uc.logger.Error("Failed to upload cover image: %v", err)
		uc.cleanupMedia(avatarKey)
		return nil, apperr.Internal("failed to upload cover image")
	}

	user := &entity.User{
		ID:            userID,
		FullName:      input.FullName,
		Email:         input.Email,
		Username:      input.Username,
		Password:      hashedPassword,
		AvatarURL:     avatarURL,
		CoverImageURL: coverURL,
	}

	if err := uc.userRepo.Create(user); err != nil {
		uc.logger.Error("Failed to create user: %v", err)
		// Best-effort cleanup of the uploaded media; its outcome never
		// masks the creation error
		uc.cleanupMedia(avatarKey, coverKey)
		if apperr.IsConflict(err) {
			return nil, apperr.Conflict("user with this username or email already exists")
		}
		return nil, apperr.Internal("failed to register user")
	}

	return user.Sanitize(), nil
}

func (uc *authUseCase) Login(email, username, password string) (*entity.User, *TokenPair, error) {
	var missing []string
	if email == "" {
		missing = append(missing, "email is required")
	}
	if username == "" {
		missing = append(missing, "username is required")
	}
	if password == "" {
		missing = append(missing, "password is required")
	}
	if len(missing) > 0 {
		return nil, nil, apperr.BadRequest("all fields are required", missing...)
	}

	user, err := uc.userRepo.FindByUsernameOrEmail(username, email)
	if err != nil {
		return nil, nil, apperr.NotFound("user not found")
	}

	if !uc.tokenService.CheckPassword(password, user.Password) {
		return nil, nil, apperr.Unauthorized("invalid credentials")
	}

	pair, err := uc.RotateTokens(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user.Sanitize(), pair, nil
}

// RotateTokens mints a fresh pair and persists the new refresh token,
// overwriting whatever was stored before.
func (uc *authUseCase) RotateTokens(userID string) (*TokenPair, error) {
	user, err := uc.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperr.NotFound("user not found")
	}

	pair, err := uc.generatePair(user)
	if err != nil {
		return nil, err
	}

	if err := uc.userRepo.UpdateRefreshToken(user.ID, pair.RefreshToken); err != nil {
		uc.logger.Error("Failed to persist refresh token: %v", err)
		return nil, apperr.Internal("failed to rotate tokens")
	}

	return pair, nil
}

// Refresh validates a presented refresh token, rejects anything stale
// or reused, and rotates the pair. The stored-token swap is a
// compare-and-swap so two concurrent refreshes cannot both win.
func (uc *authUseCase) Refresh(presentedToken string) (*TokenPair, error) {
	if presentedToken == "" {
		return nil, apperr.Unauthorized("refresh token is required")
	}

	claims, err := uc.tokenService.ValidateRefreshToken(presentedToken)
	if err != nil {
		return nil, apperr.Unauthorized("invalid or expired refresh token")
	}

	user, err := uc.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("invalid refresh token")
	}

	// A mismatch means the presented token was already rotated out:
	// either it is stale or it is being replayed
	if subtle.ConstantTimeCompare([]byte(presentedToken), []byte(user.RefreshToken)) != 1 {
		return nil, apperr.Unauthorized("invalid refresh token")
	}

	pair, err := uc.generatePair(user)
	if err != nil {
		return nil, err
	}

	swapped, err := uc.userRepo.SwapRefreshToken(user.ID, presentedToken, pair.RefreshToken)
	if err != nil {
		uc.logger.Error("Failed to persist refresh token: %v", err)
		return nil, apperr.Internal("failed to refresh tokens")
	}
	if !swapped {
		return nil, apperr.Unauthorized("invalid refresh token")
	}

	return pair, nil
}

func (uc *authUseCase) Logout(userID string) error {
	if err := uc.userRepo.ClearRefreshToken(userID); err != nil {
		uc.logger.Error("Failed to clear refresh token: %v", err)
		return apperr.Internal("failed to log out")
	}
	return nil
}

func (uc *authUseCase) ChangePassword(userID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return apperr.BadRequest("old and new password are required")
	}

	user, err := uc.userRepo.FindByID(userID)
	if err != nil {
		return apperr.NotFound("user not found")
	}

	if !uc.tokenService.CheckPassword(oldPassword, user.Password) {
		return apperr.Unauthorized("invalid old password")
	}

	hashedPassword, err := uc.tokenService.HashPassword(newPassword)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return apperr.Internal("failed to change password")
	}

	if err := uc.userRepo.SetPassword(userID, hashedPassword); err != nil {
		uc.logger.Error("Failed to set password: %v", err)
		return apperr.Internal("failed to change password")
	}
	return nil
}

func (uc *authUseCase) UpdateAccount(userID, fullName, email, username string) (*entity.User, error) {
	var missing []string
	if fullName == "" {
		missing = append(missing, "fullname is required")
	}
	if email == "" {
		missing = append(missing, "email is required")
	}
	if username == "" {
		missing = append(missing, "username is required")
	}
	if len(missing) > 0 {
		return nil, apperr.BadRequest("all fields are required", missing...)
	}

	user, err := uc.userRepo.UpdateFields(userID, entity.UserUpdate{
		FullName: &fullName,
		Email:    &email,
		Username: &username,
	})
	if err != nil {
		if apperr.IsConflict(err) {
			return nil, apperr.Conflict("username or email already taken")
		}
		return nil, apperr.Wrap(err, "failed to update account")
	}

	return user.Sanitize(), nil
}

func (uc *authUseCase) UpdateAvatar(userID string, avatar Upload) (*entity.User, error) {
	if avatar.Reader == nil {
		return nil, apperr.BadRequest("avatar file is required")
	}

	current, err := uc.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperr.NotFound("user not found")
	}

	avatarURL, err := uc.mediaStore.UploadFile(storage.AvatarKey(userID, avatar.Ext), avatar.Reader, avatar.ContentType)
	if err != nil {
		uc.logger.Error("Failed to upload avatar: %v", err)
		return nil, apperr.Internal("failed to upload avatar")
	}

	user, err := uc.userRepo.UpdateFields(userID, entity.UserUpdate{AvatarURL: &avatarURL})
	if err != nil {
		return nil, apperr.Wrap(err, "failed to update avatar")
	}

	if key := uc.mediaStore.KeyFromURL(current.AvatarURL); key != "" {
		uc.cleanupMedia(key)
	}

	return user.Sanitize(), nil
}

func (uc *authUseCase) UpdateCoverImage(userID string, coverImage Upload) (*entity.User, error) {
	if coverImage.Reader == nil {
		return nil, apperr.BadRequest("cover image file is required")
	}

	current, err := uc.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperr.NotFound("user not found")
	}

	coverURL, err := uc.mediaStore.UploadFile(storage.CoverImageKey(userID, coverImage.Ext), coverImage.Reader, coverImage.ContentType)
	if err != nil {
		uc.logger.Error("Failed to upload cover image: %v", err)
		return nil, apperr.Internal("failed to upload cover image")
	}

	user, err := uc.userRepo.UpdateFields(userID, entity.UserUpdate{CoverImageURL: &coverURL})
	if err != nil {
		return nil, apperr.Wrap(err, "failed to update cover image")
	}

	if key := uc.mediaStore.KeyFromURL(current.CoverImageURL); key != "" {
		uc.cleanupMedia(key)
	}

	return user.Sanitize(), nil
}

func (uc *authUseCase) GetCurrentUser(userID string) (*entity.User, error) {
	user, err := uc.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperr.NotFound("user not found")
	}
	return user.Sanitize(), nil
}

func (uc *authUseCase) generatePair(user *entity.User) (*TokenPair, error) {
	accessToken, err := uc.tokenService.GenerateAccessToken(token.Identity{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		FullName: user.FullName,
	})
	if err != nil {
		uc.logger.Error("Failed to generate access token: %v", err)
		return nil, apperr.Internal("failed to generate tokens")
	}

	refreshToken, err := uc.tokenService.GenerateRefreshToken(user.ID)
	if err != nil {
		uc.logger.Error("Failed to generate refresh token: %v", err)
		return nil, apperr.Internal("failed to generate tokens")
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (uc *authUseCase) cleanupMedia(keys ...string) {
	for _, key := range keys {
		if err := uc.mediaStore.DeleteFile(key); err != nil {
			uc.logger.Warn("Failed to delete uploaded media %s: %v", key, err)
		}
	}
}
