package persistent

import (
	"strings"

	"vidstream/internal/entity"
	"vidstream/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository is the credential store. Identity lookups are
// case-normalized; all token and password writes go through dedicated
// methods so a partial profile update can never touch them.
type UserRepository interface {
	Create(user *entity.User) error
	FindByID(id string) (*entity.User, error)
	FindByUsername(username string) (*entity.User, error)
	FindByUsernameOrEmail(username, email string) (*entity.User, error)
	UpdateFields(id string, update entity.UserUpdate) (*entity.User, error)
	SetPassword(id, hashedPassword string) error
	UpdateRefreshToken(id, refreshToken string) error
	SwapRefreshToken(id, current, next string) (bool, error)
	ClearRefreshToken(id string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *entity.User) error {
	userModel := ToUserModel(user)
	if userModel.ID == "" {
		userModel.ID = uuid.New().String()
	}
	userModel.Username = strings.ToLower(strings.TrimSpace(userModel.Username))
	userModel.Email = strings.ToLower(strings.TrimSpace(userModel.Email))
	if err := r.db.Create(userModel).Error; err != nil {
		return err
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) FindByID(id string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) FindByUsername(username string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("username = ?", strings.ToLower(strings.TrimSpace(username))).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) FindByUsernameOrEmail(username, email string) (*entity.User, error) {
	var userModel model.UserModel
	err := r.db.
		Where("username = ? OR email = ?",
			strings.ToLower(strings.TrimSpace(username)),
			strings.ToLower(strings.TrimSpace(email))).
		First(&userModel).Error
	if err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) UpdateFields(id string, update entity.UserUpdate) (*entity.User, error) {
	values := map[string]interface{}{}
	if update.Username != nil {
		values["username"] = strings.ToLower(strings.TrimSpace(*update.Username))
	}
	if update.Email != nil {
		values["email"] = strings.ToLower(strings.TrimSpace(*update.Email))
	}
	if update.FullName != nil {
		values["full_name"] = strings.TrimSpace(*update.FullName)
	}
	if update.AvatarURL != nil {
		values["avatar_url"] = *update.AvatarURL
	}
	if update.CoverImageURL != nil {
		values["cover_image_url"] = *update.CoverImageURL
	}

	if len(values) > 0 {
		result := r.db.Model(&model.UserModel{}).Where("id = ?", id).Updates(values)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}

	return r.FindByID(id)
}

func (r *userRepository) SetPassword(id, hashedPassword string) error {
	result := r.db.Model(&model.UserModel{}).Where("id = ?", id).Update("password", hashedPassword)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) UpdateRefreshToken(id, refreshToken string) error {
	result := r.db.Model(&model.UserModel{}).Where("id = ?", id).Update("refresh_token", refreshToken)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SwapRefreshToken replaces the stored refresh token only if it still
// equals current. Two concurrent refreshes racing on one token can both
// pass the equality check upstream; the compare-and-swap here means
// exactly one of them wins.
func (r *userRepository) SwapRefreshToken(id, current, next string) (bool, error) {
	result := r.db.Model(&model.UserModel{}).
		Where("id = ? AND refresh_token = ?", id, current).
		Update("refresh_token", next)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *userRepository) ClearRefreshToken(id string) error {
	return r.db.Model(&model.UserModel{}).Where("id = ?", id).Update("refresh_token", "").Error
}
