package entity

import "time"

type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullname"`
	AvatarURL     string    `json:"avatar"`
	CoverImageURL string    `json:"coverImage"`
	Password      string    `json:"-"`
	RefreshToken  string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Sanitize strips credential material before the user leaves the
// service boundary.
func (u *User) Sanitize() *User {
	if u == nil {
		return nil
	}
	clean := *u
	clean.Password = ""
	clean.RefreshToken = ""
	return &clean
}

// UserUpdate is an explicit partial-update changeset. Nil fields are
// untouched by the write, which is what keeps unrelated updates from
// ever touching the password column.
type UserUpdate struct {
	Username      *string
	Email         *string
	FullName      *string
	AvatarURL     *string
	CoverImageURL *string
}

func (u UserUpdate) Empty() bool {
	return u.Username == nil && u.Email == nil && u.FullName == nil &&
		u.AvatarURL == nil && u.CoverImageURL == nil
}
