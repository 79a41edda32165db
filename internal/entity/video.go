package entity

import "time"

type Video struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"videoFile"`
	ThumbnailURL string    `json:"thumbnail"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	IsPublished  bool      `json:"isPublished"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Owner is the restricted owner projection embedded in watch-history
// and comment listings.
type Owner struct {
	ID        string `json:"id"`
	FullName  string `json:"fullname"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar"`
}

// WatchEntry is one resolved watch-history item: the video plus its
// owner as a single object, ordered most-recent-first.
type WatchEntry struct {
	Video     Video     `json:"video"`
	Owner     Owner     `json:"owner"`
	WatchedAt time.Time `json:"watchedAt"`
}
