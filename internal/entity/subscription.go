package entity

import "time"

// Subscription is a directed edge: subscriber follows channel. Both
// sides reference users.
type Subscription struct {
	ID           string    `json:"id"`
	SubscriberID string    `json:"subscriber_id"`
	ChannelID    string    `json:"channel_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ChannelProfile is the restricted projection returned for a channel
// page: identity plus derived social-graph fields.
type ChannelProfile struct {
	ID              string `json:"id"`
	FullName        string `json:"fullname"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	AvatarURL       string `json:"avatar"`
	CoverImageURL   string `json:"coverImage"`
	SubscriberCount int64  `json:"subscribersCount"`
	SubscribedTo    int64  `json:"channelsSubscribedTo"`
	IsSubscribed    bool   `json:"isSubscribed"`
}
