package model

import "time"

// Platform identifiers for connected social accounts
const (
	PlatformYouTube   = "youtube"
	PlatformInstagram = "instagram"
	PlatformFacebook  = "facebook"
	PlatformTwitter   = "twitter"
)

// PlatformCredentials holds per-user app-level OAuth secrets for one platform.
// Saved when the user enters their API keys; read before any OAuth flow.
type PlatformCredentials struct {
	UserID       string    `json:"user_id" bson:"user_id"`
	Platform     string    `json:"platform" bson:"platform"`
	ClientID     string    `json:"client_id" bson:"client_id"`
	ClientSecret string    `json:"client_secret" bson:"client_secret"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// SocialMediaAccount represents one connected platform account for a user.
// Tokens stored here are the single source of truth for publish calls.
type SocialMediaAccount struct {
	ID               string    `json:"id" bson:"_id"`
	UserID           string    `json:"user_id" bson:"user_id"`
	Platform         string    `json:"platform" bson:"platform"`
	Username         string    `json:"username" bson:"username"`
	AccessToken      string    `json:"access_token" bson:"access_token"`
	RefreshToken     string    `json:"refresh_token,omitempty" bson:"refresh_token,omitempty"`
	TokenSecret      string    `json:"token_secret,omitempty" bson:"token_secret,omitempty"` // OAuth 1.0a (twitter)
	InstagramID      string    `json:"instagram_id,omitempty" bson:"instagram_id,omitempty"`
	FacebookPageID   string    `json:"facebook_page_id,omitempty" bson:"facebook_page_id,omitempty"`
	FacebookPageName string    `json:"facebook_page_name,omitempty" bson:"facebook_page_name,omitempty"`
	PageAccessToken  string    `json:"page_access_token,omitempty" bson:"page_access_token,omitempty"`
	Connected        bool      `json:"connected" bson:"connected"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" bson:"updated_at"`
}

// OAuthGrant is the transient result of a code exchange. It is never persisted
// directly; callers map it into SocialMediaAccount fields.
type OAuthGrant struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}
