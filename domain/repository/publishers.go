package repository

import (
	"context"

	"omnipost/domain/dto"
	"omnipost/domain/model"
)

// TwitterKeys are the four user-supplied OAuth 1.0a secrets.
type TwitterKeys struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
}

// IYouTubeOAuth performs the YouTube OAuth code exchange. App-level
// credentials come from the credential store at call time.
type IYouTubeOAuth interface {
	AuthCodeURL(creds *model.PlatformCredentials, state string) (string, error)
	Exchange(ctx context.Context, creds *model.PlatformCredentials, code string) (*model.OAuthGrant, error)
	ChannelTitle(ctx context.Context, creds *model.PlatformCredentials, grant *model.OAuthGrant) (string, error)
}

// IYouTubeUploader publishes a video through videos.insert.
type IYouTubeUploader interface {
	Upload(ctx context.Context, account *model.SocialMediaAccount, creds *model.PlatformCredentials, req *dto.PublishRequest) (*dto.PublishResult, error)
}

// IInstagram covers both the OAuth exchange and the two-step publish flow.
type IInstagram interface {
	AuthCodeURL(creds *model.PlatformCredentials, state string) (string, error)
	Exchange(ctx context.Context, creds *model.PlatformCredentials, code string) (string, error)
	ExchangeLongLived(ctx context.Context, creds *model.PlatformCredentials, shortLivedToken string) (string, error)
	UserDetails(ctx context.Context, accessToken string) (*dto.InstagramProfile, error)
	CreateContainer(ctx context.Context, igUserID, accessToken, imageURL, caption string) (string, error)
	WaitForContainer(ctx context.Context, creationID, accessToken string) error
	PublishMedia(ctx context.Context, igUserID, accessToken, creationID string) (string, error)
}

// IFacebook publishes photos to a page via the Graph API.
type IFacebook interface {
	PageToken(ctx context.Context, userToken, appSecret, pageID string) (string, error)
	PublishPhoto(ctx context.Context, pageID, pageToken, imageURL, caption string) (string, error)
}

// ITwitter posts a text-only tweet with OAuth 1.0a signed requests.
type ITwitter interface {
	PostTweet(ctx context.Context, keys TwitterKeys, text string) (*dto.PublishResult, error)
}
