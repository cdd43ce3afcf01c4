package youtube

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"omnipost/domain/dto"
	"omnipost/domain/model"
	"omnipost/domain/repository"
	"omnipost/infrastructure/configuration"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	youtube "google.golang.org/api/youtube/v3"
)

const (
	uploadCategoryID    = "22" // People & Blogs
	uploadPrivacyStatus = "private"
)

// Uploader publishes videos through videos.insert with a refreshing OAuth2
// client. Rotated access tokens are handed to the notify callback so the
// stored account can be updated without blocking the upload.
type Uploader struct {
	redirectURI string
	endpoint    oauth2.Endpoint
	notify      func(accountID, accessToken string)
}

func NewUploader(notify func(accountID, accessToken string)) repository.IYouTubeUploader {
	return &Uploader{
		redirectURI: configuration.C.OAuth.YouTube.RedirectURI,
		endpoint:    google.Endpoint,
		notify:      notify,
	}
}

// Upload decodes the media data URI and runs a resumable insert with fixed
// metadata. A missing refresh token is a hard precondition failure.
func (u *Uploader) Upload(ctx context.Context, account *model.SocialMediaAccount, creds *model.PlatformCredentials, req *dto.PublishRequest) (*dto.PublishResult, error) {
	if account.RefreshToken == "" {
		return nil, fmt.Errorf("youtube account %s has no refresh token; reconnect the account", account.ID)
	}
	mimeType, media, err := ParseDataURI(req.MediaDataURI)
	if err != nil {
		return nil, err
	}

	config, err := oauthConfig(creds, u.redirectURI, u.endpoint)
	if err != nil {
		return nil, err
	}
	token := &oauth2.Token{
		AccessToken:  account.AccessToken,
		RefreshToken: account.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(-1 * time.Minute), // force refresh on first use
	}
	source := newNotifyingTokenSource(config.TokenSource(ctx, token), account.AccessToken, func(accessToken string) {
		if u.notify != nil {
			u.notify(account.ID, accessToken)
		}
	})
	service, err := youtube.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	tags := req.Tags
	if len(tags) == 0 {
		tags = []string{"OmniPost"}
	}
	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       req.Title,
			Description: req.Description,
			Tags:        tags,
			CategoryId:  uploadCategoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus: uploadPrivacyStatus,
		},
	}

	call := service.Videos.Insert([]string{"snippet", "status"}, video).
		Media(bytes.NewReader(media), googleapi.ContentType(mimeType))
	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to upload video: %w", err)
	}
	return &dto.PublishResult{
		VideoID: response.Id,
		URL:     fmt.Sprintf("https://www.youtube.com/watch?v=%s", response.Id),
	}, nil
}
