package youtube

import (
	"context"
	"testing"

	"omnipost/domain/dto"
	"omnipost/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadRequiresRefreshToken(t *testing.T) {
	uploader := NewUploader(nil)
	account := &model.SocialMediaAccount{
		ID:          "acc-1",
		Platform:    model.PlatformYouTube,
		AccessToken: "access-only",
	}
	_, err := uploader.Upload(context.Background(), account, testCreds(), &dto.PublishRequest{
		MediaDataURI: "data:video/mp4;base64,AAAA",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no refresh token")
	assert.Contains(t, err.Error(), "acc-1")
}

func TestUploadRejectsBadDataURI(t *testing.T) {
	uploader := NewUploader(nil)
	account := &model.SocialMediaAccount{
		ID:           "acc-1",
		Platform:     model.PlatformYouTube,
		AccessToken:  "access",
		RefreshToken: "refresh",
	}
	_, err := uploader.Upload(context.Background(), account, testCreds(), &dto.PublishRequest{
		MediaDataURI: "https://example.com/video.mp4",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data:")
}
