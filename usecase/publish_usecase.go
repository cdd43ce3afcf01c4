package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"omnipost/domain/dto"
	"omnipost/domain/model"
	"omnipost/domain/repository"
	"omnipost/infrastructure/configuration"
	"omnipost/infrastructure/logger"
	"omnipost/infrastructure/pubsub"
	"omnipost/infrastructure/utils"
)

// ErrHistoryUnavailable is returned when the audit database is not configured.
var ErrHistoryUnavailable = errors.New("publish history is unavailable")

const settleTimeout = 5 * time.Second

// IPublishUsecase runs the cross-platform publish pipeline.
type IPublishUsecase interface {
	Publish(ctx context.Context, userID, platform string, req *dto.PublishRequest) (*dto.PublishResult, error)
	History(ctx context.Context, userID string, limit int) ([]*model.PublishRecord, error)
}

type PublishUsecase struct {
	credentials repository.IPlatformCredentials
	accounts    repository.ISocialAccount
	records     repository.IPublishRecord // optional
	facebook    repository.IFacebook
	instagram   repository.IInstagram
	twitter     repository.ITwitter
	uploader    repository.IYouTubeUploader
	events      *pubsub.EventPublisher // nil-safe
}

func NewPublishUsecase(
	credentials repository.IPlatformCredentials,
	accounts repository.ISocialAccount,
	records repository.IPublishRecord,
	facebook repository.IFacebook,
	instagram repository.IInstagram,
	twitter repository.ITwitter,
	uploader repository.IYouTubeUploader,
	events *pubsub.EventPublisher,
) IPublishUsecase {
	return &PublishUsecase{
		credentials: credentials,
		accounts:    accounts,
		records:     records,
		facebook:    facebook,
		instagram:   instagram,
		twitter:     twitter,
		uploader:    uploader,
		events:      events,
	}
}

// Publish loads the freshest stored account and credentials, records a
// pending audit row, dispatches to the platform client and settles the row.
func (u *PublishUsecase) Publish(ctx context.Context, userID, platform string, req *dto.PublishRequest) (*dto.PublishResult, error) {
	timeout := time.Duration(configuration.C.Publish.RequestTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	account, err := u.accounts.GetAccount(ctx, userID, req.AccountID)
	if err != nil {
		return nil, err
	}
	if account.Platform != platform {
		return nil, fmt.Errorf("account %s is a %s account, not %s", account.ID, account.Platform, platform)
	}

	recordID := u.recordPending(ctx, userID, account.ID, platform)

	var result *dto.PublishResult
	switch platform {
	case model.PlatformFacebook:
		result, err = u.publishFacebook(ctx, userID, account, req)
	case model.PlatformInstagram:
		result, err = u.publishInstagram(ctx, account, req)
	case model.PlatformTwitter:
		result, err = u.publishTwitter(ctx, userID, account, req)
	case model.PlatformYouTube:
		result, err = u.publishYouTube(ctx, userID, account, req)
	default:
		err = fmt.Errorf("unsupported platform: %s", platform)
	}

	if err != nil {
		u.settleRecord(recordID, model.PublishStatusFailed, nil, err)
		return nil, err
	}

	externalRef := result.PostID
	if externalRef == "" {
		externalRef = result.VideoID
	}
	u.settleRecord(recordID, model.PublishStatusSuccess, &externalRef, nil)
	u.events.PostPublished(ctx, pubsub.PostPublishedEvent{
		UserID:      userID,
		AccountID:   account.ID,
		Platform:    platform,
		ExternalRef: externalRef,
		PublishedAt: time.Now(),
	})
	return result, nil
}

func (u *PublishUsecase) History(ctx context.Context, userID string, limit int) ([]*model.PublishRecord, error) {
	if u.records == nil {
		return nil, ErrHistoryUnavailable
	}
	switch {
	case limit <= 0:
		limit = 50
	case limit > 100:
		limit = 100
	}
	return u.records.ListByUser(ctx, userID, limit)
}

func (u *PublishUsecase) publishFacebook(ctx context.Context, userID string, account *model.SocialMediaAccount, req *dto.PublishRequest) (*dto.PublishResult, error) {
	if req.MediaURL == "" {
		return nil, errors.New("media_url is required for facebook photo posts")
	}
	if account.FacebookPageID == "" {
		return nil, fmt.Errorf("account %s has no linked facebook page", account.ID)
	}
	pageToken := account.PageAccessToken
	if pageToken == "" {
		creds, err := u.credentials.GetCredentials(ctx, userID, model.PlatformFacebook)
		if err != nil {
			return nil, err
		}
		pageToken, err = u.facebook.PageToken(ctx, account.AccessToken, creds.ClientSecret, account.FacebookPageID)
		if err != nil {
			return nil, err
		}
	}
	postID, err := u.facebook.PublishPhoto(ctx, account.FacebookPageID, pageToken, req.MediaURL, req.Caption)
	if err != nil {
		return nil, err
	}
	return &dto.PublishResult{
		PostID: postID,
		URL:    fmt.Sprintf("https://www.facebook.com/%s", postID),
	}, nil
}

func (u *PublishUsecase) publishInstagram(ctx context.Context, account *model.SocialMediaAccount, req *dto.PublishRequest) (*dto.PublishResult, error) {
	if req.MediaURL == "" {
		return nil, errors.New("media_url is required for instagram posts")
	}
	if account.InstagramID == "" {
		return nil, fmt.Errorf("account %s has no instagram business account id", account.ID)
	}
	creationID, err := u.instagram.CreateContainer(ctx, account.InstagramID, account.AccessToken, req.MediaURL, req.Caption)
	if err != nil {
		return nil, err
	}
	if err = u.instagram.WaitForContainer(ctx, creationID, account.AccessToken); err != nil {
		return nil, err
	}
	mediaID, err := u.instagram.PublishMedia(ctx, account.InstagramID, account.AccessToken, creationID)
	if err != nil {
		return nil, err
	}
	return &dto.PublishResult{PostID: mediaID}, nil
}

func (u *PublishUsecase) publishTwitter(ctx context.Context, userID string, account *model.SocialMediaAccount, req *dto.PublishRequest) (*dto.PublishResult, error) {
	text := req.Text
	if text == "" {
		text = req.Caption
	}
	creds, err := u.credentials.GetCredentials(ctx, userID, model.PlatformTwitter)
	if err != nil {
		return nil, err
	}
	keys := repository.TwitterKeys{
		APIKey:       creds.ClientID,
		APISecret:    creds.ClientSecret,
		AccessToken:  account.AccessToken,
		AccessSecret: account.TokenSecret,
	}
	return u.twitter.PostTweet(ctx, keys, text)
}

func (u *PublishUsecase) publishYouTube(ctx context.Context, userID string, account *model.SocialMediaAccount, req *dto.PublishRequest) (*dto.PublishResult, error) {
	creds, err := u.credentials.GetCredentials(ctx, userID, model.PlatformYouTube)
	if err != nil {
		return nil, err
	}
	return u.uploader.Upload(ctx, account, creds, req)
}

func (u *PublishUsecase) recordPending(ctx context.Context, userID, accountID, platform string) int64 {
	if u.records == nil {
		return 0
	}
	now := utils.GetCurrentTime()
	id, err := u.records.Insert(ctx, &model.PublishRecord{
		UserID:    userID,
		AccountID: accountID,
		Platform:  platform,
		Status:    model.PublishStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("failed to insert publish record")
		return 0
	}
	return id
}

// settleRecord runs on its own bounded context: when the publish itself hit
// the per-request deadline, the audit row still has to leave pending.
func (u *PublishUsecase) settleRecord(id int64, status string, externalRef *string, cause error) {
	if u.records == nil || id == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), settleTimeout)
	defer cancel()
	var errorMessage *string
	if cause != nil {
		msg := cause.Error()
		errorMessage = &msg
	}
	if err := u.records.UpdateStatus(ctx, id, status, externalRef, errorMessage); err != nil {
		logger.GetLogger().WithField("error", err).WithField("record_id", id).
			Warn("failed to update publish record")
	}
}
