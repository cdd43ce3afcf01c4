package usecase

import (
	"context"
	"fmt"

	"omnipost/domain/dto"
	"omnipost/domain/model"
	"omnipost/domain/repository"
	"omnipost/infrastructure/cache"
	"omnipost/infrastructure/logger"
	"omnipost/infrastructure/utils"
)

// IAccountUsecase manages platform credentials, OAuth connect flows and the
// lifecycle of connected social accounts.
type IAccountUsecase interface {
	SaveCredentials(ctx context.Context, userID, platform string, req dto.ReqSaveCredentials) error
	GetCredentials(ctx context.Context, userID, platform string) (*dto.CredentialsStatus, error)
	ListAccounts(ctx context.Context, userID string) ([]*model.SocialMediaAccount, error)
	Disconnect(ctx context.Context, userID, accountID string) error

	YouTubeAuthURL(ctx context.Context, userID string) (string, error)
	InstagramAuthURL(ctx context.Context, userID string) (string, error)
	ConnectYouTube(ctx context.Context, userID, code string) error
	ConnectInstagram(ctx context.Context, userID, code string) error
	ConnectTwitter(ctx context.Context, userID string, req dto.ReqConnectTwitter) error
}

type AccountUsecase struct {
	credentials repository.IPlatformCredentials
	accounts    repository.ISocialAccount
	states      cache.IStateStore
	youtube     repository.IYouTubeOAuth
	instagram   repository.IInstagram
}

func NewAccountUsecase(
	credentials repository.IPlatformCredentials,
	accounts repository.ISocialAccount,
	states cache.IStateStore,
	youtube repository.IYouTubeOAuth,
	instagram repository.IInstagram,
) IAccountUsecase {
	return &AccountUsecase{
		credentials: credentials,
		accounts:    accounts,
		states:      states,
		youtube:     youtube,
		instagram:   instagram,
	}
}

func (u *AccountUsecase) SaveCredentials(ctx context.Context, userID, platform string, req dto.ReqSaveCredentials) error {
	switch platform {
	case model.PlatformYouTube, model.PlatformInstagram, model.PlatformFacebook, model.PlatformTwitter:
	default:
		return fmt.Errorf("unsupported platform: %s", platform)
	}
	now := utils.GetCurrentTime()
	creds := &model.PlatformCredentials{
		UserID:       userID,
		Platform:     platform,
		ClientID:     req.ClientID,
		ClientSecret: req.ClientSecret,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return u.credentials.UpsertCredentials(ctx, creds)
}

func (u *AccountUsecase) GetCredentials(ctx context.Context, userID, platform string) (*dto.CredentialsStatus, error) {
	creds, err := u.credentials.GetCredentials(ctx, userID, platform)
	if err != nil {
		return &dto.CredentialsStatus{Platform: platform}, nil
	}
	return &dto.CredentialsStatus{
		Platform:   platform,
		ClientID:   creds.ClientID,
		Configured: creds.ClientSecret != "",
	}, nil
}

func (u *AccountUsecase) ListAccounts(ctx context.Context, userID string) ([]*model.SocialMediaAccount, error) {
	accounts, err := u.accounts.ListAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	// tokens stay server side
	for _, account := range accounts {
		account.AccessToken = ""
		account.RefreshToken = ""
		account.TokenSecret = ""
		account.PageAccessToken = ""
	}
	return accounts, nil
}

func (u *AccountUsecase) Disconnect(ctx context.Context, userID, accountID string) error {
	return u.accounts.DeleteAccount(ctx, userID, accountID)
}

func (u *AccountUsecase) YouTubeAuthURL(ctx context.Context, userID string) (string, error) {
	creds, err := u.credentials.GetCredentials(ctx, userID, model.PlatformYouTube)
	if err != nil {
		return "", err
	}
	state := cache.NewState()
	if err := u.states.SaveState(ctx, state, userID); err != nil {
		return "", fmt.Errorf("failed to save oauth state: %w", err)
	}
	return u.youtube.AuthCodeURL(creds, state)
}

func (u *AccountUsecase) InstagramAuthURL(ctx context.Context, userID string) (string, error) {
	creds, err := u.credentials.GetCredentials(ctx, userID, model.PlatformInstagram)
	if err != nil {
		return "", err
	}
	state := cache.NewState()
	if err := u.states.SaveState(ctx, state, userID); err != nil {
		return "", fmt.Errorf("failed to save oauth state: %w", err)
	}
	return u.instagram.AuthCodeURL(creds, state)
}

// ConnectYouTube finishes the authorization code flow and stores the channel
// as a connected account.
func (u *AccountUsecase) ConnectYouTube(ctx context.Context, userID, code string) error {
	creds, err := u.credentials.GetCredentials(ctx, userID, model.PlatformYouTube)
	if err != nil {
		return err
	}
	grant, err := u.youtube.Exchange(ctx, creds, code)
	if err != nil {
		return err
	}
	username, err := u.youtube.ChannelTitle(ctx, creds, grant)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("could not resolve channel title")
		username = "YouTube Channel"
	}
	now := utils.GetCurrentTime()
	account := &model.SocialMediaAccount{
		UserID:       userID,
		Platform:     model.PlatformYouTube,
		Username:     username,
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		Connected:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return u.accounts.UpsertAccount(ctx, account)
}

// ConnectInstagram exchanges the code, upgrades to a long-lived token and
// stores the business account. A linked Facebook page is stored as a second
// connected account so photo publishing works without another flow.
func (u *AccountUsecase) ConnectInstagram(ctx context.Context, userID, code string) error {
	creds, err := u.credentials.GetCredentials(ctx, userID, model.PlatformInstagram)
	if err != nil {
		return err
	}
	shortLived, err := u.instagram.Exchange(ctx, creds, code)
	if err != nil {
		return err
	}
	longLived, err := u.instagram.ExchangeLongLived(ctx, creds, shortLived)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("long-lived token exchange failed, keeping short-lived token")
		longLived = shortLived
	}
	profile, err := u.instagram.UserDetails(ctx, longLived)
	if err != nil {
		return err
	}

	now := utils.GetCurrentTime()
	account := &model.SocialMediaAccount{
		UserID:      userID,
		Platform:    model.PlatformInstagram,
		Username:    profile.Username,
		AccessToken: longLived,
		InstagramID: profile.InstagramID,
		Connected:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.accounts.UpsertAccount(ctx, account); err != nil {
		return err
	}

	if profile.FacebookPageID != "" {
		page := &model.SocialMediaAccount{
			UserID:           userID,
			Platform:         model.PlatformFacebook,
			Username:         profile.FacebookPageName,
			AccessToken:      longLived,
			FacebookPageID:   profile.FacebookPageID,
			FacebookPageName: profile.FacebookPageName,
			PageAccessToken:  profile.PageAccessToken,
			Connected:        true,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := u.accounts.UpsertAccount(ctx, page); err != nil {
			logger.GetLogger().WithField("error", err).Warn("failed to store linked facebook page")
		}
	}
	return nil
}

func (u *AccountUsecase) ConnectTwitter(ctx context.Context, userID string, req dto.ReqConnectTwitter) error {
	if _, err := u.credentials.GetCredentials(ctx, userID, model.PlatformTwitter); err != nil {
		return err
	}
	now := utils.GetCurrentTime()
	account := &model.SocialMediaAccount{
		UserID:      userID,
		Platform:    model.PlatformTwitter,
		Username:    req.Username,
		AccessToken: req.AccessToken,
		TokenSecret: req.AccessSecret,
		Connected:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return u.accounts.UpsertAccount(ctx, account)
}
