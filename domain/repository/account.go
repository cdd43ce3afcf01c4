package repository

import (
	"context"

	"omnipost/domain/model"
)

// IPlatformCredentials reads/writes per-user, per-platform OAuth app secrets.
type IPlatformCredentials interface {
	UpsertCredentials(ctx context.Context, creds *model.PlatformCredentials) error
	GetCredentials(ctx context.Context, userID, platform string) (*model.PlatformCredentials, error)
}

// ISocialAccount reads/writes connected social media accounts. Publish flows
// must always fetch the latest record before a call; tokens may have been
// rotated since the account was loaded.
type ISocialAccount interface {
	UpsertAccount(ctx context.Context, account *model.SocialMediaAccount) error
	GetAccount(ctx context.Context, userID, accountID string) (*model.SocialMediaAccount, error)
	GetAccountByPlatform(ctx context.Context, userID, platform string) (*model.SocialMediaAccount, error)
	ListAccounts(ctx context.Context, userID string) ([]*model.SocialMediaAccount, error)
	UpdateAccessToken(ctx context.Context, accountID, accessToken string) error
	DeleteAccount(ctx context.Context, userID, accountID string) error
}
