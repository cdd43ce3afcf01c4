package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"omnipost/domain/dto"
	"omnipost/domain/model"
	"omnipost/infrastructure/cache"
	"omnipost/usecase"
)

type MockYouTubeOAuth struct {
	mock.Mock
}

func (m *MockYouTubeOAuth) AuthCodeURL(creds *model.PlatformCredentials, state string) (string, error) {
	args := m.Called(creds, state)
	return args.String(0), args.Error(1)
}

func (m *MockYouTubeOAuth) Exchange(ctx context.Context, creds *model.PlatformCredentials, code string) (*model.OAuthGrant, error) {
	args := m.Called(ctx, creds, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OAuthGrant), args.Error(1)
}

func (m *MockYouTubeOAuth) ChannelTitle(ctx context.Context, creds *model.PlatformCredentials, grant *model.OAuthGrant) (string, error) {
	args := m.Called(ctx, creds, grant)
	return args.String(0), args.Error(1)
}

func newAccountFixture() (*MockPlatformCredentials, *MockSocialAccount, *MockYouTubeOAuth, *MockInstagram, usecase.IAccountUsecase) {
	credentials := new(MockPlatformCredentials)
	accounts := new(MockSocialAccount)
	youtube := new(MockYouTubeOAuth)
	instagram := new(MockInstagram)
	uc := usecase.NewAccountUsecase(credentials, accounts, cache.NewMemoryStateStore(), youtube, instagram)
	return credentials, accounts, youtube, instagram, uc
}

func TestSaveCredentialsRejectsUnknownPlatform(t *testing.T) {
	_, _, _, _, uc := newAccountFixture()
	err := uc.SaveCredentials(context.Background(), "user-1", "myspace", dto.ReqSaveCredentials{
		ClientID:     "id",
		ClientSecret: "secret",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported platform")
}

func TestSaveCredentialsUpserts(t *testing.T) {
	credentials, _, _, _, uc := newAccountFixture()
	credentials.On("UpsertCredentials", mock.Anything, mock.MatchedBy(func(c *model.PlatformCredentials) bool {
		return c.UserID == "user-1" && c.Platform == model.PlatformYouTube && c.ClientID == "id" && c.ClientSecret == "secret"
	})).Return(nil)

	err := uc.SaveCredentials(context.Background(), "user-1", model.PlatformYouTube, dto.ReqSaveCredentials{
		ClientID:     "id",
		ClientSecret: "secret",
	})
	require.NoError(t, err)
	credentials.AssertExpectations(t)
}

func TestGetCredentialsRedactsSecret(t *testing.T) {
	credentials, _, _, _, uc := newAccountFixture()
	credentials.On("GetCredentials", mock.Anything, "user-1", model.PlatformTwitter).
		Return(&model.PlatformCredentials{ClientID: "api-key", ClientSecret: "api-secret"}, nil)

	status, err := uc.GetCredentials(context.Background(), "user-1", model.PlatformTwitter)
	require.NoError(t, err)
	assert.Equal(t, "api-key", status.ClientID)
	assert.True(t, status.Configured)
}

func TestListAccountsStripsTokens(t *testing.T) {
	_, accounts, _, _, uc := newAccountFixture()
	accounts.On("ListAccounts", mock.Anything, "user-1").Return([]*model.SocialMediaAccount{
		{ID: "acc-1", Platform: model.PlatformTwitter, AccessToken: "tok", TokenSecret: "sec"},
		{ID: "acc-2", Platform: model.PlatformFacebook, AccessToken: "tok2", PageAccessToken: "page-tok"},
	}, nil)

	list, err := uc.ListAccounts(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, account := range list {
		assert.Empty(t, account.AccessToken)
		assert.Empty(t, account.RefreshToken)
		assert.Empty(t, account.TokenSecret)
		assert.Empty(t, account.PageAccessToken)
	}
}

func TestConnectYouTubeStoresGrant(t *testing.T) {
	credentials, accounts, youtube, _, uc := newAccountFixture()
	creds := &model.PlatformCredentials{ClientID: "id", ClientSecret: "secret"}
	grant := &model.OAuthGrant{AccessToken: "tok1", RefreshToken: "ref1"}

	credentials.On("GetCredentials", mock.Anything, "user-1", model.PlatformYouTube).Return(creds, nil)
	youtube.On("Exchange", mock.Anything, creds, "the-code").Return(grant, nil)
	youtube.On("ChannelTitle", mock.Anything, creds, grant).Return("My Channel", nil)
	accounts.On("UpsertAccount", mock.Anything, mock.MatchedBy(func(a *model.SocialMediaAccount) bool {
		return a.Platform == model.PlatformYouTube &&
			a.Username == "My Channel" &&
			a.AccessToken == "tok1" &&
			a.RefreshToken == "ref1" &&
			a.Connected
	})).Return(nil)

	err := uc.ConnectYouTube(context.Background(), "user-1", "the-code")
	require.NoError(t, err)
	accounts.AssertExpectations(t)
}

func TestConnectInstagramStoresBothAccounts(t *testing.T) {
	credentials, accounts, _, instagram, uc := newAccountFixture()
	creds := &model.PlatformCredentials{ClientID: "id", ClientSecret: "secret"}

	credentials.On("GetCredentials", mock.Anything, "user-1", model.PlatformInstagram).Return(creds, nil)
	instagram.On("Exchange", mock.Anything, creds, "the-code").Return("short-lived", nil)
	instagram.On("ExchangeLongLived", mock.Anything, creds, "short-lived").Return("long-lived", nil)
	instagram.On("UserDetails", mock.Anything, "long-lived").Return(&dto.InstagramProfile{
		Username:         "brandgram",
		InstagramID:      "ig-1",
		FacebookPageID:   "666",
		FacebookPageName: "Brand Page",
		PageAccessToken:  "page-token",
	}, nil)
	accounts.On("UpsertAccount", mock.Anything, mock.MatchedBy(func(a *model.SocialMediaAccount) bool {
		return a.Platform == model.PlatformInstagram &&
			a.Username == "brandgram" &&
			a.InstagramID == "ig-1" &&
			a.AccessToken == "long-lived"
	})).Return(nil).Once()
	accounts.On("UpsertAccount", mock.Anything, mock.MatchedBy(func(a *model.SocialMediaAccount) bool {
		return a.Platform == model.PlatformFacebook &&
			a.FacebookPageID == "666" &&
			a.PageAccessToken == "page-token"
	})).Return(nil).Once()

	err := uc.ConnectInstagram(context.Background(), "user-1", "the-code")
	require.NoError(t, err)
	accounts.AssertExpectations(t)
}

func TestConnectInstagramKeepsShortLivedOnExchangeFailure(t *testing.T) {
	credentials, accounts, _, instagram, uc := newAccountFixture()
	creds := &model.PlatformCredentials{ClientID: "id", ClientSecret: "secret"}

	credentials.On("GetCredentials", mock.Anything, "user-1", model.PlatformInstagram).Return(creds, nil)
	instagram.On("Exchange", mock.Anything, creds, "the-code").Return("short-lived", nil)
	instagram.On("ExchangeLongLived", mock.Anything, creds, "short-lived").Return("", assert.AnError)
	instagram.On("UserDetails", mock.Anything, "short-lived").Return(&dto.InstagramProfile{
		Username:    "brandgram",
		InstagramID: "ig-1",
	}, nil)
	accounts.On("UpsertAccount", mock.Anything, mock.MatchedBy(func(a *model.SocialMediaAccount) bool {
		return a.AccessToken == "short-lived"
	})).Return(nil)

	err := uc.ConnectInstagram(context.Background(), "user-1", "the-code")
	require.NoError(t, err)
	accounts.AssertExpectations(t)
}

func TestConnectTwitterStoresTokenPair(t *testing.T) {
	credentials, accounts, _, _, uc := newAccountFixture()
	credentials.On("GetCredentials", mock.Anything, "user-1", model.PlatformTwitter).
		Return(&model.PlatformCredentials{ClientID: "api-key", ClientSecret: "api-secret"}, nil)
	accounts.On("UpsertAccount", mock.Anything, mock.MatchedBy(func(a *model.SocialMediaAccount) bool {
		return a.Platform == model.PlatformTwitter &&
			a.AccessToken == "access-token" &&
			a.TokenSecret == "access-secret" &&
			a.Username == "handle"
	})).Return(nil)

	err := uc.ConnectTwitter(context.Background(), "user-1", dto.ReqConnectTwitter{
		Username:     "handle",
		AccessToken:  "access-token",
		AccessSecret: "access-secret",
	})
	require.NoError(t, err)
	accounts.AssertExpectations(t)
}

func TestConnectTwitterRequiresCredentials(t *testing.T) {
	credentials, _, _, _, uc := newAccountFixture()
	credentials.On("GetCredentials", mock.Anything, "user-1", model.PlatformTwitter).
		Return(nil, assert.AnError)

	err := uc.ConnectTwitter(context.Background(), "user-1", dto.ReqConnectTwitter{
		Username:     "handle",
		AccessToken:  "access-token",
		AccessSecret: "access-secret",
	})
	require.Error(t, err)
}

func TestYouTubeAuthURLBindsState(t *testing.T) {
	credentials, _, youtube, _, uc := newAccountFixture()
	creds := &model.PlatformCredentials{ClientID: "id", ClientSecret: "secret"}
	credentials.On("GetCredentials", mock.Anything, "user-1", model.PlatformYouTube).Return(creds, nil)
	youtube.On("AuthCodeURL", creds, mock.MatchedBy(func(state string) bool { return len(state) == 32 })).
		Return("https://accounts.google.com/o/oauth2/auth?state=abc", nil)

	authURL, err := uc.YouTubeAuthURL(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Contains(t, authURL, "accounts.google.com")
	youtube.AssertExpectations(t)
}
