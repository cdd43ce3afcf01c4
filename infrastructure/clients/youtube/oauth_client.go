package youtube

import (
	"context"
	"errors"
	"fmt"

	"omnipost/domain/model"
	"omnipost/domain/repository"
	"omnipost/infrastructure/configuration"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	youtube "google.golang.org/api/youtube/v3"
)

// OAuthClient performs the YouTube authorization-code exchange. App-level
// client id/secret pairs come from the credential store per call.
type OAuthClient struct {
	redirectURI string
	endpoint    oauth2.Endpoint
}

func NewOAuthClient() repository.IYouTubeOAuth {
	return &OAuthClient{
		redirectURI: configuration.C.OAuth.YouTube.RedirectURI,
		endpoint:    google.Endpoint,
	}
}

// NewOAuthClientWithEndpoint overrides the provider endpoint (tests).
func NewOAuthClientWithEndpoint(redirectURI string, endpoint oauth2.Endpoint) repository.IYouTubeOAuth {
	return &OAuthClient{redirectURI: redirectURI, endpoint: endpoint}
}

func oauthConfig(creds *model.PlatformCredentials, redirectURI string, endpoint oauth2.Endpoint) (*oauth2.Config, error) {
	if creds == nil || creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, fmt.Errorf("youtube client id/secret are not configured")
	}
	if redirectURI == "" {
		return nil, fmt.Errorf("youtube redirect uri is not configured")
	}
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  redirectURI,
		Scopes: []string{
			youtube.YoutubeUploadScope,
			youtube.YoutubeReadonlyScope,
		},
		Endpoint: endpoint,
	}, nil
}

// AuthCodeURL builds the authorization URL requesting offline access so a
// refresh token is issued.
func (c *OAuthClient) AuthCodeURL(creds *model.PlatformCredentials, state string) (string, error) {
	config, err := oauthConfig(creds, c.redirectURI, c.endpoint)
	if err != nil {
		return "", err
	}
	return config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent")), nil
}

// Exchange converts the authorization code into an access/refresh token pair.
func (c *OAuthClient) Exchange(ctx context.Context, creds *model.PlatformCredentials, code string) (*model.OAuthGrant, error) {
	config, err := oauthConfig(creds, c.redirectURI, c.endpoint)
	if err != nil {
		return nil, err
	}
	token, err := config.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.ErrorDescription != "" {
			return nil, fmt.Errorf("youtube code exchange failed: %s", retrieveErr.ErrorDescription)
		}
		return nil, fmt.Errorf("youtube code exchange failed: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("token response contained no access token")
	}
	if token.Expiry.IsZero() {
		return nil, fmt.Errorf("token response contained no expiry")
	}
	return &model.OAuthGrant{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	}, nil
}

// ChannelTitle resolves the authenticated channel's title for the account
// record's username field.
func (c *OAuthClient) ChannelTitle(ctx context.Context, creds *model.PlatformCredentials, grant *model.OAuthGrant) (string, error) {
	config, err := oauthConfig(creds, c.redirectURI, c.endpoint)
	if err != nil {
		return "", err
	}
	token := &oauth2.Token{
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       grant.Expiry,
	}
	service, err := youtube.NewService(ctx, option.WithTokenSource(config.TokenSource(ctx, token)))
	if err != nil {
		return "", fmt.Errorf("failed to create youtube service: %w", err)
	}
	response, err := service.Channels.List([]string{"snippet"}).Mine(true).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get channel: %w", err)
	}
	if len(response.Items) == 0 {
		return "", fmt.Errorf("no channel found for authenticated user")
	}
	return response.Items[0].Snippet.Title, nil
}
