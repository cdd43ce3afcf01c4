package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"omnipost/domain/dto"
	"omnipost/domain/model"
	"omnipost/domain/repository"
	"omnipost/infrastructure/configuration"
	"omnipost/infrastructure/logger"
)

const (
	defaultOAuthURL = "https://api.instagram.com"
	defaultGraphURL = "https://graph.facebook.com/v20.0"

	containerFinished = "FINISHED"
	containerErrored  = "ERROR"
	instagramScopes   = "user_profile,user_media"
)

// Client implements the Instagram OAuth exchange and the two-step
// container/publish flow against the Graph API.
type Client struct {
	oauthURL     string
	graphURL     string
	redirectURI  string
	httpClient   *http.Client
	pollInterval time.Duration
	pollTimeout  time.Duration
}

func NewClient() repository.IInstagram {
	cfg := configuration.C
	return &Client{
		oauthURL:     defaultOAuthURL,
		graphURL:     defaultGraphURL,
		redirectURI:  cfg.OAuth.Instagram.RedirectURI,
		httpClient:   http.DefaultClient,
		pollInterval: time.Duration(cfg.Publish.ContainerPollIntervalMs) * time.Millisecond,
		pollTimeout:  time.Duration(cfg.Publish.ContainerPollTimeoutMs) * time.Millisecond,
	}
}

// NewClientWithBaseURLs overrides the upstream hosts and poll timings (tests).
func NewClientWithBaseURLs(oauthURL, graphURL, redirectURI string, pollInterval, pollTimeout time.Duration) repository.IInstagram {
	return &Client{
		oauthURL:     strings.TrimRight(oauthURL, "/"),
		graphURL:     strings.TrimRight(graphURL, "/"),
		redirectURI:  redirectURI,
		httpClient:   http.DefaultClient,
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
	}
}

// AuthCodeURL builds the authorization URL with the fixed Basic Display scopes.
func (c *Client) AuthCodeURL(creds *model.PlatformCredentials, state string) (string, error) {
	if creds == nil || creds.ClientID == "" {
		return "", fmt.Errorf("instagram client id is not configured")
	}
	if c.redirectURI == "" {
		return "", fmt.Errorf("instagram redirect uri is not configured")
	}
	u, err := url.Parse(c.oauthURL + "/oauth/authorize")
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("client_id", creds.ClientID)
	q.Set("redirect_uri", c.redirectURI)
	q.Set("scope", instagramScopes)
	q.Set("response_type", "code")
	q.Set("state", state)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

type exchangeResponse struct {
	AccessToken  string `json:"access_token"`
	ErrorMessage string `json:"error_message"`
}

// Exchange converts an authorization code into a short-lived access token.
func (c *Client) Exchange(ctx context.Context, creds *model.PlatformCredentials, code string) (string, error) {
	if creds == nil || creds.ClientID == "" || creds.ClientSecret == "" {
		return "", fmt.Errorf("instagram credentials are not configured")
	}
	form := url.Values{}
	form.Set("client_id", creds.ClientID)
	form.Set("client_secret", creds.ClientSecret)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", c.redirectURI)
	form.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.oauthURL+"/oauth/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("instagram token request failed: %w", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	var data exchangeResponse
	_ = json.Unmarshal(body, &data)
	if resp.StatusCode != http.StatusOK {
		if data.ErrorMessage != "" {
			return "", fmt.Errorf("instagram code exchange failed: %s", data.ErrorMessage)
		}
		return "", graphError("instagram code exchange", resp.StatusCode, body)
	}
	if data.AccessToken == "" {
		if data.ErrorMessage != "" {
			return "", fmt.Errorf("instagram code exchange failed: %s", data.ErrorMessage)
		}
		return "", fmt.Errorf("instagram response contained no access token")
	}
	return data.AccessToken, nil
}

// ExchangeLongLived trades a short-lived token for a long-lived one. The
// short-lived token is insufficient for ongoing publishing.
func (c *Client) ExchangeLongLived(ctx context.Context, creds *model.PlatformCredentials, shortLivedToken string) (string, error) {
	q := url.Values{}
	q.Set("grant_type", "fb_exchange_token")
	q.Set("client_id", creds.ClientID)
	q.Set("client_secret", creds.ClientSecret)
	q.Set("fb_exchange_token", shortLivedToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.graphURL+"/oauth/access_token?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("long-lived token request failed: %w", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", graphError("long-lived token exchange", resp.StatusCode, body)
	}

	var data exchangeResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return "", fmt.Errorf("failed to parse long-lived token response: %w", err)
	}
	if data.AccessToken == "" {
		return "", fmt.Errorf("long-lived token response contained no access token")
	}
	return data.AccessToken, nil
}

// UserDetails resolves the connected profile. A page carrying a linked
// instagram_business_account yields both the Instagram identity and the
// Facebook Page identity; the caller persists the page as a second account.
func (c *Client) UserDetails(ctx context.Context, accessToken string) (*dto.InstagramProfile, error) {
	q := url.Values{}
	q.Set("fields", "id,name,access_token,instagram_business_account{id,username}")
	q.Set("access_token", accessToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.graphURL+"/me/accounts?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("instagram profile request failed: %w", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, graphError("instagram profile lookup", resp.StatusCode, body)
	}

	var pages struct {
		Data []struct {
			ID                       string `json:"id"`
			Name                     string `json:"name"`
			AccessToken              string `json:"access_token"`
			InstagramBusinessAccount *struct {
				ID       string `json:"id"`
				Username string `json:"username"`
			} `json:"instagram_business_account"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &pages); err != nil {
		return nil, fmt.Errorf("failed to parse instagram profile response: %w", err)
	}
	for _, page := range pages.Data {
		if page.InstagramBusinessAccount == nil {
			continue
		}
		return &dto.InstagramProfile{
			Username:         page.InstagramBusinessAccount.Username,
			InstagramID:      page.InstagramBusinessAccount.ID,
			FacebookPageID:   page.ID,
			FacebookPageName: page.Name,
			PageAccessToken:  page.AccessToken,
		}, nil
	}
	return nil, fmt.Errorf("no instagram business account linked to the connected pages")
}

// CreateContainer stages the media on the provider side and returns the
// container's creation id.
func (c *Client) CreateContainer(ctx context.Context, igUserID, accessToken, imageURL, caption string) (string, error) {
	if imageURL == "" {
		return "", fmt.Errorf("image url is required")
	}
	form := url.Values{}
	form.Set("image_url", imageURL)
	if caption != "" {
		form.Set("caption", caption)
	}
	form.Set("access_token", accessToken)

	endpoint := fmt.Sprintf("%s/%s/media", c.graphURL, url.PathEscape(igUserID))
	body, err := c.postForm(ctx, endpoint, form, "create media container")
	if err != nil {
		return "", err
	}
	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse container response: %w", err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("container response contained no creation id")
	}
	return result.ID, nil
}

// WaitForContainer polls the container status until it reaches FINISHED,
// bounded by the configured timeout. This replaces a fixed sleep: provider
// processing time varies and a constant delay races against it.
func (c *Client) WaitForContainer(ctx context.Context, creationID, accessToken string) error {
	if creationID == "" {
		return fmt.Errorf("creation id is required")
	}
	ctx, cancel := context.WithTimeout(ctx, c.pollTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		status, err := c.containerStatus(ctx, creationID, accessToken)
		if err != nil {
			return err
		}
		switch status {
		case containerFinished:
			return nil
		case containerErrored:
			return fmt.Errorf("media container %s failed on the provider side", creationID)
		}
		logger.GetLogger().WithFields(map[string]interface{}{
			"creation_id": creationID,
			"status":      status,
		}).Debug("media container not ready yet")

		select {
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for media container %s", creationID)
		case <-ticker.C:
		}
	}
}

func (c *Client) containerStatus(ctx context.Context, creationID, accessToken string) (string, error) {
	q := url.Values{}
	q.Set("fields", "status_code")
	q.Set("access_token", accessToken)

	endpoint := fmt.Sprintf("%s/%s?%s", c.graphURL, url.PathEscape(creationID), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("container status request failed: %w", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", graphError("container status lookup", resp.StatusCode, body)
	}
	var result struct {
		StatusCode string `json:"status_code"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse container status: %w", err)
	}
	return result.StatusCode, nil
}

// PublishMedia commits a finished container. The creation id must be the one
// returned by CreateContainer.
func (c *Client) PublishMedia(ctx context.Context, igUserID, accessToken, creationID string) (string, error) {
	if creationID == "" {
		return "", fmt.Errorf("creation id is required before media_publish")
	}
	form := url.Values{}
	form.Set("creation_id", creationID)
	form.Set("access_token", accessToken)

	endpoint := fmt.Sprintf("%s/%s/media_publish", c.graphURL, url.PathEscape(igUserID))
	body, err := c.postForm(ctx, endpoint, form, "publish media container")
	if err != nil {
		return "", err
	}
	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse media_publish response: %w", err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("media_publish response contained no media id")
	}
	return result.ID, nil
}

func (c *Client) postForm(ctx context.Context, endpoint string, form url.Values, op string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", op, err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, graphError(op, resp.StatusCode, body)
	}
	return body, nil
}

type graphErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func graphError(op string, status int, body []byte) error {
	var ge graphErrorBody
	if err := json.Unmarshal(body, &ge); err == nil && ge.Error.Message != "" {
		return fmt.Errorf("%s failed: %s", op, ge.Error.Message)
	}
	return fmt.Errorf("%s failed with status %d", op, status)
}
