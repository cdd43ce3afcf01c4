package facebook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"omnipost/domain/repository"

	"github.com/google/go-querystring/query"
)

const defaultGraphURL = "https://graph.facebook.com/v20.0"

// Client talks to the Facebook Graph API for page-scoped photo publishing.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient() repository.IFacebook {
	return &Client{baseURL: defaultGraphURL, httpClient: http.DefaultClient}
}

// NewClientWithBaseURL points the client at a different Graph host (tests).
func NewClientWithBaseURL(baseURL string, httpClient *http.Client) repository.IFacebook {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// AppSecretProof computes the HMAC-SHA256 hex digest the Graph API requires
// on server-side calls: key is the app secret, message is the access token.
func AppSecretProof(appSecret, accessToken string) string {
	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write([]byte(accessToken))
	return hex.EncodeToString(mac.Sum(nil))
}

type graphErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// graphError extracts the upstream error message from a non-2xx Graph response.
func graphError(op string, status int, body []byte) error {
	var ge graphErrorBody
	if err := json.Unmarshal(body, &ge); err == nil && ge.Error.Message != "" {
		return fmt.Errorf("%s failed: %s", op, ge.Error.Message)
	}
	return fmt.Errorf("%s failed with status %d", op, status)
}

type accountsParams struct {
	Fields         string `url:"fields"`
	AccessToken    string `url:"access_token"`
	AppSecretProof string `url:"appsecret_proof"`
}

type pageEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccessToken string `json:"access_token"`
}

// PageToken lists the user's pages and returns the page-scoped access token
// for the target page. The call is authenticated with an appsecret_proof
// derived from the user token.
func (c *Client) PageToken(ctx context.Context, userToken, appSecret, pageID string) (string, error) {
	if userToken == "" {
		return "", fmt.Errorf("facebook user access token is required")
	}
	params, _ := query.Values(accountsParams{
		Fields:         "id,name,access_token",
		AccessToken:    userToken,
		AppSecretProof: AppSecretProof(appSecret, userToken),
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/me/accounts?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to list facebook pages: %w", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", graphError("list facebook pages", resp.StatusCode, body)
	}

	var pages struct {
		Data []pageEntry `json:"data"`
	}
	if err := json.Unmarshal(body, &pages); err != nil {
		return "", fmt.Errorf("failed to parse facebook pages response: %w", err)
	}
	for _, page := range pages.Data {
		if page.ID == pageID {
			if page.AccessToken == "" {
				return "", fmt.Errorf("page %s has no access token", pageID)
			}
			return page.AccessToken, nil
		}
	}
	return "", fmt.Errorf("page %s not found in the user's page list", pageID)
}

// PublishPhoto posts a hosted image URL with a caption to the page's /photos
// edge and returns the created post id.
func (c *Client) PublishPhoto(ctx context.Context, pageID, pageToken, imageURL, caption string) (string, error) {
	if imageURL == "" {
		return "", fmt.Errorf("image url is required")
	}
	form := url.Values{}
	form.Set("url", imageURL)
	if caption != "" {
		form.Set("caption", caption)
	}
	form.Set("access_token", pageToken)

	endpoint := fmt.Sprintf("%s/%s/photos", c.baseURL, url.PathEscape(pageID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to publish facebook photo: %w", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", graphError("publish facebook photo", resp.StatusCode, body)
	}

	var result struct {
		ID     string `json:"id"`
		PostID string `json:"post_id"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse facebook photo response: %w", err)
	}
	if result.PostID != "" {
		return result.PostID, nil
	}
	if result.ID == "" {
		return "", fmt.Errorf("facebook response contained no post id")
	}
	return result.ID, nil
}
