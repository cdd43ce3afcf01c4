package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"omnipost/domain/dto"
	"omnipost/domain/repository"

	"github.com/dghubble/oauth1"
)

const defaultAPIURL = "https://api.twitter.com"

// Client posts text-only tweets through OAuth 1.0a signed requests built
// from the four user-supplied secrets.
type Client struct {
	baseURL string
}

func NewClient() repository.ITwitter {
	return &Client{baseURL: defaultAPIURL}
}

// NewClientWithBaseURL points the client at a different API host (tests).
func NewClientWithBaseURL(baseURL string) repository.ITwitter {
	return &Client{baseURL: strings.TrimRight(baseURL, "/")}
}

type tweetResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
	Detail string `json:"detail"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// PostTweet creates a tweet and synthesizes the result URL from the returned
// id; the posting handle is not resolved.
func (c *Client) PostTweet(ctx context.Context, keys repository.TwitterKeys, text string) (*dto.PublishResult, error) {
	if keys.APIKey == "" || keys.APISecret == "" || keys.AccessToken == "" || keys.AccessSecret == "" {
		return nil, fmt.Errorf("twitter requires api key/secret and access token/secret")
	}
	if text == "" {
		return nil, fmt.Errorf("tweet text is required")
	}

	config := oauth1.NewConfig(keys.APIKey, keys.APISecret)
	token := oauth1.NewToken(keys.AccessToken, keys.AccessSecret)
	httpClient := config.Client(ctx, token)

	payload, _ := json.Marshal(map[string]string{"text": text})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/2/tweets", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tweet request failed: %w", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	var result tweetResponse
	_ = json.Unmarshal(body, &result)
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		if result.Detail != "" {
			return nil, fmt.Errorf("tweet creation failed: %s", result.Detail)
		}
		if len(result.Errors) > 0 && result.Errors[0].Message != "" {
			return nil, fmt.Errorf("tweet creation failed: %s", result.Errors[0].Message)
		}
		return nil, fmt.Errorf("tweet creation failed with status %d", resp.StatusCode)
	}
	if result.Data.ID == "" {
		return nil, fmt.Errorf("tweet response contained no id")
	}
	return &dto.PublishResult{
		PostID: result.Data.ID,
		URL:    fmt.Sprintf("https://twitter.com/i/web/status/%s", result.Data.ID),
	}, nil
}
