package instagram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"omnipost/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCreds() *model.PlatformCredentials {
	return &model.PlatformCredentials{
		UserID:       "user-1",
		Platform:     model.PlatformInstagram,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	}
}

func newTestClient(serverURL string) *Client {
	return NewClientWithBaseURLs(serverURL, serverURL, "http://localhost/auth/instagram/callback", 10*time.Millisecond, 500*time.Millisecond).(*Client)
}

func TestAuthCodeURL(t *testing.T) {
	client := newTestClient("https://api.instagram.test")
	raw, err := client.AuthCodeURL(testCreds(), "state-nonce")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/oauth/authorize", u.Path)
	assert.Equal(t, "client-id", u.Query().Get("client_id"))
	assert.Equal(t, "state-nonce", u.Query().Get("state"))
	assert.Equal(t, "code", u.Query().Get("response_type"))
	assert.Equal(t, instagramScopes, u.Query().Get("scope"))
}

func TestAuthCodeURLRequiresClientID(t *testing.T) {
	client := newTestClient("https://api.instagram.test")
	_, err := client.AuthCodeURL(&model.PlatformCredentials{}, "state")
	require.Error(t, err)
}

func TestExchange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth/access_token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		w.Write([]byte(`{"access_token":"short-lived-token","user_id":123}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	token, err := client.Exchange(context.Background(), testCreds(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "short-lived-token", token)
}

func TestExchangeUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_type":"OAuthException","code":400,"error_message":"Invalid authorization code"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Exchange(context.Background(), testCreds(), "bad-code")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid authorization code")
}

func TestExchangeNoToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Exchange(context.Background(), testCreds(), "the-code")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no access token")
}

func TestExchangeLongLived(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth/access_token", r.URL.Path)
		assert.Equal(t, "fb_exchange_token", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "short-lived-token", r.URL.Query().Get("fb_exchange_token"))
		w.Write([]byte(`{"access_token":"long-lived-token","token_type":"bearer","expires_in":5184000}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	token, err := client.ExchangeLongLived(context.Background(), testCreds(), "short-lived-token")
	require.NoError(t, err)
	assert.Equal(t, "long-lived-token", token)
}

func TestUserDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/accounts", r.URL.Path)
		w.Write([]byte(`{"data":[
			{"id":"555","name":"Plain Page","access_token":"plain-token"},
			{"id":"666","name":"Brand Page","access_token":"brand-token","instagram_business_account":{"id":"ig-1","username":"brandgram"}}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	profile, err := client.UserDetails(context.Background(), "long-lived-token")
	require.NoError(t, err)
	assert.Equal(t, "brandgram", profile.Username)
	assert.Equal(t, "ig-1", profile.InstagramID)
	assert.Equal(t, "666", profile.FacebookPageID)
	assert.Equal(t, "Brand Page", profile.FacebookPageName)
	assert.Equal(t, "brand-token", profile.PageAccessToken)
}

func TestUserDetailsNoBusinessAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":"555","name":"Plain Page","access_token":"plain-token"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.UserDetails(context.Background(), "long-lived-token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no instagram business account")
}

func TestCreateContainer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ig-1/media", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "https://cdn.example.com/pic.jpg", r.PostForm.Get("image_url"))
		assert.Equal(t, "hello", r.PostForm.Get("caption"))
		w.Write([]byte(`{"id":"creation-42"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	creationID, err := client.CreateContainer(context.Background(), "ig-1", "token", "https://cdn.example.com/pic.jpg", "hello")
	require.NoError(t, err)
	assert.Equal(t, "creation-42", creationID)
}

func TestCreateContainerNoCreationID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.CreateContainer(context.Background(), "ig-1", "token", "https://cdn.example.com/pic.jpg", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no creation id")
}

func TestWaitForContainerFinishes(t *testing.T) {
	var polls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/creation-42", r.URL.Path)
		assert.Equal(t, "status_code", r.URL.Query().Get("fields"))
		if atomic.AddInt32(&polls, 1) < 3 {
			w.Write([]byte(`{"status_code":"IN_PROGRESS"}`))
			return
		}
		w.Write([]byte(`{"status_code":"FINISHED"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.WaitForContainer(context.Background(), "creation-42", "token")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&polls), int32(3))
}

func TestWaitForContainerTimesOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status_code":"IN_PROGRESS"}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURLs(server.URL, server.URL, "http://localhost/cb", 10*time.Millisecond, 50*time.Millisecond)
	err := client.WaitForContainer(context.Background(), "creation-42", "token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out waiting for media container creation-42")
}

func TestWaitForContainerProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status_code":"ERROR"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.WaitForContainer(context.Background(), "creation-42", "token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed on the provider side")
}

func TestPublishMedia(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ig-1/media_publish", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "creation-42", r.PostForm.Get("creation_id"))
		w.Write([]byte(`{"id":"media-77"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	mediaID, err := client.PublishMedia(context.Background(), "ig-1", "token", "creation-42")
	require.NoError(t, err)
	assert.Equal(t, "media-77", mediaID)
}

func TestPublishMediaRequiresCreationID(t *testing.T) {
	client := newTestClient("http://unused")
	_, err := client.PublishMedia(context.Background(), "ig-1", "token", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creation id is required")
}
