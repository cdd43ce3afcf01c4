package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"omnipost/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func testCreds() *model.PlatformCredentials {
	return &model.PlatformCredentials{
		UserID:       "user-1",
		Platform:     model.PlatformYouTube,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	}
}

func TestAuthCodeURL(t *testing.T) {
	client := NewOAuthClientWithEndpoint("http://localhost/auth/youtube/callback", oauth2.Endpoint{
		AuthURL:  "https://accounts.google.test/o/oauth2/auth",
		TokenURL: "https://oauth2.googleapis.test/token",
	})

	raw, err := client.AuthCodeURL(testCreds(), "state-nonce")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "client-id", u.Query().Get("client_id"))
	assert.Equal(t, "state-nonce", u.Query().Get("state"))
	assert.Equal(t, "http://localhost/auth/youtube/callback", u.Query().Get("redirect_uri"))
	// offline access with forced consent so a refresh token is issued
	assert.Equal(t, "offline", u.Query().Get("access_type"))
	assert.Equal(t, "consent", u.Query().Get("prompt"))
	assert.Contains(t, u.Query().Get("scope"), "youtube.upload")
}

func TestAuthCodeURLRequiresCredentials(t *testing.T) {
	client := NewOAuthClientWithEndpoint("http://localhost/cb", oauth2.Endpoint{})
	_, err := client.AuthCodeURL(&model.PlatformCredentials{ClientID: "id-only"}, "state")
	require.Error(t, err)
}

func TestExchange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok1","refresh_token":"ref1","token_type":"Bearer","expires_in":3600}`))
	}))
	defer server.Close()

	client := NewOAuthClientWithEndpoint("http://localhost/cb", oauth2.Endpoint{
		AuthURL:  server.URL + "/auth",
		TokenURL: server.URL + "/token",
	})

	grant, err := client.Exchange(context.Background(), testCreds(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "tok1", grant.AccessToken)
	assert.Equal(t, "ref1", grant.RefreshToken)
	assert.False(t, grant.Expiry.IsZero())
}

func TestExchangeUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant","error_description":"Bad Request"}`))
	}))
	defer server.Close()

	client := NewOAuthClientWithEndpoint("http://localhost/cb", oauth2.Endpoint{
		AuthURL:  server.URL + "/auth",
		TokenURL: server.URL + "/token",
	})

	_, err := client.Exchange(context.Background(), testCreds(), "expired-code")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad Request")
}
