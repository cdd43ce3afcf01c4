package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"omnipost/domain/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generationServer(t *testing.T, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, ":generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":` + jsonString(text) + `}]}}]}`))
	}))
}

func jsonString(s string) string {
	encoded, _ := json.Marshal(s)
	return string(encoded)
}

func TestGenerateCaption(t *testing.T) {
	server := generationServer(t, "Sunsets hit different. #nofilter")
	defer server.Close()

	generator := NewGeminiGenerator("test-key", server.URL)
	text, err := generator.GenerateCaption(context.Background(), dto.CaptionRequest{Topic: "sunsets"})
	require.NoError(t, err)
	assert.Equal(t, "Sunsets hit different. #nofilter", text)
}

func TestGenerateHashtagsFiltersTokens(t *testing.T) {
	server := generationServer(t, "#sunset\n#goldenhour\nsome filler text\n#nofilter")
	defer server.Close()

	generator := NewGeminiGenerator("test-key", server.URL)
	tags, err := generator.GenerateHashtags(context.Background(), dto.HashtagRequest{Caption: "sunset pic"})
	require.NoError(t, err)
	assert.Equal(t, []string{"#sunset", "#goldenhour", "#nofilter"}, tags)
}

func TestGenerateCampaignIdeasStripsBullets(t *testing.T) {
	server := generationServer(t, "1. Behind the scenes week\n- User generated content contest\n* Founder Q&A live")
	defer server.Close()

	generator := NewGeminiGenerator("test-key", server.URL)
	ideas, err := generator.GenerateCampaignIdeas(context.Background(), dto.CampaignIdeaRequest{Brief: "coffee brand"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Behind the scenes week",
		"User generated content contest",
		"Founder Q&A live",
	}, ideas)
}

func TestGenerateRequiresAPIKey(t *testing.T) {
	generator := NewGeminiGenerator("", "http://unused")
	_, err := generator.GenerateCaption(context.Background(), dto.CaptionRequest{Topic: "sunsets"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key")
}

func TestGenerateSurfacesUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	generator := NewGeminiGenerator("test-key", server.URL)
	_, err := generator.GenerateCaption(context.Background(), dto.CaptionRequest{Topic: "sunsets"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestGenerateNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	generator := NewGeminiGenerator("test-key", server.URL)
	_, err := generator.GenerateCaption(context.Background(), dto.CaptionRequest{Topic: "sunsets"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no content")
}
