package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"omnipost/domain/dto"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// GeminiGenerator calls the generateContent REST endpoint.
type GeminiGenerator struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewGeminiGenerator(apiKey, baseURL string) IGenerator {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &GeminiGenerator{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
}

func (g *GeminiGenerator) GenerateCaption(ctx context.Context, req dto.CaptionRequest) (string, error) {
	tone := req.Tone
	if tone == "" {
		tone = "engaging"
	}
	platform := req.Platform
	if platform == "" {
		platform = "social media"
	}
	prompt := fmt.Sprintf("Write a short, %s %s caption about: %s. Return only the caption text.", tone, platform, req.Topic)
	return g.generate(ctx, prompt)
}

func (g *GeminiGenerator) GenerateScript(ctx context.Context, req dto.ScriptRequest) (string, error) {
	duration := req.Duration
	if duration == "" {
		duration = "60 seconds"
	}
	prompt := fmt.Sprintf("Write a video script of roughly %s about: %s. Include a hook, body and call to action.", duration, req.Topic)
	return g.generate(ctx, prompt)
}

func (g *GeminiGenerator) GenerateHashtags(ctx context.Context, req dto.HashtagRequest) ([]string, error) {
	count := req.Count
	if count <= 0 {
		count = 10
	}
	prompt := fmt.Sprintf("Suggest %d hashtags for this caption, one per line, each starting with #: %s", count, req.Caption)
	text, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	var tags []string
	for _, field := range strings.Fields(text) {
		if strings.HasPrefix(field, "#") && len(field) > 1 {
			tags = append(tags, field)
		}
	}
	if len(tags) == 0 {
		return nil, fmt.Errorf("no hashtags returned")
	}
	return tags, nil
}

func (g *GeminiGenerator) GenerateCampaignIdeas(ctx context.Context, req dto.CampaignIdeaRequest) ([]string, error) {
	count := req.Count
	if count <= 0 {
		count = 5
	}
	prompt := fmt.Sprintf("Suggest %d social media campaign ideas, one per line, for this brief: %s", count, req.Brief)
	text, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	var ideas []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-*0123456789. "))
		if line != "" {
			ideas = append(ideas, line)
		}
	}
	if len(ideas) == 0 {
		return nil, fmt.Errorf("no ideas returned")
	}
	return ideas, nil
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (g *GeminiGenerator) generate(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("gemini api key is not configured")
	}
	endpoint := fmt.Sprintf("%s/v1beta/models/gemini-2.5-flash:generateContent?key=%s", g.baseURL, g.apiKey)
	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}
	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	respBody, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	var result generateResponse
	_ = json.Unmarshal(respBody, &result)
	if resp.StatusCode != http.StatusOK {
		if result.Error.Message != "" {
			return "", fmt.Errorf("generation failed: %s", result.Error.Message)
		}
		return "", fmt.Errorf("generation failed with status %d", resp.StatusCode)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned")
	}
	return strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text), nil
}
