// Package ai drafts customer-service replies with Gemini.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	DefaultModel = "gemini-2.5-flash"

	// ReplyPrompt is recorded on bot messages drafted by the model.
	ReplyPrompt = "Gemini AI Response"

	placeholderKey = "YOUR_API_KEY"
	invalidKeyText = "Requested entity was not found."
)

var ErrNoAPIKey = errors.New("gemini api key not configured")

type GeminiClient struct {
	model   string
	baseURL string
}

func NewGeminiClient(model string) *GeminiClient {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiClient{model: model}
}

// WithBaseURL points the client at a different endpoint, e.g. a proxy.
func (g *GeminiClient) WithBaseURL(url string) *GeminiClient {
	g.baseURL = url
	return g
}

// GenerateReply creates a fresh client per call so the latest selected key is used.
func (g *GeminiClient) GenerateReply(ctx context.Context, apiKey, prompt string) (string, error) {
	if !KeyConfigured(apiKey) {
		return "", ErrNoAPIKey
	}

	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if g.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return "", fmt.Errorf("create gemini client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

// KeyConfigured reports whether key looks like a real key.
func KeyConfigured(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && key != placeholderKey
}

// IsInvalidKey reports whether err means the selected key is unknown or expired.
func IsInvalidKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), invalidKeyText)
}
