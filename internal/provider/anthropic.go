package provider

import (
	"context"
	"net/http"
	"time"
)

// AnthropicAdapter imports Claude history. Like OpenAI, Anthropic has no
// history-listing API for claude.ai accounts; listing is empty for now.
type AnthropicAdapter struct {
	BaseURL string
	Client  *http.Client
}

func NewAnthropicAdapter(baseURL string) *AnthropicAdapter {
	if baseURL == "" {
		baseURL = "https://api.anthropic.com/v1"
	}
	return &AnthropicAdapter{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (a *AnthropicAdapter) Name() string { return "anthropic" }

func (a *AnthropicAdapter) ListConversations(ctx context.Context, apiKey string, opts ListOptions) ([]ConversationSummary, error) {
	_ = ctx
	_ = apiKey
	_ = opts
	return []ConversationSummary{}, nil
}

func (a *AnthropicAdapter) FetchConversation(ctx context.Context, apiKey string, conversationID string) (*ConversationDetail, error) {
	_ = ctx
	_ = apiKey
	return &ConversationDetail{
		ProviderConversationID: conversationID,
		Messages:               []Message{},
		Artifacts:              []Artifact{},
	}, nil
}

func (a *AnthropicAdapter) FetchArtifacts(ctx context.Context, apiKey string, detail *ConversationDetail) ([]Artifact, error) {
	_ = ctx
	_ = apiKey
	return detail.Artifacts, nil
}
