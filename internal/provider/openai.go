package provider

import (
	"context"
	"net/http"
	"time"
)

// OpenAIAdapter imports ChatGPT history.
//
// OpenAI exposes no API for listing account conversation history, so listing
// returns no results until an export-file import path lands. The adapter
// still participates in the registry so jobs against it finish cleanly.
type OpenAIAdapter struct {
	BaseURL string
	Client  *http.Client
}

func NewOpenAIAdapter(baseURL string) *OpenAIAdapter {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &OpenAIAdapter{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (a *OpenAIAdapter) Name() string { return "openai" }

func (a *OpenAIAdapter) ListConversations(ctx context.Context, apiKey string, opts ListOptions) ([]ConversationSummary, error) {
	_ = ctx
	_ = apiKey
	_ = opts
	// No history listing API as of early 2025. Empty result, never an error.
	return []ConversationSummary{}, nil
}

func (a *OpenAIAdapter) FetchConversation(ctx context.Context, apiKey string, conversationID string) (*ConversationDetail, error) {
	_ = ctx
	_ = apiKey
	return &ConversationDetail{
		ProviderConversationID: conversationID,
		Messages:               []Message{},
		Artifacts:              []Artifact{},
	}, nil
}

func (a *OpenAIAdapter) FetchArtifacts(ctx context.Context, apiKey string, detail *ConversationDetail) ([]Artifact, error) {
	_ = ctx
	_ = apiKey
	// ChatGPT exports can carry files and code snippets; until export parsing
	// exists there is nothing to download.
	return detail.Artifacts, nil
}
