package provider

import (
	"context"
	"errors"
	"testing"
)

type namedAdapter struct{ name string }

func (a *namedAdapter) Name() string { return a.name }

func (a *namedAdapter) ListConversations(ctx context.Context, apiKey string, opts ListOptions) ([]ConversationSummary, error) {
	return nil, nil
}

func (a *namedAdapter) FetchConversation(ctx context.Context, apiKey string, conversationID string) (*ConversationDetail, error) {
	return nil, nil
}

func (a *namedAdapter) FetchArtifacts(ctx context.Context, apiKey string, detail *ConversationDetail) ([]Artifact, error) {
	return nil, nil
}

func TestRegistry_GetNormalizesName(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&namedAdapter{name: "OpenAI"})

	a, err := reg.Get("  openai ")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if a.Name() != "OpenAI" {
		t.Fatalf("unexpected adapter: %s", a.Name())
	}
}

func TestRegistry_UnknownName(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Get("gemini")
	if err == nil {
		t.Fatal("expected error for unregistered provider")
	}
	if !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestRegistry_Names(t *testing.T) {
	reg := NewRegistry()
	reg.Register(NewOpenAIAdapter(""))
	reg.Register(NewAnthropicAdapter(""))

	names := reg.Names()
	if len(names) != 2 {
		t.Fatalf("expected 2 names, got %d", len(names))
	}
}
