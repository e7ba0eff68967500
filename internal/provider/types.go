package provider

import (
	"context"
	"time"
)

// Artifact download statuses. An adapter decides the status at fetch time;
// the archive never changes it afterwards.
const (
	DownloadPending      = "pending"
	DownloadSuccess      = "success"
	DownloadNotSupported = "not_supported"
	DownloadError        = "error"
)

// ListOptions narrows a listing to conversations started inside the range.
// Nil bounds are open ends. Adapters ignore keys they do not recognize.
type ListOptions struct {
	FromDate *time.Time
	ToDate   *time.Time
}

// ConversationSummary is the lightweight shape returned by listing.
type ConversationSummary struct {
	ProviderConversationID string
	Title                  string
	StartedAt              *time.Time
	EndedAt                *time.Time
	MessageCount           int
}

// Message is a normalized message from any provider. SequenceIndex is the
// authoritative order within the conversation; it is persisted verbatim.
type Message struct {
	ProviderMessageID string
	Role              string
	Content           string
	CreatedAt         *time.Time
	SequenceIndex     int
	RawMetadata       map[string]any
}

// Artifact is a normalized attachment. MessageSequenceIndex, when set, links
// the artifact to the message with that sequence index.
type Artifact struct {
	ProviderArtifactID   string
	ArtifactType         string // 'file', 'image', 'canvas', 'code', 'other'
	Filename             string
	MimeType             string
	DownloadStatus       string
	DownloadError        string
	MessageSequenceIndex *int
	RawMetadata          map[string]any
}

// ConversationDetail is a full conversation with ordered messages.
type ConversationDetail struct {
	ProviderConversationID string
	Title                  string
	StartedAt              *time.Time
	EndedAt                *time.Time
	Messages               []Message
	Artifacts              []Artifact
	RawMetadata            map[string]any
}

// Adapter normalizes one provider's conversation history into the common
// shape. Implementations must return an empty list, not an error, when a
// listing simply has no results.
type Adapter interface {
	Name() string
	ListConversations(ctx context.Context, apiKey string, opts ListOptions) ([]ConversationSummary, error)
	FetchConversation(ctx context.Context, apiKey string, conversationID string) (*ConversationDetail, error)
	FetchArtifacts(ctx context.Context, apiKey string, detail *ConversationDetail) ([]Artifact, error)
}
