package archive

import "time"

// Conversation origins.
const (
	OriginAPI    = "api"
	OriginExport = "export"
	OriginManual = "manual"
)

type Provider struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	DisplayName string    `gorm:"type:varchar(200);not null" json:"display_name"`
	BaseAPIURL  string    `gorm:"type:text" json:"base_api_url,omitempty"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Provider) TableName() string { return "providers" }

type APIKey struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	ProviderID   string     `gorm:"size:36;index;not null" json:"provider_id"`
	Label        string     `gorm:"type:varchar(200);not null" json:"label"`
	KeyEncrypted string     `gorm:"type:text;not null" json:"-"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastUsedAt   *time.Time `json:"last_used_at,omitempty"`
}

func (APIKey) TableName() string { return "api_keys" }

type Project struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Project) TableName() string { return "projects" }

// Conversation is the root of the imported subtree. The pair
// (provider_id, provider_conversation_id) is the sole dedup key; a duplicate
// import is skipped, never merged.
type Conversation struct {
	ID                     string         `gorm:"primaryKey;size:36" json:"id"`
	ProviderID             string         `gorm:"size:36;not null;index:idx_conversation_provider;uniqueIndex:uq_provider_conversation,priority:1" json:"provider_id"`
	ProviderConversationID *string        `gorm:"type:varchar(255);uniqueIndex:uq_provider_conversation,priority:2" json:"provider_conversation_id,omitempty"`
	Title                  string         `gorm:"type:text" json:"title,omitempty"`
	StartedAt              *time.Time     `gorm:"index:idx_conversation_started_at" json:"started_at,omitempty"`
	EndedAt                *time.Time     `json:"ended_at,omitempty"`
	Origin                 string         `gorm:"type:varchar(50);not null;default:api" json:"origin"`
	ImportJobID            *string        `gorm:"size:26;index" json:"import_job_id,omitempty"`
	ImportNotes            string         `gorm:"type:text" json:"import_notes,omitempty"`
	Archived               bool           `gorm:"not null;default:false" json:"archived"`
	RawMetadata            map[string]any `gorm:"serializer:json" json:"raw_metadata,omitempty"`
	CreatedAt              time.Time      `json:"created_at"`

	Messages  []Message  `gorm:"constraint:OnDelete:CASCADE" json:"messages,omitempty"`
	Artifacts []Artifact `gorm:"constraint:OnDelete:CASCADE" json:"artifacts,omitempty"`
}

func (Conversation) TableName() string { return "conversations" }

type ConversationProject struct {
	ConversationID string `gorm:"primaryKey;size:36" json:"conversation_id"`
	ProjectID      string `gorm:"primaryKey;size:36" json:"project_id"`
}

func (ConversationProject) TableName() string { return "conversation_projects" }

// Message order within a conversation is SequenceIndex, never the provider
// timestamp or insertion order.
type Message struct {
	ID                string         `gorm:"primaryKey;size:36" json:"id"`
	ConversationID    string         `gorm:"size:36;not null;index:idx_message_conversation;uniqueIndex:uq_message_sequence,priority:1" json:"conversation_id"`
	ProviderMessageID *string        `gorm:"type:varchar(255)" json:"provider_message_id,omitempty"`
	Role              string         `gorm:"type:varchar(50);not null" json:"role"`
	Content           string         `gorm:"type:text;not null" json:"content"`
	CreatedAt         *time.Time     `gorm:"autoCreateTime:false" json:"created_at,omitempty"`
	SequenceIndex     int            `gorm:"not null;uniqueIndex:uq_message_sequence,priority:2" json:"sequence_index"`
	RawMetadata       map[string]any `gorm:"serializer:json" json:"raw_metadata,omitempty"`
}

func (Message) TableName() string { return "messages" }

type Artifact struct {
	ID                 string         `gorm:"primaryKey;size:36" json:"id"`
	ConversationID     string         `gorm:"size:36;not null;index:idx_artifact_conversation" json:"conversation_id"`
	MessageID          *string        `gorm:"size:36;index" json:"message_id,omitempty"`
	ArtifactType       string         `gorm:"type:varchar(50);not null" json:"artifact_type"`
	ProviderArtifactID *string        `gorm:"type:varchar(255)" json:"provider_artifact_id,omitempty"`
	Filename           string         `gorm:"type:text" json:"filename,omitempty"`
	MimeType           string         `gorm:"type:varchar(200)" json:"mime_type,omitempty"`
	StoragePath        string         `gorm:"type:text" json:"storage_path,omitempty"`
	DownloadStatus     string         `gorm:"type:varchar(50);not null;default:pending" json:"download_status"`
	DownloadError      string         `gorm:"type:text" json:"download_error,omitempty"`
	Notes              string         `gorm:"type:text" json:"notes,omitempty"`
	RawMetadata        map[string]any `gorm:"serializer:json" json:"raw_metadata,omitempty"`
}

func (Artifact) TableName() string { return "artifacts" }

// ConversationEdit is a curated copy of a conversation's markdown.
type ConversationEdit struct {
	ID                   string    `gorm:"primaryKey;size:36" json:"id"`
	ConversationID       string    `gorm:"size:36;not null;index" json:"conversation_id"`
	Label                string    `gorm:"type:varchar(200);not null" json:"label"`
	EditedMarkdown       string    `gorm:"type:text;not null" json:"edited_markdown"`
	Notes                string    `gorm:"type:text" json:"notes,omitempty"`
	BaseConversationHash string    `gorm:"type:varchar(64)" json:"base_conversation_hash,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	LastModifiedAt       time.Time `gorm:"autoUpdateTime" json:"last_modified_at"`
}

func (ConversationEdit) TableName() string { return "conversation_edits" }
