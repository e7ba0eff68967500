package archive

import "time"

type JobStatus string

const (
	JobRunning JobStatus = "running"
	JobSuccess JobStatus = "success"
	JobPartial JobStatus = "partial"
	JobFailed  JobStatus = "failed"
)

// Terminal reports whether a finished job can never change again. A retry is
// a new job, never a reopened one.
func (s JobStatus) Terminal() bool {
	return s == JobSuccess || s == JobPartial || s == JobFailed
}

// RequestedRange is the free-form date window a job was asked to cover.
type RequestedRange struct {
	FromDate *time.Time `json:"from_date,omitempty"`
	ToDate   *time.Time `json:"to_date,omitempty"`
}

// ImportJob is one attempt to import from one (provider, api key) pair.
// Conversations it creates outlive it: their import_job_id is nullable.
type ImportJob struct {
	ID string `gorm:"primaryKey;size:26" json:"id"` // ULID length

	ProviderID string `gorm:"size:36;index;not null" json:"provider_id"`
	APIKeyID   string `gorm:"size:36;index;not null" json:"api_key_id"`

	StartedAt  time.Time  `gorm:"not null" json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	Status JobStatus `gorm:"type:varchar(16);index;not null" json:"status"`

	RequestedRange *RequestedRange `gorm:"serializer:json" json:"requested_range,omitempty"`

	Summary      string `gorm:"type:text" json:"summary,omitempty"`
	ErrorDetails string `gorm:"type:text" json:"error_details,omitempty"`

	ConversationsImported int `gorm:"not null;default:0" json:"conversations_imported"`
	MessagesImported      int `gorm:"not null;default:0" json:"messages_imported"`
	ArtifactsImported     int `gorm:"not null;default:0" json:"artifacts_imported"`
	ConversationsSkipped  int `gorm:"not null;default:0" json:"conversations_skipped"`
}

func (ImportJob) TableName() string { return "import_jobs" }
