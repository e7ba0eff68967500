package archive

import (
	"context"
	"time"
)

// CreateImportJob records a new run in the running state. The body of the
// run executes elsewhere (see Runner); callers observe it only through
// GetImportJob / ListImportJobs.
func (r *Repo) CreateImportJob(ctx context.Context, job *ImportJob) error {
	if job.ID == "" {
		job.ID = NewJobID()
	}
	if job.StartedAt.IsZero() {
		job.StartedAt = time.Now()
	}
	if job.Status == "" {
		job.Status = JobRunning
	}
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *Repo) GetImportJob(ctx context.Context, id string) (*ImportJob, error) {
	var j ImportJob
	if err := r.db.WithContext(ctx).First(&j, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *Repo) ListImportJobs(ctx context.Context, providerID string) ([]ImportJob, error) {
	q := r.db.WithContext(ctx).Order("started_at DESC")
	if providerID != "" {
		q = q.Where("provider_id = ?", providerID)
	}
	var jobs []ImportJob
	if err := q.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// Job mutation is unexported: only the Runner in this package may move a job
// through its lifecycle. That single-writer rule is what keeps status
// consistent without extra locking.

func (r *Repo) failImportJob(ctx context.Context, id string, reason string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&ImportJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        JobFailed,
			"error_details": reason,
			"finished_at":   now,
		}).Error
}

func (r *Repo) finishImportJob(ctx context.Context, job *ImportJob) error {
	return r.db.WithContext(ctx).Model(&ImportJob{}).
		Where("id = ?", job.ID).
		Updates(map[string]any{
			"status":                 job.Status,
			"summary":                job.Summary,
			"error_details":          job.ErrorDetails,
			"finished_at":            job.FinishedAt,
			"conversations_imported": job.ConversationsImported,
			"messages_imported":      job.MessagesImported,
			"artifacts_imported":     job.ArtifactsImported,
			"conversations_skipped":  job.ConversationsSkipped,
		}).Error
}
