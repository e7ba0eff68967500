package archive

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SoulFireMage/AIChatHistory/internal/provider"
	"github.com/SoulFireMage/AIChatHistory/internal/vault"
)

const DefaultErrorCap = 10

// Runner owns the entire lifecycle of an import job: it is the only writer
// of job status and counters. It is safe to share one Runner across
// concurrently executing jobs.
type Runner struct {
	repo     *Repo
	registry *provider.Registry
	vault    *vault.Vault
	errorCap int
}

func NewRunner(repo *Repo, registry *provider.Registry, v *vault.Vault, errorCap int) *Runner {
	if errorCap <= 0 {
		errorCap = DefaultErrorCap
	}
	return &Runner{repo: repo, registry: registry, vault: v, errorCap: errorCap}
}

// Run executes one import job to a terminal state. Credential or provider
// resolution trouble fails the whole run; one conversation's fetch or
// persist failure is isolated and the run continues.
func (rn *Runner) Run(ctx context.Context, jobID string) error {
	start := time.Now()

	job, err := rn.repo.GetImportJob(ctx, jobID)
	if err != nil {
		return fmt.Errorf("load job %s: %w", jobID, err)
	}
	if job.Status.Terminal() {
		// Redelivered after finishing; a finished run is never reopened.
		log.Printf("import job=%s already terminal status=%s", jobID, job.Status)
		return nil
	}

	key, err := rn.repo.GetAPIKey(ctx, job.APIKeyID)
	if err != nil {
		return rn.fail(ctx, jobID, "API key not found")
	}
	if !key.IsActive {
		return rn.fail(ctx, jobID, "API key is not active")
	}

	prov, err := rn.repo.GetProvider(ctx, job.ProviderID)
	if err != nil {
		return rn.fail(ctx, jobID, "Provider not found")
	}

	// Decrypted only for the duration of the run, never persisted or logged.
	apiKey, err := rn.vault.Decrypt(key.KeyEncrypted)
	if err != nil {
		return rn.fail(ctx, jobID, fmt.Sprintf("key decryption failed: %v", err))
	}

	adapter, err := rn.registry.Get(prov.Name)
	if err != nil {
		return rn.fail(ctx, jobID, err.Error())
	}

	opts := provider.ListOptions{}
	if job.RequestedRange != nil {
		opts.FromDate = job.RequestedRange.FromDate
		opts.ToDate = job.RequestedRange.ToDate
	}

	summaries, err := adapter.ListConversations(ctx, apiKey, opts)
	if err != nil {
		return rn.fail(ctx, jobID, fmt.Sprintf("listing conversations failed: %v", err))
	}

	var (
		counts   ImportCounts
		skipped  int
		errs     []string
		errTotal int
	)

	// Per-item isolation: one bad conversation never aborts the run.
	for _, summary := range summaries {
		itemCounts, itemSkipped, err := rn.importOne(ctx, jobID, prov.ID, adapter, apiKey, summary.ProviderConversationID)
		if err != nil {
			errTotal++
			if len(errs) < rn.errorCap {
				errs = append(errs, fmt.Sprintf("conversation %s: %v", summary.ProviderConversationID, err))
			}
			log.Printf("import job=%s conversation=%s failed err=%v", jobID, summary.ProviderConversationID, err)
			continue
		}
		if itemSkipped {
			skipped++
			continue
		}
		counts.add(itemCounts)
	}

	now := time.Now()
	job.Status = JobSuccess
	if errTotal > 0 {
		job.Status = JobPartial
	}
	job.FinishedAt = &now
	job.ConversationsImported = counts.Conversations
	job.MessagesImported = counts.Messages
	job.ArtifactsImported = counts.Artifacts
	job.ConversationsSkipped = skipped
	job.Summary = buildSummary(counts, skipped, errTotal)
	job.ErrorDetails = strings.Join(errs, "\n")

	if err := rn.repo.finishImportJob(ctx, job); err != nil {
		return fmt.Errorf("finalize job %s: %w", jobID, err)
	}

	if err := rn.repo.TouchAPIKeyLastUsed(ctx, key.ID, now); err != nil {
		log.Printf("import job=%s touch key last_used failed err=%v", jobID, err)
	}

	log.Printf("import job=%s status=%s conversations=%d messages=%d artifacts=%d skipped=%d errors=%d cost=%s",
		jobID, job.Status, counts.Conversations, counts.Messages, counts.Artifacts, skipped, errTotal, time.Since(start))
	return nil
}

// importOne fetches and persists a single conversation.
func (rn *Runner) importOne(ctx context.Context, jobID, providerID string, adapter provider.Adapter, apiKey, conversationID string) (ImportCounts, bool, error) {
	detail, err := adapter.FetchConversation(ctx, apiKey, conversationID)
	if err != nil {
		return ImportCounts{}, false, fmt.Errorf("fetch: %w", err)
	}

	artifacts, err := adapter.FetchArtifacts(ctx, apiKey, detail)
	if err != nil {
		return ImportCounts{}, false, fmt.Errorf("fetch artifacts: %w", err)
	}
	detail.Artifacts = artifacts

	counts, skipped, err := rn.repo.ImportConversation(ctx, jobID, providerID, detail)
	if err != nil {
		return ImportCounts{}, false, fmt.Errorf("persist: %w", err)
	}
	return counts, skipped, nil
}

func (rn *Runner) fail(ctx context.Context, jobID, reason string) error {
	if err := rn.repo.failImportJob(ctx, jobID, reason); err != nil {
		return fmt.Errorf("mark job %s failed: %w", jobID, err)
	}
	log.Printf("import job=%s status=failed reason=%q", jobID, reason)
	return nil
}

func buildSummary(counts ImportCounts, skipped, errTotal int) string {
	s := fmt.Sprintf("Imported %d conversations, %d messages, %d artifacts",
		counts.Conversations, counts.Messages, counts.Artifacts)
	if skipped > 0 {
		s += fmt.Sprintf(", skipped %d duplicates", skipped)
	}
	if errTotal > 0 {
		s += fmt.Sprintf(", %d conversations failed", errTotal)
	}
	return s
}
