package archive

import (
	"context"
	"fmt"

	"github.com/SoulFireMage/AIChatHistory/internal/provider"
	"gorm.io/gorm"
)

// ImportCounts is what one successfully persisted conversation contributed.
type ImportCounts struct {
	Conversations int
	Messages      int
	Artifacts     int
}

func (c *ImportCounts) add(o ImportCounts) {
	c.Conversations += o.Conversations
	c.Messages += o.Messages
	c.Artifacts += o.Artifacts
}

// ImportConversation writes one normalized conversation as a single
// transaction: conversation row, messages with their adapter-supplied
// sequence indices verbatim, then artifacts linked to messages by sequence
// index. A duplicate (provider, native id) pair is skipped with no side
// effects. Any failure rolls the whole conversation back and is returned for
// per-item isolation at the Runner.
func (r *Repo) ImportConversation(ctx context.Context, jobID, providerID string, detail *provider.ConversationDetail) (ImportCounts, bool, error) {
	var counts ImportCounts
	skipped := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if detail.ProviderConversationID != "" {
			exists, err := conversationExists(tx, providerID, detail.ProviderConversationID)
			if err != nil {
				return fmt.Errorf("dedup check: %w", err)
			}
			if exists {
				skipped = true
				return nil
			}
		}

		conv := Conversation{
			ID:          NewID(),
			ProviderID:  providerID,
			Title:       detail.Title,
			StartedAt:   detail.StartedAt,
			EndedAt:     detail.EndedAt,
			Origin:      OriginAPI,
			ImportJobID: &jobID,
			RawMetadata: detail.RawMetadata,
		}
		if detail.ProviderConversationID != "" {
			id := detail.ProviderConversationID
			conv.ProviderConversationID = &id
		}
		if err := tx.Create(&conv).Error; err != nil {
			return fmt.Errorf("insert conversation: %w", err)
		}
		counts.Conversations = 1

		// sequence index -> stored message id, for artifact linkage
		msgBySeq := make(map[int]string, len(detail.Messages))

		for _, m := range detail.Messages {
			msg := Message{
				ID:             NewID(),
				ConversationID: conv.ID,
				Role:           m.Role,
				Content:        m.Content,
				CreatedAt:      m.CreatedAt,
				SequenceIndex:  m.SequenceIndex,
				RawMetadata:    m.RawMetadata,
			}
			if m.ProviderMessageID != "" {
				id := m.ProviderMessageID
				msg.ProviderMessageID = &id
			}
			if err := tx.Create(&msg).Error; err != nil {
				return fmt.Errorf("insert message seq=%d: %w", m.SequenceIndex, err)
			}
			msgBySeq[m.SequenceIndex] = msg.ID
			counts.Messages++
		}

		for _, a := range detail.Artifacts {
			art := Artifact{
				ID:             NewID(),
				ConversationID: conv.ID,
				ArtifactType:   a.ArtifactType,
				Filename:       a.Filename,
				MimeType:       a.MimeType,
				DownloadStatus: a.DownloadStatus,
				DownloadError:  a.DownloadError,
				RawMetadata:    a.RawMetadata,
			}
			if art.DownloadStatus == "" {
				art.DownloadStatus = provider.DownloadPending
			}
			if a.ProviderArtifactID != "" {
				id := a.ProviderArtifactID
				art.ProviderArtifactID = &id
			}
			// An unmatched sequence index leaves the artifact unlinked
			// rather than dropping it.
			if a.MessageSequenceIndex != nil {
				if msgID, ok := msgBySeq[*a.MessageSequenceIndex]; ok {
					art.MessageID = &msgID
				}
			}
			if err := tx.Create(&art).Error; err != nil {
				return fmt.Errorf("insert artifact %s: %w", a.Filename, err)
			}
			counts.Artifacts++
		}

		return nil
	})
	if err != nil {
		return ImportCounts{}, false, err
	}
	if skipped {
		return ImportCounts{}, true, nil
	}
	return counts, false, nil
}
