package archive

import (
	"context"

	"gorm.io/gorm"
)

// ConversationExists decides whether (provider, provider-native id) is
// already archived. This equality check is the only dedup rule; content
// drift on the provider side is never detected.
func (r *Repo) ConversationExists(ctx context.Context, providerID, providerConversationID string) (bool, error) {
	return conversationExists(r.db.WithContext(ctx), providerID, providerConversationID)
}

func conversationExists(tx *gorm.DB, providerID, providerConversationID string) (bool, error) {
	var count int64
	err := tx.Model(&Conversation{}).
		Where("provider_id = ? AND provider_conversation_id = ?", providerID, providerConversationID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
