package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/SoulFireMage/AIChatHistory/internal/archive"
)

// Markdown writes a conversation as a markdown document: metadata header,
// messages in sequence order, then an attachment list.
func Markdown(w io.Writer, conv *archive.Conversation, prov *archive.Provider, projects []archive.Project) error {
	title := conv.Title
	if title == "" {
		title = "Untitled Conversation"
	}
	fmt.Fprintf(w, "# %s\n\n", title)

	fmt.Fprintf(w, "## Metadata\n\n")
	providerName := "Unknown"
	if prov != nil {
		providerName = prov.DisplayName
	}
	fmt.Fprintf(w, "- **Provider:** %s\n", providerName)
	nativeID := "N/A"
	if conv.ProviderConversationID != nil {
		nativeID = *conv.ProviderConversationID
	}
	fmt.Fprintf(w, "- **Conversation ID:** %s\n", nativeID)
	if conv.StartedAt != nil {
		fmt.Fprintf(w, "- **Started:** %s\n", conv.StartedAt.Format("2006-01-02 15:04:05 MST"))
	}
	if conv.EndedAt != nil {
		fmt.Fprintf(w, "- **Ended:** %s\n", conv.EndedAt.Format("2006-01-02 15:04:05 MST"))
	}
	if len(projects) > 0 {
		names := make([]string, 0, len(projects))
		for _, p := range projects {
			names = append(names, p.Name)
		}
		fmt.Fprintf(w, "- **Projects:** %s\n", strings.Join(names, ", "))
	}

	fmt.Fprintf(w, "\n---\n\n## Conversation\n\n")

	msgs := append([]archive.Message(nil), conv.Messages...)
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].SequenceIndex < msgs[j].SequenceIndex })

	for _, m := range msgs {
		role := m.Role
		if role != "" {
			role = strings.ToUpper(role[:1]) + role[1:]
		}
		fmt.Fprintf(w, "**%s:**\n\n%s\n\n", role, m.Content)
	}

	if len(conv.Artifacts) > 0 {
		fmt.Fprintf(w, "---\n\n## Attachments\n\n")
		for _, a := range conv.Artifacts {
			filename := a.Filename
			if filename == "" {
				filename = "Unknown"
			}
			fmt.Fprintf(w, "- **%s** (%s, status: %s)\n", filename, a.ArtifactType, a.DownloadStatus)
			if a.StoragePath != "" {
				fmt.Fprintf(w, "  - Path: %s\n", a.StoragePath)
			}
			if a.DownloadError != "" {
				fmt.Fprintf(w, "  - Error: %s\n", a.DownloadError)
			}
		}
	}

	return nil
}
