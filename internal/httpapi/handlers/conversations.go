package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SoulFireMage/AIChatHistory/internal/archive"
	"github.com/SoulFireMage/AIChatHistory/internal/export"
)

type conversationListItem struct {
	ID           string     `json:"id"`
	ProviderID   string     `json:"provider_id"`
	Title        string     `json:"title,omitempty"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	MessageCount int64      `json:"message_count"`
	HasArtifacts bool       `json:"has_artifacts"`
	Projects     []string   `json:"projects"`
}

func (h *Handler) ListConversations(c *gin.Context) {
	ctx := c.Request.Context()

	filter := archive.ConversationFilter{
		ProviderID: c.Query("provider_id"),
		ProjectID:  c.Query("project_id"),
		Search:     c.Query("search"),
	}
	if v := c.Query("from_date"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.FromDate = &t
		}
	}
	if v := c.Query("to_date"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.ToDate = &t
		}
	}
	if v := c.Query("has_artifacts"); v != "" {
		b := v == "true" || v == "1"
		filter.HasArtifacts = &b
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "50"))

	convs, total, err := h.Repo.ListConversations(ctx, filter)
	if err != nil {
		fail(c, http.StatusInternalServerError, 50001, "failed to list conversations")
		return
	}

	items := make([]conversationListItem, 0, len(convs))
	for _, conv := range convs {
		msgCount, err := h.Repo.CountMessages(ctx, conv.ID)
		if err != nil {
			fail(c, http.StatusInternalServerError, 50001, "failed to count messages")
			return
		}
		hasArts, err := h.Repo.HasArtifacts(ctx, conv.ID)
		if err != nil {
			fail(c, http.StatusInternalServerError, 50001, "failed to check artifacts")
			return
		}
		projects, err := h.Repo.ProjectsForConversation(ctx, conv.ID)
		if err != nil {
			fail(c, http.StatusInternalServerError, 50001, "failed to load projects")
			return
		}
		names := make([]string, 0, len(projects))
		for _, p := range projects {
			names = append(names, p.Name)
		}
		items = append(items, conversationListItem{
			ID:           conv.ID,
			ProviderID:   conv.ProviderID,
			Title:        conv.Title,
			StartedAt:    conv.StartedAt,
			MessageCount: msgCount,
			HasArtifacts: hasArts,
			Projects:     names,
		})
	}

	ok(c, gin.H{"total": total, "items": items})
}

func (h *Handler) GetConversation(c *gin.Context) {
	conv, err := h.Repo.GetConversation(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, 40404, "conversation not found")
			return
		}
		fail(c, http.StatusInternalServerError, 50001, "failed to load conversation")
		return
	}

	projects, err := h.Repo.ProjectsForConversation(c.Request.Context(), conv.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, 50001, "failed to load projects")
		return
	}

	ok(c, gin.H{"conversation": conv, "projects": projects})
}

type assignProjectReq struct {
	ProjectID string `json:"project_id" binding:"required"`
}

func (h *Handler) AssignProject(c *gin.Context) {
	var req assignProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	ctx := c.Request.Context()

	if _, err := h.Repo.GetConversation(ctx, c.Param("id")); err != nil {
		fail(c, http.StatusNotFound, 40404, "conversation not found")
		return
	}
	if _, err := h.Repo.GetProject(ctx, req.ProjectID); err != nil {
		fail(c, http.StatusNotFound, 40403, "project not found")
		return
	}

	created, err := h.Repo.AssignProject(ctx, c.Param("id"), req.ProjectID)
	if err != nil {
		fail(c, http.StatusInternalServerError, 50001, "failed to assign project")
		return
	}
	ok(c, gin.H{"assigned": created})
}

func (h *Handler) RemoveProject(c *gin.Context) {
	err := h.Repo.RemoveProject(c.Request.Context(), c.Param("id"), c.Param("project_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, 40405, "project assignment not found")
			return
		}
		fail(c, http.StatusInternalServerError, 50001, "failed to remove project")
		return
	}
	ok(c, gin.H{"removed": true})
}

func (h *Handler) ExportConversationMarkdown(c *gin.Context) {
	ctx := c.Request.Context()

	conv, err := h.Repo.GetConversation(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, 40404, "conversation not found")
			return
		}
		fail(c, http.StatusInternalServerError, 50001, "failed to load conversation")
		return
	}

	prov, err := h.Repo.GetProvider(ctx, conv.ProviderID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		fail(c, http.StatusInternalServerError, 50001, "failed to load provider")
		return
	}
	projects, err := h.Repo.ProjectsForConversation(ctx, conv.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, 50001, "failed to load projects")
		return
	}

	var buf bytes.Buffer
	if err := export.Markdown(&buf, conv, prov, projects); err != nil {
		fail(c, http.StatusInternalServerError, 50001, "failed to render markdown")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", conv.ID+".md"))
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", buf.Bytes())
}
