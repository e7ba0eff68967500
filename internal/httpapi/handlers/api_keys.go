package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SoulFireMage/AIChatHistory/internal/archive"
)

type createAPIKeyReq struct {
	ProviderID  string `json:"provider_id" binding:"required"`
	Label       string `json:"label" binding:"required"`
	APIKeyValue string `json:"api_key_value" binding:"required"`
}

type updateAPIKeyReq struct {
	Label    *string `json:"label"`
	IsActive *bool   `json:"is_active"`
}

// ListAPIKeys never exposes key material; KeyEncrypted is json:"-".
func (h *Handler) ListAPIKeys(c *gin.Context) {
	keys, err := h.Repo.ListAPIKeys(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, 50001, "failed to list API keys")
		return
	}
	ok(c, keys)
}

func (h *Handler) CreateAPIKey(c *gin.Context) {
	var req createAPIKeyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	if _, err := h.Repo.GetProvider(c.Request.Context(), req.ProviderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, 40401, "provider not found")
			return
		}
		fail(c, http.StatusInternalServerError, 50001, "failed to resolve provider")
		return
	}

	encrypted, err := h.Vault.Encrypt(req.APIKeyValue)
	if err != nil {
		fail(c, http.StatusInternalServerError, 50002, "failed to encrypt API key")
		return
	}

	key := &archive.APIKey{
		ProviderID:   req.ProviderID,
		Label:        req.Label,
		KeyEncrypted: encrypted,
		IsActive:     true,
	}
	if err := h.Repo.CreateAPIKey(c.Request.Context(), key); err != nil {
		fail(c, http.StatusInternalServerError, 50001, "failed to create API key")
		return
	}
	ok(c, key)
}

func (h *Handler) UpdateAPIKey(c *gin.Context) {
	var req updateAPIKeyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	key, err := h.Repo.GetAPIKey(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, 40402, "API key not found")
			return
		}
		fail(c, http.StatusInternalServerError, 50001, "failed to load API key")
		return
	}

	if req.Label != nil {
		key.Label = *req.Label
	}
	if req.IsActive != nil {
		key.IsActive = *req.IsActive
	}
	if err := h.Repo.SaveAPIKey(c.Request.Context(), key); err != nil {
		fail(c, http.StatusInternalServerError, 50001, "failed to update API key")
		return
	}
	ok(c, key)
}

func (h *Handler) DeleteAPIKey(c *gin.Context) {
	if err := h.Repo.DeleteAPIKey(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, 40402, "API key not found")
			return
		}
		fail(c, http.StatusInternalServerError, 50001, "failed to delete API key")
		return
	}
	ok(c, gin.H{"deleted": true})
}
