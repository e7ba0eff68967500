package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SoulFireMage/AIChatHistory/internal/archive"
)

type createImportJobReq struct {
	ProviderID string     `json:"provider_id" binding:"required"`
	APIKeyID   string     `json:"api_key_id" binding:"required"`
	FromDate   *time.Time `json:"from_date"`
	ToDate     *time.Time `json:"to_date"`
}

// CreateImportJob validates inputs, records a running job, and hands it to
// the dispatcher. The request returns as soon as the job is queued; progress
// is visible only through the job record.
func (h *Handler) CreateImportJob(c *gin.Context) {
	var req createImportJobReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	ctx := c.Request.Context()

	key, err := h.Repo.GetAPIKey(ctx, req.APIKeyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, 40402, "API key not found")
			return
		}
		fail(c, http.StatusInternalServerError, 50001, "failed to resolve API key")
		return
	}
	if !key.IsActive {
		fail(c, http.StatusBadRequest, 40002, "API key is not active")
		return
	}

	if _, err := h.Repo.GetProvider(ctx, req.ProviderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, 40401, "provider not found")
			return
		}
		fail(c, http.StatusInternalServerError, 50001, "failed to resolve provider")
		return
	}

	job := &archive.ImportJob{
		ProviderID: req.ProviderID,
		APIKeyID:   req.APIKeyID,
		Status:     archive.JobRunning,
	}
	if req.FromDate != nil || req.ToDate != nil {
		job.RequestedRange = &archive.RequestedRange{
			FromDate: req.FromDate,
			ToDate:   req.ToDate,
		}
	}

	if err := h.Repo.CreateImportJob(ctx, job); err != nil {
		fail(c, http.StatusInternalServerError, 50001, "failed to create import job")
		return
	}

	if err := h.Dispatcher.PublishJob(ctx, job.ID); err != nil {
		log.Printf("import job=%s dispatch failed err=%v", job.ID, err)
		fail(c, http.StatusInternalServerError, 50003, "failed to dispatch import job")
		return
	}

	ok(c, job)
}

func (h *Handler) GetImportJob(c *gin.Context) {
	job, err := h.Repo.GetImportJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, 40406, "import job not found")
			return
		}
		fail(c, http.StatusInternalServerError, 50001, "failed to load import job")
		return
	}
	ok(c, job)
}

func (h *Handler) ListImportJobs(c *gin.Context) {
	jobs, err := h.Repo.ListImportJobs(c.Request.Context(), c.Query("provider_id"))
	if err != nil {
		fail(c, http.StatusInternalServerError, 50001, "failed to list import jobs")
		return
	}
	ok(c, jobs)
}
