package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SoulFireMage/AIChatHistory/internal/archive"
)

type createProjectReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type updateProjectReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *Handler) ListProjects(c *gin.Context) {
	projects, err := h.Repo.ListProjects(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, 50001, "failed to list projects")
		return
	}
	ok(c, projects)
}

func (h *Handler) CreateProject(c *gin.Context) {
	var req createProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	p := &archive.Project{Name: req.Name, Description: req.Description}
	if err := h.Repo.CreateProject(c.Request.Context(), p); err != nil {
		// unique name index
		fail(c, http.StatusBadRequest, 40001, "project with this name already exists")
		return
	}
	ok(c, p)
}

func (h *Handler) UpdateProject(c *gin.Context) {
	var req updateProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	p, err := h.Repo.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, 40403, "project not found")
			return
		}
		fail(c, http.StatusInternalServerError, 50001, "failed to load project")
		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if err := h.Repo.SaveProject(c.Request.Context(), p); err != nil {
		fail(c, http.StatusBadRequest, 40001, "failed to update project")
		return
	}
	ok(c, p)
}

func (h *Handler) DeleteProject(c *gin.Context) {
	if err := h.Repo.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, 40403, "project not found")
			return
		}
		fail(c, http.StatusInternalServerError, 50001, "failed to delete project")
		return
	}
	ok(c, gin.H{"deleted": true})
}
