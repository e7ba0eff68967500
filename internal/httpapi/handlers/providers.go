package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListProviders(c *gin.Context) {
	providers, err := h.Repo.ListProviders(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, 50001, "failed to list providers")
		return
	}
	ok(c, providers)
}
