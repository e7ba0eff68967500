package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SoulFireMage/AIChatHistory/internal/archive"
	"github.com/SoulFireMage/AIChatHistory/internal/vault"
)

type Handler struct {
	Repo       *archive.Repo
	Vault      *vault.Vault
	Dispatcher archive.JobDispatcher
}

func NewHandler(repo *archive.Repo, v *vault.Vault, dispatcher archive.JobDispatcher) *Handler {
	return &Handler{Repo: repo, Vault: v, Dispatcher: dispatcher}
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "ok",
		"data":    data,
	})
}

func fail(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
		"data":    nil,
	})
}

func (h *Handler) Ping(c *gin.Context) {
	ok(c, gin.H{"pong": true})
}
