package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SoulFireMage/AIChatHistory/internal/httpapi/handlers"
)

func NewRouter(h *handlers.Handler) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"code": 40400, "message": "route not found", "data": nil})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"code": 40500, "message": "method not allowed", "data": nil})
	})

	r.GET("/ping", h.Ping)

	r.GET("/providers", h.ListProviders)

	r.GET("/api-keys", h.ListAPIKeys)
	r.POST("/api-keys", h.CreateAPIKey)
	r.PATCH("/api-keys/:id", h.UpdateAPIKey)
	r.DELETE("/api-keys/:id", h.DeleteAPIKey)

	r.GET("/projects", h.ListProjects)
	r.POST("/projects", h.CreateProject)
	r.PATCH("/projects/:id", h.UpdateProject)
	r.DELETE("/projects/:id", h.DeleteProject)

	r.GET("/conversations", h.ListConversations)
	r.GET("/conversations/:id", h.GetConversation)
	r.POST("/conversations/:id/projects", h.AssignProject)
	r.DELETE("/conversations/:id/projects/:project_id", h.RemoveProject)
	r.GET("/conversations/:id/export-markdown", h.ExportConversationMarkdown)

	r.POST("/import-jobs", h.CreateImportJob)
	r.GET("/import-jobs", h.ListImportJobs)
	r.GET("/import-jobs/:id", h.GetImportJob)

	return r
}
