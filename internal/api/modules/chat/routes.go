package chat

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the routes for the chat module
func RegisterRoutes(g *gin.RouterGroup) {
	group := g.Group("/chat")

	// Model catalog
	group.GET("/models", GetModels)

	// Session management routes
	group.POST("/sessions", CreateSession)             // Create a new session
	group.GET("/sessions/:uuid", GetSession)           // Get an existing session by UUID
	group.POST("/sessions/:uuid/message", PostMessage) // Submit a prompt, streamed reply
	group.POST("/sessions/:uuid/reset", Reset)         // Discard the conversation
	group.PUT("/sessions/:uuid/logging", SetLogging)   // Toggle per-turn logging
	group.GET("/sessions/:uuid/log.csv", ExportLog)    // Download the audit log as CSV
}
