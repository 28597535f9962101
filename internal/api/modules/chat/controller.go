package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	chatcore "github.com/wearcast/stylechat/pkg/chat"
	"github.com/wearcast/stylechat/pkg/sdk"
)

// CreateSession makes a new conversation and returns its snapshot
func CreateSession(c *gin.Context) {
	var req sdk.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Invalid request body", err).AsGinResponse())
		return
	}

	session, err := GetService().CreateSession(c.Request.Context(), req)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(errStatus(err), "Failed to create session", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("", session).AsGinResponse())
}

// GetSession returns the current snapshot of a conversation
func GetSession(c *gin.Context) {
	session, err := GetService().GetSession(c.Param("uuid"))
	if err != nil {
		c.JSON(sdk.NewErrorResponse(errStatus(err), "Failed to get session", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("", session).AsGinResponse())
}

// PostMessage submits a prompt and streams the reply back as
// server-sent events: zero or more "delta" events carrying the
// accumulated text so far, then exactly one terminal event
// ("done", "restart", or "error")
func PostMessage(c *gin.Context) {
	var req sdk.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Invalid request body", err).AsGinResponse())
		return
	}

	streaming := false
	result, err := GetService().Submit(c.Request.Context(), c.Param("uuid"), req.Content, func(accumulated string) {
		streaming = true
		sseText(c, "delta", accumulated)
	})
	if err != nil {
		if !streaming {
			c.JSON(sdk.NewErrorResponse(errStatus(err), "Failed to process message", err).AsGinResponse())
			return
		}
		sseText(c, "error", err.Error())
		return
	}

	if result.Restored {
		sseText(c, "restart", chatcore.RestartNotice)
	} else {
		sseText(c, "done", result.Reply)
	}
}

// sseText emits one server-sent event whose data is a JSON-encoded
// string, keeping multi-line replies on a single data line
func sseText(c *gin.Context, event, text string) {
	data, _ := json.Marshal(text)
	c.SSEvent(event, string(data))
	c.Writer.Flush()
}

// Reset discards the conversation; an optional model in the body
// switches the session to that model
func Reset(c *gin.Context) {
	var req sdk.ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Invalid request body", err).AsGinResponse())
		return
	}

	session, err := GetService().Reset(c.Request.Context(), c.Param("uuid"), req.Model)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(errStatus(err), "Failed to reset session", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("", session).AsGinResponse())
}

// SetLogging flips per-turn audit logging for the session
func SetLogging(c *gin.Context) {
	var req sdk.LoggingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Invalid request body", err).AsGinResponse())
		return
	}

	if err := GetService().SetLogging(c.Param("uuid"), req.Enabled); err != nil {
		c.JSON(sdk.NewErrorResponse(errStatus(err), "Failed to update logging", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccess("OK").AsGinResponse())
}

// ExportLog serves the session's audit log as a CSV download
func ExportLog(c *gin.Context) {
	filename, data, err := GetService().ExportLog(c.Param("uuid"))
	if err != nil {
		c.JSON(sdk.NewErrorResponse(errStatus(err), "Failed to export log", err).AsGinResponse())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// GetModels returns the selectable model catalog
func GetModels(c *gin.Context) {
	models := GetService().Models()
	c.JSON(sdk.NewSuccessResponse("", &models).AsGinResponse())
}

// errStatus maps service and core errors onto HTTP status codes
func errStatus(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrEmptyLog):
		return http.StatusNotFound
	case errors.Is(err, ErrBusy):
		return http.StatusConflict
	case errors.Is(err, ErrUnknownModel):
		return http.StatusBadRequest
	case errors.Is(err, chatcore.ErrCredentialMissing):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
