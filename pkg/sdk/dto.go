package sdk

import (
	"encoding/json"
	"time"
)

// StatusType labels an API response as success or error
type StatusType string

const (
	StatusSuccess StatusType = "success"
	StatusError   StatusType = "error"
)

// ApiResponse represents a standard API response structure
type ApiResponse[T any] struct {
	Status  StatusType `json:"status"`          // Status message
	Code    int        `json:"code"`            // Status code
	Message string     `json:"message"`         // Human-readable message
	Data    T          `json:"data,omitempty"`  // Optional data field for successful responses
	Error   any        `json:"error,omitempty"` // Optional errors field for error responses
}

// AsGinResponse converts the ApiResponse to a format suitable for Gin framework
func (r ApiResponse[T]) AsGinResponse() (int, any) {
	return r.Code, r
}

// AsJSON converts the ApiResponse to a format suitable for JSON responses
func (r ApiResponse[T]) AsJSON() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func NewSuccess(message string) ApiResponse[any] {
	return ApiResponse[any]{
		Status:  StatusSuccess,
		Code:    200,
		Message: message,
	}
}

func NewSuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Status:  StatusSuccess,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(code int, message string, err any) ApiResponse[any] {
	resp := ApiResponse[any]{
		Status:  StatusError,
		Code:    code,
		Message: message,
	}
	if e, ok := err.(error); ok {
		resp.Error = e.Error()
	} else {
		resp.Error = err
	}
	return resp
}

/** Requests */

// CreateSessionRequest represents the request body for creating a new chat session
type CreateSessionRequest struct {
	Model  string `json:"model"`
	APIKey string `json:"api_key"`
}

// PostMessageRequest represents the request body for submitting a prompt
type PostMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// ResetRequest represents the request body for resetting a session,
// optionally switching to another model
type ResetRequest struct {
	Model string `json:"model"`
}

// LoggingRequest represents the request body for the per-turn logging toggle
type LoggingRequest struct {
	Enabled bool `json:"enabled"`
}

/** Responses */

// Turn represents one visible conversation message
type Turn struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Synthetic bool   `json:"synthetic,omitempty"`
}

// Session represents the state of one chat session
type Session struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Model        string    `json:"model"`
	AutoLog      bool      `json:"auto_log"`
	Turns        []Turn    `json:"turns"`
	Pairs        int       `json:"pairs"`
	MessageCount int       `json:"message_count"`
	LogCount     int       `json:"log_count"`
}

// Models represents the selectable model catalog
type Models struct {
	Default string   `json:"default"`
	Models  []string `json:"models"`
}
