package sdk

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client wraps calls to the stylechat backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// doJSON is a helper to perform JSON requests to the backend
func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any) error {
	// Create request body if input is provided
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(b)
	}

	// Create the request
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	// Perform the request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// On error, read body and return error
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("backend '%s %s' failed: %d: %s", method, path, resp.StatusCode, string(b))
	}

	// If no output expected, return early
	if out == nil {
		return nil
	}

	// Decode the response body into the output struct
	dec := json.NewDecoder(resp.Body)
	return dec.Decode(out)
}

// CreateSession creates a new chat session
func (c *Client) CreateSession(ctx context.Context, req *CreateSessionRequest) (*Session, error) {
	var out ApiResponse[Session]
	if err := c.doJSON(ctx, http.MethodPost, "/api/chat/sessions", req, &out); err != nil {
		return nil, err
	}

	if out.Data.ID == "" {
		return nil, fmt.Errorf("no session id returned")
	}
	return &out.Data, nil
}

// GetSession retrieves the transcript and state of an existing session
func (c *Client) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	var out ApiResponse[Session]
	path := "/api/chat/sessions/" + sessionID
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// PostMessage submits a prompt and consumes the server-sent fragment
// stream until the reply completes. onFragment, if non-nil, receives the
// accumulated reply after every fragment. The final reply text is
// returned; a restart notice counts as the reply of a restored session.
func (c *Client) PostMessage(ctx context.Context, sessionID, content string, onFragment func(accumulated string)) (string, error) {
	b, err := json.Marshal(PostMessageRequest{Content: content})
	if err != nil {
		return "", err
	}

	path := fmt.Sprintf("%s/api/chat/sessions/%s/message", c.baseURL, sessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, path, bytes.NewBuffer(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("backend 'POST %s' failed: %d: %s", path, resp.StatusCode, string(body))
	}

	// Minimal SSE consumption: track the current event name and decode
	// each data payload as a JSON string.
	var event, final string
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			var text string
			raw := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if err := json.Unmarshal([]byte(raw), &text); err != nil {
				text = raw
			}

			switch event {
			case "delta":
				if onFragment != nil {
					onFragment(text)
				}
			case "done", "restart":
				final = text
			case "error":
				return "", fmt.Errorf("backend stream error: %s", text)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return final, nil
}

// Reset clears the session, optionally switching the model
func (c *Client) Reset(ctx context.Context, sessionID, model string) (*Session, error) {
	var out ApiResponse[Session]
	path := "/api/chat/sessions/" + sessionID + "/reset"
	if err := c.doJSON(ctx, http.MethodPost, path, ResetRequest{Model: model}, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// SetLogging flips the per-turn audit logging toggle
func (c *Client) SetLogging(ctx context.Context, sessionID string, enabled bool) error {
	path := "/api/chat/sessions/" + sessionID + "/logging"
	return c.doJSON(ctx, http.MethodPut, path, LoggingRequest{Enabled: enabled}, nil)
}

// ExportLog downloads the audit log as CSV data
func (c *Client) ExportLog(ctx context.Context, sessionID string) ([]byte, error) {
	path := fmt.Sprintf("%s/api/chat/sessions/%s/log.csv", c.baseURL, sessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("backend 'GET %s' failed: %d: %s", path, resp.StatusCode, string(body))
	}
	return io.ReadAll(resp.Body)
}

// GetModels retrieves the selectable model catalog
func (c *Client) GetModels(ctx context.Context) (*Models, error) {
	var out ApiResponse[Models]
	if err := c.doJSON(ctx, http.MethodGet, "/api/chat/models", nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
