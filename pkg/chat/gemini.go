package chat

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"google.golang.org/genai"
)

// GeminiProvider creates chat sessions backed by the Gemini API.
type GeminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider constructs the vendor client. An empty API key is
// rejected up front so the caller can prompt for one instead of failing
// on the first request.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, ErrCredentialMissing
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &SessionInitError{Err: err}
	}

	return &GeminiProvider{client: client}, nil
}

// NewSession implements Provider.
func (p *GeminiProvider) NewSession(ctx context.Context, cfg SessionConfig, restoreFrom []Turn) (ProviderSession, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(cfg.SystemPrompt, genai.RoleUser),
	}

	history := make([]*genai.Content, 0, len(restoreFrom))
	for _, turn := range restoreFrom {
		history = append(history, genai.NewContentFromText(turn.Content, geminiRole(turn.Role)))
	}

	session, err := p.client.Chats.Create(ctx, cfg.Model, config, history)
	if err != nil {
		return nil, &SessionInitError{Err: err}
	}

	return &geminiSession{chat: session}, nil
}

type geminiSession struct {
	chat *genai.Chat
}

// SendStream implements ProviderSession. Vendor rate-limit errors are
// remapped to ErrQuotaExhausted so the orchestrator can recover
// structurally instead of surfacing them.
func (s *geminiSession) SendStream(ctx context.Context, text string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for resp, err := range s.chat.SendMessageStream(ctx, genai.Part{Text: text}) {
			if err != nil {
				yield("", remapQuotaError(err))
				return
			}
			if chunk := resp.Text(); chunk != "" {
				if !yield(chunk, nil) {
					return
				}
			}
		}
	}
}

// geminiRole maps transcript roles to the vendor's role vocabulary.
func geminiRole(r Role) genai.Role {
	if r == RoleAssistant {
		return genai.RoleModel
	}
	return genai.RoleUser
}

// remapQuotaError recognizes HTTP 429 / RESOURCE_EXHAUSTED responses and
// tags them with ErrQuotaExhausted. All other errors pass through.
func remapQuotaError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && (apiErr.Code == 429 || apiErr.Status == "RESOURCE_EXHAUSTED") {
		return fmt.Errorf("%w: %s", ErrQuotaExhausted, apiErr.Message)
	}
	return err
}
