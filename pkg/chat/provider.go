package chat

import (
	"context"
	"errors"
	"iter"
)

// ErrCredentialMissing is returned when no API key is available. Nothing
// is retried automatically; the operator has to supply a key.
var ErrCredentialMissing = errors.New("chat: missing API key")

// ErrQuotaExhausted marks a vendor rate-limit or resource-exhaustion
// failure. It is the only error class that triggers a session rebuild.
var ErrQuotaExhausted = errors.New("chat: quota exhausted")

// SessionInitError wraps a failure to construct the vendor client or to
// create a chat session. It is fatal to the operation that raised it; no
// partial session is left active.
type SessionInitError struct {
	Err error
}

func (e *SessionInitError) Error() string {
	return "chat: session initialization failed: " + e.Err.Error()
}

func (e *SessionInitError) Unwrap() error {
	return e.Err
}

// Provider abstracts the vendor generative-language API. The production
// implementation is GeminiProvider; tests substitute their own.
type Provider interface {
	// NewSession creates a vendor-backed chat session scoped to the given
	// model and system prompt. Turns in restoreFrom are replayed into the
	// new session in order, with the assistant role mapped to the
	// vendor's role vocabulary.
	NewSession(ctx context.Context, cfg SessionConfig, restoreFrom []Turn) (ProviderSession, error)
}

// ProviderSession is an opaque handle to vendor-held conversational
// state. At most one handle is active per conversational state.
type ProviderSession interface {
	// SendStream submits one prompt and returns the reply as a lazy,
	// finite, non-restartable sequence of text fragments.
	SendStream(ctx context.Context, text string) iter.Seq2[string, error]
}
