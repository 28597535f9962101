package chat

import (
	"context"
	"slices"
)

// State is the complete conversational state of one UI session: the
// visible transcript, the audit log, the session configuration, the
// per-turn logging toggle, and the active vendor session handle. A State
// has a single logical owner; it must not be shared across users.
type State struct {
	Transcript Transcript
	AuditLog   AuditLog
	Config     SessionConfig
	AutoLog    bool

	handle ProviderSession
}

// Active reports whether a vendor session handle exists.
func (s *State) Active() bool {
	return s.handle != nil
}

// Manager owns the vendor session handle of a conversational state and is
// the only component that creates or replaces it.
type Manager struct {
	provider Provider
}

// NewManager creates a session manager on top of the given provider.
func NewManager(provider Provider) *Manager {
	return &Manager{provider: provider}
}

// CreateSession establishes a new vendor-backed session for the state,
// discarding any previously held handle. With restoreFrom nil the
// transcript and audit log are cleared (full reset); otherwise the given
// turns are replayed into the new session and become the visible
// transcript. On failure the state is left untouched and no partial
// session is active.
func (m *Manager) CreateSession(ctx context.Context, st *State, cfg SessionConfig, restoreFrom []Turn) error {
	handle, err := m.provider.NewSession(ctx, cfg, restoreFrom)
	if err != nil {
		return err
	}

	st.handle = handle
	st.Config = cfg
	if restoreFrom == nil {
		st.Transcript = nil
		st.AuditLog = nil
	} else {
		st.Transcript = slices.Clone(restoreFrom)
	}
	return nil
}

// EnsureModel re-creates the session whenever the requested model differs
// from the model of the active handle, or when no handle exists yet. A
// model switch is a full reset: transcript and audit log are discarded.
func (m *Manager) EnsureModel(ctx context.Context, st *State, model, systemPrompt string) error {
	if st.handle != nil && st.Config.Model == model {
		return nil
	}
	return m.CreateSession(ctx, st, SessionConfig{Model: model, SystemPrompt: systemPrompt}, nil)
}

// Reset discards the conversation and starts a fresh session with the
// given model. This follows the same full-reset contract as a model
// switch and is the only other path that clears the audit log.
func (m *Manager) Reset(ctx context.Context, st *State, model, systemPrompt string) error {
	return m.CreateSession(ctx, st, SessionConfig{Model: model, SystemPrompt: systemPrompt}, nil)
}
