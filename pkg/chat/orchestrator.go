package chat

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"
)

// ErrNoActiveSession is returned when Submit is called before a session
// has been created.
var ErrNoActiveSession = errors.New("chat: no active session")

// SubmitResult describes the outcome of one request/response cycle.
type SubmitResult struct {
	// Reply is the final assistant text. Empty when the reply was
	// replaced by the restoration procedure or when the model returned
	// nothing.
	Reply string

	// Restored is set when a quota-exhaustion error forced a session
	// rebuild; the caller should re-render from the new state.
	Restored bool
}

// Orchestrator drives request/response cycles against an owned State.
// It is single-threaded by contract: one submission in flight per state.
type Orchestrator struct {
	manager *Manager

	// now is swapped out in tests for deterministic log timestamps.
	now func() time.Time
}

// NewOrchestrator creates an orchestrator using the given session manager
// for recovery.
func NewOrchestrator(manager *Manager) *Orchestrator {
	return &Orchestrator{manager: manager, now: time.Now}
}

// Submit runs one user-submitted message: the user turn and its audit
// entry are appended immediately and unconditionally, the reply is
// streamed and accumulated fragment by fragment, and the completed reply
// is appended as an assistant turn. onFragment, if non-nil, receives the
// accumulated text after every fragment.
//
// A quota-exhaustion error triggers the restoration procedure instead of
// producing a reply. Any other send failure is substituted with an
// apology message and the conversation continues on the same session.
func (o *Orchestrator) Submit(ctx context.Context, st *State, prompt string, onFragment func(accumulated string)) (SubmitResult, error) {
	if st.handle == nil {
		return SubmitResult{}, ErrNoActiveSession
	}

	st.Transcript = append(st.Transcript, Turn{Role: RoleUser, Content: prompt})
	st.AuditLog = append(st.AuditLog, LogEntry{
		Timestamp: o.now(),
		Role:      RoleUser,
		Content:   prompt,
		Model:     st.Config.Model,
	})

	var reply strings.Builder
	for fragment, err := range st.handle.SendStream(ctx, prompt) {
		if err != nil {
			if errors.Is(err, ErrQuotaExhausted) {
				// The pending user turn stays out of the restored
				// transcript; no reply is generated for it this cycle.
				st.Transcript = st.Transcript[:len(st.Transcript)-1]
				if restoreErr := o.Restore(ctx, st); restoreErr != nil {
					return SubmitResult{}, restoreErr
				}
				return SubmitResult{Restored: true}, nil
			}

			text := apologyPrefix + err.Error()
			o.appendAssistant(st, text)
			return SubmitResult{Reply: text}, nil
		}

		reply.WriteString(fragment)
		if onFragment != nil {
			onFragment(reply.String())
		}
	}

	text := reply.String()
	if text != "" {
		o.appendAssistant(st, text)
	}
	return SubmitResult{Reply: text}, nil
}

// Restore rebuilds the vendor session from a bounded recent window of the
// conversation and surfaces the restart notice as a synthetic assistant
// turn. The notice is always written to the audit log, independent of the
// per-turn logging toggle.
func (o *Orchestrator) Restore(ctx context.Context, st *State) error {
	window := st.Transcript.Window(MaxHistoryTurns)
	logWindow := st.AuditLog.Window(MaxHistoryTurns)

	if err := o.manager.CreateSession(ctx, st, st.Config, window); err != nil {
		return err
	}

	st.Transcript = append(st.Transcript, Turn{
		Role:      RoleAssistant,
		Content:   RestartNotice,
		Synthetic: true,
	})
	st.AuditLog = append(slices.Clone(logWindow), LogEntry{
		Timestamp: o.now(),
		Role:      RoleAssistant,
		Content:   RestartNotice,
		Model:     st.Config.Model,
	})
	return nil
}

// appendAssistant records a completed assistant reply. The audit log only
// receives it when per-turn logging is enabled; synthetic notices never
// pass through here, so no duplicate suppression is needed.
func (o *Orchestrator) appendAssistant(st *State, content string) {
	st.Transcript = append(st.Transcript, Turn{Role: RoleAssistant, Content: content})
	if st.AutoLog {
		st.AuditLog = append(st.AuditLog, LogEntry{
			Timestamp: o.now(),
			Role:      RoleAssistant,
			Content:   content,
			Model:     st.Config.Model,
		})
	}
}
