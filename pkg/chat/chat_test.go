package chat

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"time"
)

// fakeSession scripts one reply stream for a test.
type fakeSession struct {
	fragments []string
	err       error
}

func (s *fakeSession) SendStream(ctx context.Context, text string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, fragment := range s.fragments {
			if !yield(fragment, nil) {
				return
			}
		}
		if s.err != nil {
			yield("", s.err)
		}
	}
}

// createCall records one NewSession invocation for assertions.
type createCall struct {
	cfg      SessionConfig
	restored []Turn
}

// fakeProvider hands out scripted sessions in order and records every
// session creation.
type fakeProvider struct {
	queue   []*fakeSession
	creates []createCall
	initErr error
}

func (p *fakeProvider) NewSession(ctx context.Context, cfg SessionConfig, restoreFrom []Turn) (ProviderSession, error) {
	if p.initErr != nil {
		return nil, &SessionInitError{Err: p.initErr}
	}

	p.creates = append(p.creates, createCall{cfg: cfg, restored: slices.Clone(restoreFrom)})
	if len(p.queue) == 0 {
		return &fakeSession{}, nil
	}
	next := p.queue[0]
	p.queue = p.queue[1:]
	return next, nil
}

// newTestOrchestrator wires a provider, manager, orchestrator, and an
// initialized state with the default config.
func newTestOrchestrator(provider *fakeProvider) (*Orchestrator, *Manager, *State) {
	manager := NewManager(provider)
	orchestrator := NewOrchestrator(manager)
	orchestrator.now = func() time.Time {
		return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	}

	st := &State{}
	if err := manager.CreateSession(context.Background(), st, SessionConfig{
		Model:        DefaultModel,
		SystemPrompt: FallbackSystemPrompt,
	}, nil); err != nil {
		panic(err)
	}
	return orchestrator, manager, st
}

// seedPairs runs n completed user/assistant exchanges through the
// orchestrator with per-turn logging enabled.
func seedPairs(o *Orchestrator, provider *fakeProvider, st *State, n int) error {
	st.AutoLog = true
	for i := 0; i < n; i++ {
		st.handle = &fakeSession{fragments: []string{fmt.Sprintf("reply %d", i+1)}}
		if _, err := o.Submit(context.Background(), st, fmt.Sprintf("question %d", i+1), nil); err != nil {
			return err
		}
	}
	return nil
}

func quotaErr() error {
	return fmt.Errorf("%w: requests per minute exceeded", ErrQuotaExhausted)
}
