package chat

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	chatcore "github.com/wearcast/stylechat/pkg/chat"
	"github.com/wearcast/stylechat/pkg/sdk"
	"github.com/wearcast/stylechat/pkg/utils"
)

var (
	// ErrSessionNotFound is returned for unknown or expired session IDs
	ErrSessionNotFound = errors.New("session not found")

	// ErrBusy is returned when a submission is already in flight for the
	// session; the input surface is single-slot
	ErrBusy = errors.New("a message is already being processed for this session")

	// ErrUnknownModel is returned when the requested model is not in the catalog
	ErrUnknownModel = errors.New("model is not in the catalog")

	// ErrEmptyLog is returned when an export is requested but nothing was logged
	ErrEmptyLog = errors.New("the audit log is empty")
)

// session is one independently owned conversational state. No state is
// shared between sessions; each has its own manager, orchestrator, and
// vendor handle.
type session struct {
	id        uuid.UUID
	createdAt time.Time

	mu      sync.Mutex
	busy    bool
	state   chatcore.State
	manager *chatcore.Manager
	orch    *chatcore.Orchestrator
}

// Service owns all chat sessions of this server instance
type Service struct {
	catalog      chatcore.Catalog
	systemPrompt string

	// provider backs sessions that did not bring their own API key;
	// nil when the server has no credential configured
	provider chatcore.Provider

	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
}

var service *Service

// Init builds the service from the environment-backed config
func Init(cfg *utils.Config) {
	catalogPath := cfg.GetWithDefault("MODEL_CATALOG", "config/models.yaml")
	promptPath := cfg.GetWithDefault("SYSTEM_PROMPT_FILE", "prompts/stylist.txt")

	catalog := chatcore.LoadCatalogWithFallback(catalogPath)
	prompt := utils.LoadPromptWithFallback(promptPath, chatcore.FallbackSystemPrompt)

	var provider chatcore.Provider
	if key := cfg.Get("GEMINI_API_KEY"); key != "" {
		p, err := chatcore.NewGeminiProvider(context.Background(), key)
		if err != nil {
			log.Fatalf("[CHAT]: Failed to initialize Gemini client: %v", err)
		}
		provider = p
	} else {
		log.Println("[CHAT]: GEMINI_API_KEY not set; sessions must supply their own key")
	}

	service = newService(provider, catalog, prompt)
}

// newService wires a service instance; tests call this directly with a
// fake provider
func newService(provider chatcore.Provider, catalog chatcore.Catalog, systemPrompt string) *Service {
	return &Service{
		catalog:      catalog,
		systemPrompt: systemPrompt,
		provider:     provider,
		sessions:     make(map[uuid.UUID]*session),
	}
}

// GetService returns the service instance
func GetService() *Service {
	if service == nil {
		log.Fatal("[CHAT]: Service is not initialized")
	}
	return service
}

// CreateSession starts a new conversation with its own vendor session
func (s *Service) CreateSession(ctx context.Context, req sdk.CreateSessionRequest) (*sdk.Session, error) {
	model := req.Model
	if model == "" {
		model = s.catalog.Default
	}
	if !s.catalog.Contains(model) {
		return nil, ErrUnknownModel
	}

	provider := s.provider
	if req.APIKey != "" {
		p, err := chatcore.NewGeminiProvider(ctx, req.APIKey)
		if err != nil {
			return nil, err
		}
		provider = p
	}
	if provider == nil {
		return nil, chatcore.ErrCredentialMissing
	}

	manager := chatcore.NewManager(provider)
	sess := &session{
		id:        uuid.New(),
		createdAt: time.Now(),
		manager:   manager,
		orch:      chatcore.NewOrchestrator(manager),
	}

	cfg := chatcore.SessionConfig{Model: model, SystemPrompt: s.systemPrompt}
	if err := manager.CreateSession(ctx, &sess.state, cfg, nil); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	snapshot := sess.snapshot()
	return &snapshot, nil
}

// GetSession returns a snapshot of an existing session
func (s *Service) GetSession(sessionID string) (*sdk.Session, error) {
	sess, err := s.find(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.busy {
		return nil, ErrBusy
	}

	snapshot := sess.snapshot()
	return &snapshot, nil
}

// Submit runs one prompt through the session's orchestrator. Only one
// submission may be in flight per session; concurrent calls get ErrBusy.
func (s *Service) Submit(ctx context.Context, sessionID, content string, onFragment func(accumulated string)) (chatcore.SubmitResult, error) {
	sess, err := s.find(sessionID)
	if err != nil {
		return chatcore.SubmitResult{}, err
	}

	sess.mu.Lock()
	if sess.busy {
		sess.mu.Unlock()
		return chatcore.SubmitResult{}, ErrBusy
	}
	sess.busy = true
	sess.mu.Unlock()

	defer func() {
		sess.mu.Lock()
		sess.busy = false
		sess.mu.Unlock()
	}()

	return sess.orch.Submit(ctx, &sess.state, content, onFragment)
}

// Reset discards the conversation, optionally switching the model
func (s *Service) Reset(ctx context.Context, sessionID, model string) (*sdk.Session, error) {
	sess, err := s.find(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.busy {
		return nil, ErrBusy
	}

	if model == "" {
		model = sess.state.Config.Model
	}
	if !s.catalog.Contains(model) {
		return nil, ErrUnknownModel
	}

	if err := sess.manager.Reset(ctx, &sess.state, model, s.systemPrompt); err != nil {
		return nil, err
	}

	snapshot := sess.snapshot()
	return &snapshot, nil
}

// SetLogging flips the per-turn audit logging toggle
func (s *Service) SetLogging(sessionID string, enabled bool) error {
	sess, err := s.find(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.busy {
		return ErrBusy
	}

	sess.state.AutoLog = enabled
	return nil
}

// ExportLog renders the session's audit log as a CSV download
func (s *Service) ExportLog(sessionID string) (filename string, data []byte, err error) {
	sess, err := s.find(sessionID)
	if err != nil {
		return "", nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.busy {
		return "", nil, ErrBusy
	}

	if len(sess.state.AuditLog) == 0 {
		return "", nil, ErrEmptyLog
	}

	data, err = sess.state.AuditLog.ExportCSV()
	if err != nil {
		return "", nil, err
	}
	return chatcore.ExportFilename(time.Now()), data, nil
}

// Models returns the selectable model catalog
func (s *Service) Models() sdk.Models {
	return sdk.Models{Default: s.catalog.Default, Models: s.catalog.Models}
}

// find looks up a session by its string UUID
func (s *Service) find(sessionID string) (*session, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// snapshot converts the owned state into the SDK representation. Callers
// hold the session lock or otherwise own the state.
func (sess *session) snapshot() sdk.Session {
	turns := make([]sdk.Turn, 0, len(sess.state.Transcript))
	for _, turn := range sess.state.Transcript {
		turns = append(turns, sdk.Turn{
			Role:      string(turn.Role),
			Content:   turn.Content,
			Synthetic: turn.Synthetic,
		})
	}

	return sdk.Session{
		ID:           sess.id.String(),
		CreatedAt:    sess.createdAt,
		Model:        sess.state.Config.Model,
		AutoLog:      sess.state.AutoLog,
		Turns:        turns,
		Pairs:        sess.state.Transcript.Pairs(),
		MessageCount: len(sess.state.Transcript),
		LogCount:     len(sess.state.AuditLog),
	}
}
