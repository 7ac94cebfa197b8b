package session

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/abhisek/slopeshowdown/internal/problemgen"
	"github.com/abhisek/slopeshowdown/internal/store"
)

// LogStore is the persistence the Service needs. *store.Store implements it.
type LogStore interface {
	Recorder
	ReadProgress() (*store.Table, error)
	ReadSummary() (*store.Table, error)
}

// Service runs any number of concurrent games, keyed by session id.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	store  LogStore
	cfg    Config
	opts   []Option
	logger *zap.Logger
}

// NewService creates a Service. opts are applied to every session it
// creates, after the service logger.
func NewService(st LogStore, cfg Config, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		sessions: make(map[string]*Session),
		store:    st,
		cfg:      cfg,
		opts:     opts,
		logger:   logger,
	}
}

// Config returns the settings applied to new games.
func (svc *Service) Config() Config {
	return svc.cfg.withDefaults()
}

// StartSession signs a player in and returns the new session id.
func (svc *Service) StartSession(name, classPeriod string) (string, error) {
	opts := append([]Option{WithLogger(svc.logger)}, svc.opts...)
	s := NewSession(svc.cfg, svc.store, opts...)
	id, err := s.Start(name, classPeriod)
	if err != nil {
		return "", err
	}

	svc.mu.Lock()
	svc.sessions[id] = s
	svc.mu.Unlock()
	return id, nil
}

// Session returns the live session for id.
func (svc *Service) Session(id string) (*Session, error) {
	svc.mu.RLock()
	s, ok := svc.sessions[id]
	svc.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	return s, nil
}

// CurrentQuestion returns the question on screen, or false once finished.
func (svc *Service) CurrentQuestion(id string) (*problemgen.Question, bool, error) {
	s, err := svc.Session(id)
	if err != nil {
		return nil, false, err
	}
	q, ok := s.CurrentQuestion()
	return q, ok, nil
}

func (svc *Service) SubmitAnswer(ctx context.Context, id, choice string) (Result, error) {
	s, err := svc.Session(id)
	if err != nil {
		return Result{}, err
	}
	return s.SubmitAnswer(ctx, choice)
}

func (svc *Service) Advance(ctx context.Context, id string) error {
	s, err := svc.Session(id)
	if err != nil {
		return err
	}
	return s.Advance(ctx)
}

func (svc *Service) HUD(id string) (HUD, error) {
	s, err := svc.Session(id)
	if err != nil {
		return HUD{}, err
	}
	return s.HUD(), nil
}

func (svc *Service) Summary(id string) (Summary, error) {
	s, err := svc.Session(id)
	if err != nil {
		return Summary{}, err
	}
	return s.Summary(), nil
}

// PlayAgain restarts the player's game under a new id, which replaces id
// in the registry.
func (svc *Service) PlayAgain(id string) (string, error) {
	s, err := svc.Session(id)
	if err != nil {
		return "", err
	}
	newID, err := s.Restart()
	if err != nil {
		return "", err
	}

	svc.mu.Lock()
	delete(svc.sessions, id)
	svc.sessions[newID] = s
	svc.mu.Unlock()
	return newID, nil
}

// EndSession forgets id. Unfinished games are dropped without a summary.
func (svc *Service) EndSession(id string) {
	svc.mu.Lock()
	s, ok := svc.sessions[id]
	delete(svc.sessions, id)
	svc.mu.Unlock()

	if ok {
		s.Reset()
	}
}

// Active returns the number of registered sessions.
func (svc *Service) Active() int {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return len(svc.sessions)
}

// ReadProgressLog reads the progress log. A missing log is a nil table.
func (svc *Service) ReadProgressLog() (*store.Table, error) {
	t, err := svc.store.ReadProgress()
	if err != nil {
		return nil, fmt.Errorf("read progress log: %w", err)
	}
	return t, nil
}

// ReadSummaryLog reads the summary log. A missing log is a nil table.
func (svc *Service) ReadSummaryLog() (*store.Table, error) {
	t, err := svc.store.ReadSummary()
	if err != nil {
		return nil, fmt.Errorf("read summary log: %w", err)
	}
	return t, nil
}
