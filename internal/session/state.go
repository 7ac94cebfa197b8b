package session

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/slopeshowdown/internal/problemgen"
	"github.com/abhisek/slopeshowdown/internal/store"
)

// Recorder persists answers and finished games. *store.Store implements it.
type Recorder interface {
	AppendProgress(ctx context.Context, rec store.ProgressRecord) error
	AppendSummary(ctx context.Context, rec store.SummaryRecord) error
}

// Phase is the lifecycle position of a session.
type Phase int

const (
	PhaseNotStarted Phase = iota // no player signed in
	PhaseInProgress              // serving questions
	PhaseFinished                // summary logged (or attempted)
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not started"
	case PhaseInProgress:
		return "in progress"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Session is one player's game. All methods are safe for concurrent use;
// a state change and the log append it triggers happen under the same lock.
type Session struct {
	mu sync.Mutex

	cfg    Config
	rec    Recorder
	now    func() time.Time
	newID  func() string
	rng    *rand.Rand
	logger *zap.Logger

	id          string
	name        string
	classPeriod string
	questions   []problemgen.Question
	index       int
	phase       Phase

	score      int
	streak     int
	bestStreak int
	attempted  int
	correct    int

	answered      bool
	selected      string
	lastDelta     int
	lastCorrect   bool
	autoFinished  bool
	summaryLogged bool
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the time source used for log timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithIDFunc sets how session ids are minted.
func WithIDFunc(fn func() string) Option {
	return func(s *Session) { s.newID = fn }
}

// WithRand sets the random source for question batches. It takes precedence
// over Config.Seed.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession returns a session waiting for Start.
func NewSession(cfg Config, rec Recorder, opts ...Option) *Session {
	s := &Session{
		cfg:    cfg.withDefaults(),
		rec:    rec,
		now:    time.Now,
		newID:  NewID,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil && s.cfg.Seed != 0 {
		s.rng = problemgen.NewRand(s.cfg.Seed)
	}
	return s
}

// NewID mints an opaque session id: the first 12 hex digits of a random UUID.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// HUD is the heads-up display state of a session.
type HUD struct {
	Score      int
	Streak     int
	BestStreak int
	Index      int
	Total      int
	Phase      Phase
}

// Result is the outcome of one submitted answer.
type Result struct {
	Correct      bool
	Choice       string
	Answer       problemgen.Category
	Delta        int
	Score        int
	Streak       int
	BestStreak   int
	AutoFinished bool
	Finished     bool
}

// Snapshot is a point-in-time copy of a session for rendering.
type Snapshot struct {
	ID            string
	Name          string
	ClassPeriod   string
	Phase         Phase
	Index         int
	Total         int
	Score         int
	Streak        int
	BestStreak    int
	Answered      bool
	Selected      string
	LastDelta     int
	LastCorrect   bool
	AutoFinished  bool
	SummaryLogged bool

	// Question is a copy of the current question, nil once finished.
	Question *problemgen.Question
}

// Summary is the game-over data.
type Summary struct {
	SessionID    string
	Name         string
	ClassPeriod  string
	Score        int
	BestStreak   int
	Attempted    int
	Correct      int
	Total        int
	WinThreshold int
	Won          bool
	AutoFinished bool
}

// Accuracy returns the fraction of attempted questions answered correctly.
func (s Summary) Accuracy() float64 {
	if s.Attempted == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempted)
}
