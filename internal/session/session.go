package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/slopeshowdown/internal/problemgen"
	"github.com/abhisek/slopeshowdown/internal/store"
)

// Start signs a player in and begins a fresh game with a new id. Any game
// already running on this session is abandoned without a summary.
func (s *Session) Start(name, classPeriod string) (string, error) {
	name, classPeriod = strings.TrimSpace(name), strings.TrimSpace(classPeriod)
	if name == "" || classPeriod == "" {
		return "", ErrMissingPlayer
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.begin(); err != nil {
		return "", err
	}
	s.name, s.classPeriod = name, classPeriod
	s.logger.Info("game started",
		zap.String("session_id", s.id),
		zap.String("class_period", classPeriod),
		zap.Int("questions", len(s.questions)))
	return s.id, nil
}

// Restart is "Play Again": same player, new id, new batch, zeroed counters.
func (s *Session) Restart() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseNotStarted {
		return "", &TransitionError{Op: "restart", From: s.phase, Reason: ErrNotStarted}
	}
	prev := s.id
	if err := s.begin(); err != nil {
		return "", err
	}
	s.logger.Info("game restarted",
		zap.String("previous_session_id", prev),
		zap.String("session_id", s.id))
	return s.id, nil
}

// Reset returns the session to NotStarted, forgetting the player.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearGame()
	s.id, s.name, s.classPeriod = "", "", ""
	s.questions = nil
	s.phase = PhaseNotStarted
}

// begin mints an id, generates a batch and zeroes the game. Caller holds mu.
func (s *Session) begin() error {
	if s.rng == nil {
		seed, err := problemgen.RandomSeed()
		if err != nil {
			return fmt.Errorf("seed question batch: %w", err)
		}
		s.rng = problemgen.NewRand(seed)
	}
	s.clearGame()
	s.id = s.newID()
	s.questions = problemgen.BuildSet(s.cfg.NumQuestions, s.rng)
	s.phase = PhaseInProgress
	return nil
}

func (s *Session) clearGame() {
	s.index = 0
	s.score, s.streak, s.bestStreak = 0, 0, 0
	s.attempted, s.correct = 0, 0
	s.answered, s.selected = false, ""
	s.lastDelta, s.lastCorrect = 0, false
	s.autoFinished, s.summaryLogged = false, false
}

// checkActive rejects calls outside InProgress. Caller holds mu.
func (s *Session) checkActive(op string) error {
	switch s.phase {
	case PhaseNotStarted:
		return &TransitionError{Op: op, From: s.phase, Reason: ErrNotStarted}
	case PhaseFinished:
		return &TransitionError{Op: op, From: s.phase, Reason: ErrFinished}
	}
	return nil
}

// SubmitAnswer scores choice against the current question and logs it.
//
// An empty choice is a submission with nothing selected and counts as
// incorrect. If the score reaches the win threshold the game finishes and
// the summary is logged. Log failures are returned alongside the Result;
// the scored state is kept.
func (s *Session) SubmitAnswer(ctx context.Context, choice string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkActive("submit"); err != nil {
		return Result{}, err
	}
	if s.answered {
		return Result{}, ErrAlreadyAnswered
	}
	if choice != "" && !problemgen.IsCategory(choice) {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidChoice, choice)
	}

	q := &s.questions[s.index]
	correct := problemgen.CheckAnswer(choice, q)
	delta := -WrongAnswerPenalty
	if correct {
		s.streak++
		delta = ScoreDelta(s.streak)
		s.bestStreak = max(s.bestStreak, s.streak)
		s.correct++
	} else {
		s.streak = 0
	}
	s.score += delta
	s.attempted++
	s.answered, s.selected = true, choice
	s.lastDelta, s.lastCorrect = delta, correct

	var errs []error
	if err := s.rec.AppendProgress(ctx, s.progressRecord(q)); err != nil {
		s.logger.Error("progress append failed", zap.String("session_id", s.id), zap.Error(err))
		errs = append(errs, err)
	}

	if s.score >= s.cfg.WinThreshold {
		s.autoFinished = true
		s.phase = PhaseFinished
		if err := s.logSummary(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return Result{
		Correct:      correct,
		Choice:       choice,
		Answer:       q.Answer,
		Delta:        delta,
		Score:        s.score,
		Streak:       s.streak,
		BestStreak:   s.bestStreak,
		AutoFinished: s.autoFinished,
		Finished:     s.phase == PhaseFinished,
	}, errors.Join(errs...)
}

// Advance moves past an answered question. After the last question the
// game finishes and the summary is logged.
func (s *Session) Advance(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkActive("advance"); err != nil {
		return err
	}
	if !s.answered {
		return &TransitionError{Op: "advance", From: s.phase, Reason: ErrNotAnswered}
	}

	s.index++
	s.answered, s.selected = false, ""
	if s.index < len(s.questions) {
		return nil
	}
	s.phase = PhaseFinished
	return s.logSummary(ctx)
}

// logSummary appends the summary at most once per game. The guard is set
// before the append so a failed write is not repeated. Caller holds mu.
func (s *Session) logSummary(ctx context.Context) error {
	if s.summaryLogged {
		return nil
	}
	s.summaryLogged = true

	won := s.score >= s.cfg.WinThreshold
	s.logger.Info("game finished",
		zap.String("session_id", s.id),
		zap.Int("score", s.score),
		zap.Int("best_streak", s.bestStreak),
		zap.Bool("won", won),
		zap.Bool("auto_finished", s.autoFinished))

	err := s.rec.AppendSummary(ctx, store.SummaryRecord{
		Timestamp:      s.now(),
		SessionID:      s.id,
		Name:           s.name,
		ClassPeriod:    s.classPeriod,
		Score:          s.score,
		BestStreak:     s.bestStreak,
		TotalQuestions: len(s.questions),
		Won:            won,
	})
	if err != nil {
		s.logger.Error("summary append failed", zap.String("session_id", s.id), zap.Error(err))
	}
	return err
}

func (s *Session) progressRecord(q *problemgen.Question) store.ProgressRecord {
	return store.ProgressRecord{
		Timestamp:      s.now(),
		SessionID:      s.id,
		Name:           s.name,
		ClassPeriod:    s.classPeriod,
		QuestionIndex:  s.index + 1,
		TotalQuestions: len(s.questions),
		Choice:         s.selected,
		Answer:         string(q.Answer),
		Correct:        s.lastCorrect,
		ScoreAfter:     s.score,
		StreakAfter:    s.streak,
		BestStreak:     s.bestStreak,
	}
}

// ID returns the current session id, empty before Start.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Phase returns the lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// CurrentQuestion returns a copy of the question on screen. It reports
// false when no game is in progress.
func (s *Session) CurrentQuestion() (*problemgen.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.currentQuestion()
	return q, q != nil
}

func (s *Session) currentQuestion() *problemgen.Question {
	if s.phase != PhaseInProgress || s.index >= len(s.questions) {
		return nil
	}
	q := s.questions[s.index]
	q.Choices = append([]problemgen.Category(nil), q.Choices...)
	return &q
}

// HUD returns the score line.
func (s *Session) HUD() HUD {
	s.mu.Lock()
	defer s.mu.Unlock()
	return HUD{
		Score:      s.score,
		Streak:     s.streak,
		BestStreak: s.bestStreak,
		Index:      s.index,
		Total:      len(s.questions),
		Phase:      s.phase,
	}
}

// Selected returns the choice submitted for the current question, empty
// until it is answered.
func (s *Session) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Snapshot copies the session for rendering.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:            s.id,
		Name:          s.name,
		ClassPeriod:   s.classPeriod,
		Phase:         s.phase,
		Index:         s.index,
		Total:         len(s.questions),
		Score:         s.score,
		Streak:        s.streak,
		BestStreak:    s.bestStreak,
		Answered:      s.answered,
		Selected:      s.selected,
		LastDelta:     s.lastDelta,
		LastCorrect:   s.lastCorrect,
		AutoFinished:  s.autoFinished,
		SummaryLogged: s.summaryLogged,
		Question:      s.currentQuestion(),
	}
}

// Summary returns the game-over data. It is meaningful once Phase is
// PhaseFinished but can be read at any time.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summary{
		SessionID:    s.id,
		Name:         s.name,
		ClassPeriod:  s.classPeriod,
		Score:        s.score,
		BestStreak:   s.bestStreak,
		Attempted:    s.attempted,
		Correct:      s.correct,
		Total:        len(s.questions),
		WinThreshold: s.cfg.WinThreshold,
		Won:          s.score >= s.cfg.WinThreshold,
		AutoFinished: s.autoFinished,
	}
}
