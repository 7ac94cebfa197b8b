// Package session is the in-game screen: graph, answer grid and HUD.
package session

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/slopeshowdown/internal/problemgen"
	"github.com/abhisek/slopeshowdown/internal/router"
	"github.com/abhisek/slopeshowdown/internal/screen"
	"github.com/abhisek/slopeshowdown/internal/screens/shared"
	summaryscreen "github.com/abhisek/slopeshowdown/internal/screens/summary"
	sess "github.com/abhisek/slopeshowdown/internal/session"
	"github.com/abhisek/slopeshowdown/internal/store"
	"github.com/abhisek/slopeshowdown/internal/ui/components"
	"github.com/abhisek/slopeshowdown/internal/ui/layout"
)

// SessionScreen implements screen.Screen for one game.
type SessionScreen struct {
	env  shared.Env
	id   string
	snap sess.Snapshot
	grid components.ChoiceGrid

	// question outlives the snapshot's copy, which is cleared on finish,
	// so the last graph stays on screen next to the final feedback.
	question *problemgen.Question

	result             *sess.Result // last scored answer, nil until answered
	warnMsg            string       // log write failure; play continues
	errMsg             string
	busy               bool
	showingQuitConfirm bool
	finished           bool
}

var (
	_ screen.Screen          = (*SessionScreen)(nil)
	_ screen.KeyHintProvider = (*SessionScreen)(nil)
	_ screen.StatusProvider  = (*SessionScreen)(nil)
	_ screen.BackInterceptor = (*SessionScreen)(nil)
)

// New creates the screen for the already-started game id.
func New(env shared.Env, id string) *SessionScreen {
	s := &SessionScreen{env: env, id: id}
	s.refresh()
	s.resetGrid()
	return s
}

// ID returns the game's session id.
func (s *SessionScreen) ID() string {
	return s.id
}

func (s *SessionScreen) Init() tea.Cmd {
	return nil
}

func (s *SessionScreen) Title() string {
	return "Slope Showdown"
}

// InterceptsBack is always true: Esc asks before abandoning a game.
func (s *SessionScreen) InterceptsBack() bool {
	return true
}

func (s *SessionScreen) refresh() {
	g, err := s.env.Service.Session(s.id)
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.snap = g.Snapshot()
	if s.snap.Question != nil {
		s.question = s.snap.Question
	}
}

func (s *SessionScreen) resetGrid() {
	var options []string
	if s.question != nil {
		for _, c := range s.question.Choices {
			options = append(options, string(c))
		}
	} else {
		for _, c := range problemgen.Categories {
			options = append(options, string(c))
		}
	}
	s.grid = components.NewChoiceGrid(options)
	s.result = nil
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.ChoiceSubmittedMsg:
		return s, s.submit(msg.Choice)

	case answerScoredMsg:
		return s.handleScored(msg)

	case advancedMsg:
		return s.handleAdvanced(msg)

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, s.leave()
	}

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			return s, s.leave()
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	if key == "esc" {
		s.showingQuitConfirm = true
		return s, nil
	}

	if s.busy {
		return s, nil
	}

	if s.snap.Answered || s.snap.Phase == sess.PhaseFinished {
		switch key {
		case "enter", "space", "n":
			if s.snap.Phase == sess.PhaseFinished {
				return s, s.finish()
			}
			return s, s.advance()
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.grid, cmd = s.grid.Update(msg)
	return s, cmd
}

// leave abandons the game and goes back to the menu.
func (s *SessionScreen) leave() tea.Cmd {
	s.env.Service.EndSession(s.id)
	return func() tea.Msg { return router.PopToRootMsg{} }
}

func (s *SessionScreen) submit(choice string) tea.Cmd {
	if s.busy {
		return nil
	}
	s.busy = true
	svc, id := s.env.Service, s.id
	return func() tea.Msg {
		res, err := svc.SubmitAnswer(context.Background(), id, choice)
		return answerScoredMsg{Result: res, Err: err}
	}
}

func (s *SessionScreen) advance() tea.Cmd {
	if s.busy {
		return nil
	}
	s.busy = true
	svc, id := s.env.Service, s.id
	return func() tea.Msg {
		return advancedMsg{Err: svc.Advance(context.Background(), id)}
	}
}

// splitErr separates log write failures, which leave the game playable,
// from rejected operations.
func (s *SessionScreen) splitErr(err error) (fatal error) {
	if err == nil {
		return nil
	}
	var we *store.WriteError
	if errors.As(err, &we) {
		s.warnMsg = "Couldn't save to the log: " + we.Path
		s.env.Log().Warn("log write failed", zap.String("session_id", s.id), zap.Error(err))
		return nil
	}
	return err
}

func (s *SessionScreen) handleScored(msg answerScoredMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if err := s.splitErr(msg.Err); err != nil {
		if errors.Is(err, sess.ErrAlreadyAnswered) || errors.Is(err, sess.ErrInvalidChoice) {
			s.warnMsg = err.Error()
			return s, nil
		}
		s.errMsg = err.Error()
		return s, nil
	}

	res := msg.Result
	s.result = &res
	s.grid.Reveal(res.Choice, string(res.Answer))
	s.refresh()
	return s, nil
}

func (s *SessionScreen) handleAdvanced(msg advancedMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if err := s.splitErr(msg.Err); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.refresh()
	if s.snap.Phase == sess.PhaseFinished {
		return s, s.finish()
	}
	s.resetGrid()
	return s, nil
}

// finish hands over to the game-over screen.
func (s *SessionScreen) finish() tea.Cmd {
	if s.finished {
		return nil
	}
	summary, err := s.env.Service.Summary(s.id)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.finished = true

	env := s.env
	playAgain := func(id string) (screen.Screen, error) {
		newID, err := env.Service.PlayAgain(id)
		if err != nil {
			return nil, err
		}
		return New(env, newID), nil
	}
	next := summaryscreen.New(env, summary, playAgain)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.showingQuitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave game"},
			{Key: "N", Description: "Keep playing"},
		}
	case s.snap.Phase == sess.PhaseFinished:
		return []layout.KeyHint{{Key: "Enter", Description: "See results"}}
	case s.snap.Answered:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next question"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "←↑↓→", Description: "Move"},
		{Key: "1-4", Description: "Pick"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

// Status is shown in the header.
func (s *SessionScreen) Status() string {
	return statusLine(s.snap)
}
