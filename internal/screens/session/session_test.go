package session

import (
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/slopeshowdown/internal/router"
	"github.com/abhisek/slopeshowdown/internal/screens/shared"
	"github.com/abhisek/slopeshowdown/internal/screens/shared/sharedtest"
	summaryscreen "github.com/abhisek/slopeshowdown/internal/screens/summary"
	sess "github.com/abhisek/slopeshowdown/internal/session"
	"github.com/abhisek/slopeshowdown/internal/store"
)

func startGame(t *testing.T, cfg sess.Config) (*SessionScreen, shared.Env, *store.Store) {
	t.Helper()
	env, st := sharedtest.Env(t, cfg)
	id, err := env.Service.StartSession("Ada", "2")
	require.NoError(t, err)
	return New(env, id), env, st
}

// answer picks the right or wrong option and submits it.
func answer(t *testing.T, s *SessionScreen, correct bool) {
	t.Helper()
	right, wrong := sharedtest.AnswerKey(t, s.env.Service, s.id)
	key := wrong
	if correct {
		key = right
	}
	sharedtest.Drive(t, s, sharedtest.Key(key))
	sharedtest.Drive(t, s, sharedtest.Key(tea.KeyEnter))
}

func TestCorrectAnswerShowsFeedback(t *testing.T) {
	s, _, _ := startGame(t, sess.Config{NumQuestions: 15, WinThreshold: 10})

	answer(t, s, true)

	require.NotNil(t, s.result)
	assert.True(t, s.result.Correct)
	assert.Equal(t, 2, s.snap.Score)
	assert.True(t, s.snap.Answered)
	assert.True(t, s.grid.Locked)
	assert.Contains(t, s.View(100, 30), "Correct! +2 (streak x1)")
	assert.Contains(t, s.Status(), "Score 2")
	assert.Contains(t, s.Status(), "Ada")
}

func TestWrongAnswerThenNext(t *testing.T) {
	s, _, st := startGame(t, sess.Config{NumQuestions: 15, WinThreshold: 10})

	answer(t, s, false)
	assert.Equal(t, -1, s.snap.Score)
	assert.Contains(t, s.View(100, 30), "Incorrect. -1 point. Streak reset.")

	_, msg := sharedtest.Drive(t, s, sharedtest.Key(tea.KeyEnter))
	assert.Nil(t, msg)
	assert.Equal(t, 1, s.snap.Index)
	assert.False(t, s.snap.Answered)
	assert.False(t, s.grid.Locked)
	assert.Nil(t, s.result)

	progress, err := st.ReadProgress()
	require.NoError(t, err)
	assert.Equal(t, 1, progress.Len())
}

func TestNumberKeysIgnoredOnceAnswered(t *testing.T) {
	s, _, _ := startGame(t, sess.Config{NumQuestions: 15, WinThreshold: 10})

	answer(t, s, true)
	_, msg := sharedtest.Drive(t, s, sharedtest.Key('3'))
	assert.Nil(t, msg)
	assert.Equal(t, 0, s.snap.Index, "number keys do nothing once answered")
}

func TestThreeCorrectFinishesGame(t *testing.T) {
	s, _, st := startGame(t, sess.Config{NumQuestions: 15, WinThreshold: 10})

	for i := 0; i < 3; i++ {
		answer(t, s, true)
		if i < 2 {
			sharedtest.Drive(t, s, sharedtest.Key(tea.KeyEnter))
		}
	}
	assert.Equal(t, 10, s.snap.Score)
	assert.Equal(t, sess.PhaseFinished, s.snap.Phase)
	assert.True(t, s.result.AutoFinished)
	assert.Contains(t, s.View(100, 30), "Reached 10 points! Game complete.")

	_, msg := sharedtest.Drive(t, s, sharedtest.Key(tea.KeyEnter))
	replace, ok := msg.(router.ReplaceScreenMsg)
	require.True(t, ok, "expected ReplaceScreenMsg, got %T", msg)
	_, ok = replace.Screen.(*summaryscreen.SummaryScreen)
	assert.True(t, ok)

	summary, err := st.ReadSummary()
	require.NoError(t, err)
	require.Equal(t, 1, summary.Len())
	assert.True(t, summary.DecodeSummary()[0].Won)
}

func TestLastQuestionFinishes(t *testing.T) {
	s, _, st := startGame(t, sess.Config{NumQuestions: 2, WinThreshold: 10})

	answer(t, s, false)
	sharedtest.Drive(t, s, sharedtest.Key(tea.KeyEnter))
	answer(t, s, false)

	_, msg := sharedtest.Drive(t, s, sharedtest.Key(tea.KeyEnter))
	_, ok := msg.(router.ReplaceScreenMsg)
	require.True(t, ok, "expected ReplaceScreenMsg, got %T", msg)

	summary, err := st.ReadSummary()
	require.NoError(t, err)
	require.Equal(t, 1, summary.Len())
	assert.Equal(t, -2, summary.DecodeSummary()[0].Score)
}

func TestQuitConfirm(t *testing.T) {
	s, env, _ := startGame(t, sess.Config{NumQuestions: 15, WinThreshold: 10})
	assert.True(t, s.InterceptsBack())

	sharedtest.Drive(t, s, sharedtest.Key(tea.KeyEscape))
	assert.True(t, s.showingQuitConfirm)
	sharedtest.Drive(t, s, sharedtest.Key('n'))
	assert.False(t, s.showingQuitConfirm)

	sharedtest.Drive(t, s, sharedtest.Key(tea.KeyEscape))
	_, msg := sharedtest.Drive(t, s, sharedtest.Key('y'))
	assert.Equal(t, router.PopToRootMsg{}, msg)

	_, err := env.Service.Session(s.ID())
	assert.True(t, errors.Is(err, sess.ErrUnknownSession))
}

func TestFeedbackText(t *testing.T) {
	assert.Equal(t, "Correct! +5 (streak x3)", FeedbackText(sess.Result{Correct: true, Delta: 5, Streak: 3}))
	assert.Equal(t, "Incorrect. -1 point. Streak reset.", FeedbackText(sess.Result{Delta: -1}))
}

func TestKeyHintsFollowState(t *testing.T) {
	s, _, _ := startGame(t, sess.Config{NumQuestions: 15, WinThreshold: 10})
	assert.Equal(t, "Submit", s.KeyHints()[2].Description)

	answer(t, s, true)
	assert.Equal(t, "Next question", s.KeyHints()[0].Description)
}
