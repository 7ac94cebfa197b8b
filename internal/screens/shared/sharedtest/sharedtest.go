// Package sharedtest wires screens to a real service over a temporary
// data directory for tests.
package sharedtest

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/slopeshowdown/internal/router"
	"github.com/abhisek/slopeshowdown/internal/screen"
	"github.com/abhisek/slopeshowdown/internal/screens/shared"
	"github.com/abhisek/slopeshowdown/internal/session"
	"github.com/abhisek/slopeshowdown/internal/store"
)

// Now is the fixed clock used by Env.
var Now = time.Date(2026, 3, 2, 10, 30, 0, 0, time.Local)

// Env returns an Env backed by a store in a fresh temp dir. A zero Seed in
// cfg is replaced so question sets are reproducible.
func Env(t testing.TB, cfg session.Config) (shared.Env, *store.Store) {
	t.Helper()
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)

	if cfg.Seed == 0 {
		cfg.Seed = 7
	}
	clock := func() time.Time { return Now }
	svc := session.NewService(st, cfg, zap.NewNop(), session.WithClock(clock))
	return shared.Env{
		Service:   svc,
		Periods:   []string{"1", "2", "3"},
		ExportDir: t.TempDir(),
		Logger:    zap.NewNop(),
		Now:       clock,
	}, st
}

// Key builds a key press as the terminal would deliver it.
func Key(code rune) tea.KeyPressMsg {
	msg := tea.KeyPressMsg{Code: code}
	if code >= ' ' && code <= '~' && code != ' ' {
		msg.Text = string(code)
	}
	return msg
}

// Type sends each rune of s as a key press.
func Type(s screen.Screen, text string) screen.Screen {
	for _, r := range text {
		s, _ = s.Update(Key(r))
	}
	return s
}

// Drive feeds msg to s, then keeps feeding it whatever its commands
// return. It stops when a command yields nothing or a navigation message,
// which is returned for inspection.
func Drive(t testing.TB, s screen.Screen, msg tea.Msg) (screen.Screen, tea.Msg) {
	t.Helper()
	for i := 0; i < 16; i++ {
		var cmd tea.Cmd
		s, cmd = s.Update(msg)
		if cmd == nil {
			return s, nil
		}
		msg = cmd()
		switch msg.(type) {
		case nil:
			return s, nil
		case router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg, router.PopToRootMsg:
			return s, msg
		}
	}
	t.Fatal("screen did not settle")
	return s, nil
}

// AnswerKey returns the number key that picks the correct answer for the
// current question of game id, and one that picks a wrong answer.
func AnswerKey(t testing.TB, svc *session.Service, id string) (right, wrong rune) {
	t.Helper()
	q, ok, err := svc.CurrentQuestion(id)
	require.NoError(t, err)
	require.True(t, ok, "game %s has no current question", id)
	for i, c := range q.Choices {
		key := rune('1' + i)
		if c == q.Answer {
			right = key
		} else if wrong == 0 {
			wrong = key
		}
	}
	return right, wrong
}
