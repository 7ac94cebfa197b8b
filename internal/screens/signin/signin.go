// Package signin collects the player's name and class period.
package signin

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/slopeshowdown/internal/router"
	"github.com/abhisek/slopeshowdown/internal/screen"
	gamescreen "github.com/abhisek/slopeshowdown/internal/screens/session"
	"github.com/abhisek/slopeshowdown/internal/screens/shared"
	"github.com/abhisek/slopeshowdown/internal/session"
	"github.com/abhisek/slopeshowdown/internal/ui/components"
	"github.com/abhisek/slopeshowdown/internal/ui/layout"
	"github.com/abhisek/slopeshowdown/internal/ui/theme"
)

const (
	MaxNameLen   = 40
	MaxPeriodLen = 20

	// OtherPeriod is the last period option; choosing it reveals a free
	// text field.
	OtherPeriod = "Other…"
)

type field int

const (
	fieldName field = iota
	fieldPeriod
	fieldCustom
	fieldStart
)

// SignInScreen is the form shown before a game starts.
type SignInScreen struct {
	env       shared.Env
	name      components.TextInput
	custom    components.TextInput
	periods   []string
	periodIdx int
	focus     field
	errMsg    string
	started   bool
}

var (
	_ screen.Screen          = (*SignInScreen)(nil)
	_ screen.KeyHintProvider = (*SignInScreen)(nil)
)

// New creates the sign-in form.
func New(env shared.Env) *SignInScreen {
	periods := append(append([]string(nil), env.Periods...), OtherPeriod)
	s := &SignInScreen{
		env:     env,
		name:    components.NewTextInput("Name", "your name", MaxNameLen),
		custom:  components.NewTextInput("Period", "type your class period", MaxPeriodLen),
		periods: periods,
	}
	return s
}

func (s *SignInScreen) Init() tea.Cmd {
	return s.name.Focus()
}

func (s *SignInScreen) otherSelected() bool {
	return s.periods[s.periodIdx] == OtherPeriod
}

// Period returns the class period the form would submit.
func (s *SignInScreen) Period() string {
	if s.otherSelected() {
		return strings.TrimSpace(s.custom.Value())
	}
	return s.periods[s.periodIdx]
}

func (s *SignInScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, s.forward(msg)
	}

	switch kmsg.String() {
	case "tab", "down":
		return s, s.move(1)
	case "shift+tab", "up":
		return s, s.move(-1)
	case "enter":
		if s.focus == fieldStart {
			return s, s.submit()
		}
		return s, s.move(1)
	case "left":
		if s.focus == fieldPeriod {
			s.periodIdx = (s.periodIdx + len(s.periods) - 1) % len(s.periods)
			return s, nil
		}
	case "right":
		if s.focus == fieldPeriod {
			s.periodIdx = (s.periodIdx + 1) % len(s.periods)
			return s, nil
		}
	}

	if s.focus == fieldPeriod {
		// Typing a listed period selects it directly.
		for i, p := range s.periods {
			if p == kmsg.String() {
				s.periodIdx = i
			}
		}
		return s, nil
	}
	return s, s.forward(msg)
}

// forward sends msg to whichever text input has focus.
func (s *SignInScreen) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focus {
	case fieldName:
		s.name, cmd = s.name.Update(msg)
	case fieldCustom:
		s.custom, cmd = s.custom.Update(msg)
	}
	return cmd
}

func (s *SignInScreen) move(dir int) tea.Cmd {
	next := s.focus
	for {
		next = field((int(next) + dir + 4) % 4)
		if next != fieldCustom || s.otherSelected() {
			break
		}
	}
	return s.setFocus(next)
}

func (s *SignInScreen) setFocus(f field) tea.Cmd {
	s.focus = f
	s.name.Blur()
	s.custom.Blur()
	switch f {
	case fieldName:
		return s.name.Focus()
	case fieldCustom:
		return s.custom.Focus()
	}
	return nil
}

func (s *SignInScreen) submit() tea.Cmd {
	if s.started {
		return nil
	}
	name := strings.TrimSpace(s.name.Value())
	if name == "" {
		s.errMsg = "Please enter your name."
		return s.setFocus(fieldName)
	}
	period := s.Period()
	if period == "" {
		s.errMsg = "Please type your class period."
		return s.setFocus(fieldCustom)
	}

	id, err := s.env.Service.StartSession(name, period)
	if err != nil {
		if errors.Is(err, session.ErrMissingPlayer) {
			s.errMsg = "Please enter your name."
		} else {
			s.errMsg = "Could not start a game: " + err.Error()
		}
		s.env.Log().Warn("sign-in failed", zap.Error(err))
		return nil
	}

	s.started = true
	s.errMsg = ""
	game := gamescreen.New(s.env, id)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: game} }
}

func (s *SignInScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var lines []string
	lines = append(lines, theme.Title.Render("Sign in to play"), "", s.name.View(), "")

	periodLabel := lipgloss.NewStyle().Foreground(theme.TextDim)
	if s.focus == fieldPeriod {
		periodLabel = theme.Selected
	}
	var chips []string
	for i, p := range s.periods {
		style := lipgloss.NewStyle().Padding(0, 1).Foreground(theme.Text)
		if i == s.periodIdx {
			style = style.Background(theme.Primary).Bold(true)
		}
		chips = append(chips, style.Render(p))
	}
	lines = append(lines, periodLabel.Render("Class period: ")+strings.Join(chips, ""))
	if s.otherSelected() {
		lines = append(lines, "", s.custom.View())
	}

	lines = append(lines, "", components.ArcadeButton("START", s.focus == fieldStart, 16))
	if s.errMsg != "" {
		lines = append(lines, "", theme.Incorrect.Render(s.errMsg))
	}

	return components.CabinetFrame(components.ArcadeCard(strings.Join(lines, "\n"), cw), width, height)
}

func (s *SignInScreen) Title() string {
	return "Sign In"
}

func (s *SignInScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Field"},
		{Key: "←→", Description: "Period"},
		{Key: "Enter", Description: "Next/Start"},
		{Key: "Esc", Description: "Back"},
	}
}
