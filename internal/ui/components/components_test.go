package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "A", Disabled: true},
		{Label: "B"},
		{Label: "C", Disabled: true},
		{Label: "D"},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(press(tea.KeyDown))
	assert.Equal(t, 3, m.Selected)
	m, _ = m.Update(press(tea.KeyUp))
	assert.Equal(t, 1, m.Selected)
	m, _ = m.Update(press(tea.KeyUp))
	assert.Equal(t, 1, m.Selected)
}

func TestMenu_NumberKeyActivates(t *testing.T) {
	var fired string
	action := func(name string) func() tea.Cmd {
		return func() tea.Cmd {
			fired = name
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "Tutorial", Action: action("tutorial")},
		{Label: "Play", Action: action("play")},
		{Label: "Results", Action: action("results"), Disabled: true},
	})

	m, _ = m.Update(press('2'))
	assert.Equal(t, 1, m.Selected)
	assert.Equal(t, "play", fired)

	fired = ""
	m, _ = m.Update(press('3'))
	assert.Equal(t, 1, m.Selected, "disabled item cannot be jumped to")
	assert.Empty(t, fired)

	assert.Equal(t, []string{"Tutorial", "Play", "Results"}, m.Labels())
}

func TestChoiceGrid_Navigation(t *testing.T) {
	g := NewChoiceGrid([]string{"Positive", "Negative", "Zero", "Undefined"})

	g, _ = g.Update(press(tea.KeyRight))
	assert.Equal(t, "Negative", g.Current())
	g, _ = g.Update(press(tea.KeyDown))
	assert.Equal(t, "Undefined", g.Current())
	g, _ = g.Update(press(tea.KeyDown))
	assert.Equal(t, "Undefined", g.Current(), "bottom row stays put")
	g, _ = g.Update(press(tea.KeyLeft))
	assert.Equal(t, "Zero", g.Current())
	g, _ = g.Update(press(tea.KeyUp))
	assert.Equal(t, "Positive", g.Current())
	g, _ = g.Update(press('4'))
	assert.Equal(t, "Undefined", g.Current())
}

func TestChoiceGrid_SubmitAndLock(t *testing.T) {
	g := NewChoiceGrid([]string{"Positive", "Negative", "Zero", "Undefined"})
	g, _ = g.Update(press('3'))

	_, cmd := g.Update(press(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, ChoiceSubmittedMsg{Choice: "Zero"}, cmd())

	g.Reveal("Zero", "Positive")
	g, cmd = g.Update(press('1'))
	assert.Nil(t, cmd)
	assert.Equal(t, "Zero", g.Current(), "locked grid ignores input")
	assert.Contains(t, g.View(), "✓")
	assert.Contains(t, g.View(), "✗")
}

func TestStepBar(t *testing.T) {
	p := NewStepBar("Question", 3, 15, 40)
	assert.Equal(t, "Question 3/15", p.Label)
	assert.InDelta(t, 0.2, p.Percent, 1e-9)

	empty := NewStepBar("Question", 0, 0, 40)
	assert.Equal(t, 0.0, empty.Percent)
}
