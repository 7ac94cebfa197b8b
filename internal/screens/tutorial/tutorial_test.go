package tutorial

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/slopeshowdown/internal/problemgen"
	"github.com/abhisek/slopeshowdown/internal/router"
	"github.com/abhisek/slopeshowdown/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "next" }
func (s *stubScreen) Title() string                           { return "Next" }

func TestClassifyAngle(t *testing.T) {
	tests := []struct {
		deg  float64
		want problemgen.Category
	}{
		{0, problemgen.CategoryZero},
		{4, problemgen.CategoryZero},
		{5, problemgen.CategoryZero},
		{6, problemgen.CategoryPositive},
		{45, problemgen.CategoryPositive},
		{84, problemgen.CategoryPositive},
		{85, problemgen.CategoryUndefined},
		{90, problemgen.CategoryUndefined},
		{95, problemgen.CategoryUndefined},
		{96, problemgen.CategoryNegative},
		{135, problemgen.CategoryNegative},
		{175, problemgen.CategoryZero},
		{180, problemgen.CategoryZero},
		{-45, problemgen.CategoryNegative},
		{225, problemgen.CategoryPositive},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyAngle(tt.deg), "%v°", tt.deg)
	}
}

func TestLineAt(t *testing.T) {
	assert.Equal(t, problemgen.Line{Kind: problemgen.CategoryUndefined}, LineAt(88))
	assert.Equal(t, problemgen.Line{Kind: problemgen.CategoryZero}, LineAt(3))

	l := LineAt(45)
	assert.Equal(t, problemgen.CategoryPositive, l.Kind)
	assert.InDelta(t, 1.0, l.Slope, 1e-9)

	l = LineAt(135)
	assert.InDelta(t, -1.0, l.Slope, 1e-9)
}

func TestRotation(t *testing.T) {
	tut := New(nil)
	assert.Equal(t, problemgen.CategoryPositive, tut.Category())

	for i := 0; i < 12; i++ {
		tut.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	}
	assert.Equal(t, 90.0, tut.Angle())
	assert.Equal(t, problemgen.CategoryUndefined, tut.Category())

	tut.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 89.0, tut.Angle())

	for i := 0; i < 18; i++ {
		tut.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	}
	assert.Equal(t, 179.0, tut.Angle(), "rotation wraps at 0°")
	assert.Equal(t, problemgen.CategoryZero, tut.Category())
}

func TestPresets(t *testing.T) {
	tut := New(nil)
	keys := map[rune]problemgen.Category{
		'n': problemgen.CategoryNegative,
		'z': problemgen.CategoryZero,
		'u': problemgen.CategoryUndefined,
		'p': problemgen.CategoryPositive,
	}
	for key, want := range keys {
		tut.Update(tea.KeyPressMsg{Code: key})
		assert.Equal(t, want, tut.Category(), "key %c", key)
	}
}

func TestPlayReplacesOnce(t *testing.T) {
	calls := 0
	tut := New(func() screen.Screen {
		calls++
		return &stubScreen{}
	})

	_, cmd := tut.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.ReplaceScreenMsg)
	assert.True(t, ok)

	_, cmd = tut.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, calls)
}

func TestViewNamesCategory(t *testing.T) {
	tut := New(nil)
	tut.Update(tea.KeyPressMsg{Code: 'u'})
	assert.Contains(t, tut.View(100, 30), "UNDEFINED")
}
