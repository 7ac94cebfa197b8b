package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{80, 23, true},
		{200, 60, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsTooSmall(tt.w, tt.h), "%dx%d", tt.w, tt.h)
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Game", "Ada · P3   Score 5", 100)
	assert.Contains(t, h, AppName)
	assert.Contains(t, h, "Game")
	assert.Contains(t, h, "Score 5")
	assert.Equal(t, 3, lipgloss.Height(h))
}

func TestSpreadKeepsGaps(t *testing.T) {
	got := spread("left", "mid", "right", 4)
	assert.Equal(t, "left mid right", got)

	wide := spread("a", "b", "c", 21)
	assert.Equal(t, 21, lipgloss.Width(wide))
	assert.Equal(t, 10, strings.Index(wide, "b"))
}

func TestRenderFrameFillsHeight(t *testing.T) {
	header := RenderHeader("Home", "", 90)
	footer := RenderFooter([]KeyHint{{Key: "Enter", Description: "Select"}}, 90)
	frame := RenderFrame(header, "body", footer, 90, 30)
	assert.Equal(t, 30, lipgloss.Height(frame))
	assert.Contains(t, frame, "body")
	assert.Contains(t, frame, "Select")
}
