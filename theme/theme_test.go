package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestLookupEnds(t *testing.T) {
	assert.Equal(t, Plasma.Colors[0], Plasma.Lookup(-1))
	assert.Equal(t, Plasma.Colors[len(Plasma.Colors)-1], Plasma.Lookup(2))
}

func TestLookupInterpolates(t *testing.T) {
	p := &Palette{Colors: []RGB{{0, 0, 0}, {200, 100, 50}}}
	assert.Equal(t, RGB{100, 50, 25}, p.Lookup(0.5))
}

func TestFGFollowsPalette(t *testing.T) {
	p := &Palette{Colors: []RGB{{0, 0, 0}, {250, 250, 250}}}
	assert.Equal(t, lipgloss.Color("#646464"), New(p).FG())
}

func TestSuccessIsLastColor(t *testing.T) {
	assert.Equal(t, lipgloss.Color("#f0f921"), Default().Success())
}
