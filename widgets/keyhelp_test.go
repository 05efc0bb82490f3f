package widgets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderKeyHelp(t *testing.T) {
	out := RenderKeyHelp([]KeySection{
		{Title: "Bindings", Keys: []KeyBinding{
			{Mark: "*", Key: "Format", Code: "10", Desc: "ctrl+shift+i"},
			{Key: "Build", Desc: "ctrl+shift+b"},
		}},
	})

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "Bindings", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  * Format"))
	assert.Contains(t, lines[1], "10")
	assert.True(t, strings.HasPrefix(lines[2], "    Build"))
	assert.True(t, strings.HasSuffix(lines[2], "ctrl+shift+b"))
}
