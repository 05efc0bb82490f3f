package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderMark renders a single colored status symbol
func RenderMark(symbol rune, color lipgloss.Color) string {
	style := lipgloss.NewStyle().Foreground(color)
	return style.Render(string(symbol))
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			mark := " "
			if k.Mark != "" {
				mark = k.Mark
			}
			lines = append(lines, fmt.Sprintf("  %s %-18s %-8s %s", mark, k.Key, k.Code, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description. Mark is an optional
// pre-rendered status symbol and Code the learned MIDI key-code.
type KeyBinding struct {
	Mark string
	Key  string
	Code string
	Desc string
}
