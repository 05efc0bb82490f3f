package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-midikeys/binding"
	"go-midikeys/keys"
	"go-midikeys/midi"
	"go-midikeys/theme"
	"go-midikeys/widgets"
)

// how many dispatches the activity list keeps
const historySize = 8

// ChordSource tells the view which keystrokes an action sends
type ChordSource interface {
	Chord(a keys.Action) (keys.Chord, bool)
}

type Model struct {
	Theme    *theme.Theme
	Port     string
	chords   ChordSource
	events   <-chan binding.Event
	devices  <-chan midi.DeviceEvent
	phase    binding.Phase
	table    binding.Table
	history  []string
	warning  string
	quitting bool
}

type EventMsg binding.Event

type DeviceEventMsg midi.DeviceEvent

func NewModel(port string, events <-chan binding.Event, devices <-chan midi.DeviceEvent, chords ChordSource, th *theme.Theme) Model {
	var table binding.Table
	for i := range table {
		table[i].Role = binding.Role(i)
	}
	return Model{
		Theme:   th,
		Port:    port,
		chords:  chords,
		events:  events,
		devices: devices,
		table:   table,
	}
}

// ChannelReporter forwards engine events to ch without ever blocking the
// delivery goroutine; events are dropped when the view falls behind.
func ChannelReporter(ch chan<- binding.Event) binding.Reporter {
	return binding.ReporterFunc(func(ev binding.Event) {
		select {
		case ch <- ev:
		default:
		}
	})
}

func ListenForEvents(events <-chan binding.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return EventMsg(ev)
	}
}

func ListenForDevices(devices <-chan midi.DeviceEvent) tea.Cmd {
	if devices == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-devices
		if !ok {
			return nil
		}
		return DeviceEventMsg(ev)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		ListenForEvents(m.events),
		ListenForDevices(m.devices),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "Q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case EventMsg:
		ev := binding.Event(msg)
		m.phase = ev.Phase
		m.table = ev.Table
		if ev.Kind != binding.EventLearned {
			m.history = append(m.history, ev.String())
			if len(m.history) > historySize {
				m.history = m.history[len(m.history)-historySize:]
			}
		}
		return m, ListenForEvents(m.events)

	case DeviceEventMsg:
		ev := midi.DeviceEvent(msg)
		if ev.Type == midi.DeviceDisconnected {
			m.warning = fmt.Sprintf("%s disconnected - reconnect it or press Q", ev.Name)
		} else {
			m.warning = ""
		}
		return m, ListenForDevices(m.devices)
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	promptStyle := lipgloss.NewStyle().Foreground(m.Theme.Active()).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	warnStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())
	historyStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())

	header := headerStyle.Render(fmt.Sprintf("go-midikeys  %s  %s", m.Port, m.phase))

	prompt := "Ready - play a learned key"
	if m.phase.Learning() {
		prompt = "Press Key For " + m.phase.Next().Label()
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(promptStyle.Render(prompt))
	out.WriteString("\n\n")
	out.WriteString(widgets.RenderKeyHelp([]widgets.KeySection{m.bindingSection()}))

	if shadowed := m.table.Shadowed(); len(shadowed) > 0 {
		names := make([]string, len(shadowed))
		for i, r := range shadowed {
			names[i] = r.String()
		}
		out.WriteString("\n\n")
		out.WriteString(warnStyle.Render("shares a key with an earlier role, never fires: " + strings.Join(names, ", ")))
	}

	if len(m.history) > 0 {
		out.WriteString("\n\n")
		out.WriteString(dimStyle.Render("Recent"))
		for _, h := range m.history {
			out.WriteString("\n  ")
			out.WriteString(historyStyle.Render(h))
		}
	}

	if m.warning != "" {
		out.WriteString("\n\n")
		out.WriteString(warnStyle.Render(m.warning))
	}

	out.WriteString("\n\n")
	out.WriteString(dimStyle.Render("Q:quit"))
	return out.String()
}

func (m Model) bindingSection() widgets.KeySection {
	shadowed := make(map[binding.Role]bool)
	for _, r := range m.table.Shadowed() {
		shadowed[r] = true
	}

	sec := widgets.KeySection{Title: "Bindings"}
	for _, b := range m.table {
		sym, color := m.Theme.Symbols.Pending, m.Theme.Muted()
		switch {
		case shadowed[b.Role]:
			sym, color = m.Theme.Symbols.Shadowed, m.Theme.Warning()
		case b.Learned:
			sym, color = m.Theme.Symbols.Learned, m.Theme.Success()
		case m.phase.Learning() && m.phase.Next() == b.Role:
			sym, color = m.Theme.Symbols.Current, m.Theme.Active()
		}

		code := "-"
		if b.Learned {
			code = strconv.Itoa(int(b.Code))
		}
		desc := string(b.Role.Action())
		if m.chords != nil {
			if c, ok := m.chords.Chord(b.Role.Action()); ok {
				desc = fmt.Sprintf("%s (%s)", desc, c)
			}
		}

		sec.Keys = append(sec.Keys, widgets.KeyBinding{
			Mark: widgets.RenderMark(sym, color),
			Key:  b.Role.String(),
			Code: code,
			Desc: desc,
		})
	}
	return sec
}
