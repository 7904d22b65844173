package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-looper/looper"
	"go-looper/midi"
	"go-looper/theme"
)

// barWidth is the loop progress bar length in cells
const barWidth = 40

// Engine is the part of looper.Engine the UI drives
type Engine interface {
	ToggleRecord() bool
	ToggleDrums() bool
	NextInstrument() bool
	PrevInstrument() bool
	Status() looper.Status
}

// Ports names the connected devices for the header
type Ports struct {
	In, Out string
}

type Model struct {
	Engine   Engine
	Updates  <-chan struct{}
	Theme    *theme.Theme
	Ports    Ports
	quitting bool
}

type UpdateMsg struct{}

func NewModel(engine Engine, updates <-chan struct{}, th *theme.Theme, ports Ports) Model {
	return Model{
		Engine:  engine,
		Updates: updates,
		Theme:   th,
		Ports:   ports,
	}
}

func ListenForUpdates(updates <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-updates
		return UpdateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ", "space", "r":
			m.Engine.ToggleRecord()

		case "d":
			m.Engine.ToggleDrums()

		case "+", "=":
			m.Engine.NextInstrument()

		case "-", "_":
			m.Engine.PrevInstrument()
		}

	case UpdateMsg:
		return m, ListenForUpdates(m.Updates)
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.Engine.Status()

	// Styles
	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	fgStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())
	errStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	header := headerStyle.Render(fmt.Sprintf("go-looper  %s  in:%s  out:%s", m.stateLabel(s.State), m.Ports.In, m.Ports.Out))

	drums := "off"
	if s.Drums {
		drums = "on (" + s.Kit + ")"
	}

	var body strings.Builder
	body.WriteString(fgStyle.Render(fmt.Sprintf("instrument  %3d  %s", s.Instrument, midi.InstrumentFamily(s.Instrument))))
	body.WriteString("\n")
	body.WriteString(fgStyle.Render(fmt.Sprintf("drum pads   %s", drums)))
	body.WriteString("\n")
	body.WriteString(fgStyle.Render(fmt.Sprintf("live notes  %d", s.Live)))
	body.WriteString("\n\n")
	body.WriteString(m.takeView(s))

	if s.LastErr != "" {
		body.WriteString("\n\n")
		body.WriteString(errStyle.Render("! " + s.LastErr))
	}

	// Help line
	help := dimStyle.Render("space:record/loop  d:drums  +/-:instrument  q:quit")

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(body.String())
	out.WriteString("\n\n")
	out.WriteString(help)

	return out.String()
}

func (m Model) stateLabel(state looper.State) string {
	sym := m.Theme.Symbols
	switch state {
	case looper.StateRecording:
		return lipgloss.NewStyle().Foreground(m.Theme.Active()).Render(string(sym.Recording) + " " + state.String())
	case looper.StateLooping:
		return lipgloss.NewStyle().Foreground(m.Theme.Success()).Render(string(sym.Looping) + " " + state.String())
	default:
		return string(sym.Idle) + " " + state.String()
	}
}

// takeView shows the current take and, while looping, how far into it we are
func (m Model) takeView(s looper.Status) string {
	if s.TakeID == "" {
		return "no take yet"
	}
	line := fmt.Sprintf("take %s  %d events", s.TakeID, s.Events)
	switch s.State {
	case looper.StateRecording:
		return line + "  recording..."
	case looper.StateLooping:
		return line + fmt.Sprintf("  pass %d\n", s.Pass+1) + ProgressBar(m.Theme.Symbols, s.Elapsed, s.Duration, barWidth)
	default:
		return line + fmt.Sprintf("  %.1fs", float64(s.Duration)/1000)
	}
}

// ProgressBar renders elapsed/total as width cells
func ProgressBar(sym theme.Symbols, elapsed, total uint64, width int) string {
	done := 0
	if total > 0 {
		done = int(elapsed * uint64(width) / total)
	}
	if done > width {
		done = width
	}
	return strings.Repeat(string(sym.BarDone), done) + strings.Repeat(string(sym.BarTodo), width-done)
}
