// Package tui contains the bubbletea model behind "rs485 monitor".
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nemecec/rs485"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(22)

	highStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	lowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

type keyMap struct {
	Pause key.Binding
	Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Pause, k.Quit}}
}

var keys = keyMap{
	Pause: key.NewBinding(
		key.WithKeys(" ", "p"),
		key.WithHelp("space", "pause"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type tickMsg time.Time

// MonitorModel polls the modem lines of an open controller and renders
// their levels alongside the direction control state.
type MonitorModel struct {
	ctrl     *rs485.Controller
	portPath string
	interval time.Duration

	signals rs485.ModemSignals
	readErr error
	paused  bool

	help help.Model
}

// NewMonitor builds a model around an already open controller. The caller
// keeps ownership and closes the controller after the program exits.
func NewMonitor(ctrl *rs485.Controller, portPath string, interval time.Duration) MonitorModel {
	return MonitorModel{
		ctrl:     ctrl,
		portPath: portPath,
		interval: interval,
		help:     help.New(),
	}
}

func (m MonitorModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m MonitorModel) Init() tea.Cmd {
	return m.tick()
}

func (m MonitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Pause):
			m.paused = !m.paused
		}

	case tickMsg:
		if !m.paused {
			m.signals, m.readErr = m.ctrl.ModemSignals()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m MonitorModel) View() string {
	s := titleStyle.Render(fmt.Sprintf("Monitoring %s", m.portPath)) + "\n\n"

	direction := "manual " + m.ctrl.ControlPin().String()
	if m.ctrl.Mode() == rs485.ModeDisabled {
		direction = "none"
	} else if m.ctrl.KernelActive() {
		direction = "kernel"
	}
	s += labelStyle.Render("Mode:") + m.ctrl.Mode().String() + "\n"
	s += labelStyle.Render("Direction switching:") + direction + "\n\n"

	if m.readErr != nil {
		s += errStyle.Render(fmt.Sprintf("signal read failed: %v", m.readErr)) + "\n"
	} else {
		lines := []struct {
			name  string
			level bool
		}{
			{"RTS", m.signals.RTS},
			{"DTR", m.signals.DTR},
			{"CTS", m.signals.CTS},
			{"DSR", m.signals.DSR},
			{"DCD", m.signals.DCD},
			{"RI", m.signals.RI},
		}
		for _, l := range lines {
			s += labelStyle.Render(l.name+":") + renderLevel(l.level) + "\n"
		}
	}

	if m.paused {
		s += "\n" + lowStyle.Render("paused")
	}
	s += "\n" + m.help.View(keys)
	return s
}

func renderLevel(level bool) string {
	if level {
		return highStyle.Render("HIGH")
	}
	return lowStyle.Render("low")
}
