// Package ui is the terminal harness: a small bubbletea program that
// drives the engine against the in-memory host the way the real mod is
// driven by the game. Speech renders as transcript lines, key presses
// route through the controller, and a console line triggers host events
// the terminal cannot produce on its own.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/appengine-ltd/storm-access/internal/console"
	"github.com/appengine-ltd/storm-access/internal/controller"
	"github.com/appengine-ltd/storm-access/internal/input"
	"github.com/appengine-ltd/storm-access/internal/nav"
	"github.com/appengine-ltd/storm-access/internal/speech"
)

type AppConfig struct {
	Version   string
	Commit    string
	BuildDate string
}

// Deps is everything the harness drives.
type Deps struct {
	Controller *controller.Controller
	Machine    *nav.Machine
	Console    *console.Console
	Transcript *speech.Transcript
}

type App struct {
	cfg  AppConfig
	deps Deps
}

func NewApp(cfg AppConfig, deps Deps) *App {
	return &App{cfg: cfg, deps: deps}
}

func (a *App) Run() error {
	m := newModel(a.cfg, a.deps)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// --- Styles (retro green) ---
var (
	green       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	brightGreen = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimGreen    = lipgloss.NewStyle().Foreground(lipgloss.Color("22"))
	border      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

type appMode int

const (
	modeDrive appMode = iota
	modeConsole
)

type model struct {
	cfg  AppConfig
	deps Deps

	mode   appMode
	line   string
	answer string
}

func newModel(cfg AppConfig, deps Deps) model {
	return model{cfg: cfg, deps: deps}
}

type tickMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return frameTick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.deps.Controller.Tick()
		return m, frameTick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.mode == modeConsole {
		return m.handleConsoleKey(msg)
	}
	if msg.String() == ":" {
		m.mode = modeConsole
		m.line = ""
		return m, nil
	}
	if ev, ok := toEvent(msg); ok {
		m.deps.Controller.HandleKey(ev)
	}
	return m, nil
}

func (m model) handleConsoleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeDrive
		m.line = ""
	case tea.KeyEnter:
		m.answer = m.deps.Console.Execute(m.line)
		m.mode = modeDrive
		m.line = ""
	case tea.KeyBackspace:
		if len(m.line) > 0 {
			m.line = m.line[:len(m.line)-1]
		}
	case tea.KeySpace:
		m.line += " "
	case tea.KeyRunes:
		m.line += string(msg.Runes)
	}
	return m, nil
}

// toEvent maps terminal keys onto the engine's key model.
func toEvent(msg tea.KeyMsg) (input.Event, bool) {
	switch msg.String() {
	case "up", "down", "left", "right", "enter", "tab", "home", "backspace":
		return input.Event{Key: input.Key(msg.String())}, true
	case "shift+tab":
		return input.Event{Key: "tab", Mods: input.Modifiers{Shift: true}}, true
	case "esc":
		return input.Event{Key: "escape"}, true
	case " ":
		return input.Event{Key: "space"}, true
	case "ctrl+x":
		return input.Event{Key: "x", Mods: input.Modifiers{Ctrl: true}}, true
	}
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		r := msg.Runes[0]
		if r >= 'a' && r <= 'z' {
			return input.Event{Key: input.Key(string(r))}, true
		}
		if r >= 'A' && r <= 'Z' {
			return input.Event{
				Key:  input.Key(strings.ToLower(string(r))),
				Mods: input.Modifiers{Shift: true},
			}, true
		}
	}
	return input.Event{}, false
}

func (m model) View() string {
	title := brightGreen.Render("STORM ACCESS") + dimGreen.Render("  harness")
	ver := dimGreen.Render(fmt.Sprintf("v%s  (%s)  %s", m.cfg.Version, m.cfg.Commit, m.cfg.BuildDate))

	out := title + "\n" + ver + "\n"
	out += border.Render(strings.Repeat("-", 56)) + "\n"

	lines := m.deps.Transcript.Lines()
	start := 0
	if len(lines) > 12 {
		start = len(lines) - 12
	}
	for _, line := range lines[start:] {
		out += green.Render(line) + "\n"
	}

	out += border.Render(strings.Repeat("-", 56)) + "\n"
	out += dimGreen.Render(m.deps.Machine.Status()) + "\n"
	if m.answer != "" {
		out += green.Render(m.answer) + "\n"
	}
	if m.mode == modeConsole {
		out += brightGreen.Render(":"+m.line) + "\n"
	} else {
		out += dimGreen.Render("arrows navigate, enter activates, esc dismisses, : console, ctrl+c quits") + "\n"
	}
	return out
}
