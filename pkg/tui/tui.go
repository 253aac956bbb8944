// Package tui provides a terminal tap recorder for rhythm2midi
package tui

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/james-see/rhythm2midi/pkg/rhythm"
)

var (
	acidGreen  = lipgloss.Color("#39FF14")
	acidYellow = lipgloss.Color("#FFFF00")
	silverGray = lipgloss.Color("#C0C0C0")
	darkGray   = lipgloss.Color("#333333")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(acidGreen).
			Background(darkGray).
			Padding(0, 2).
			MarginBottom(1)

	tapStyle = lipgloss.NewStyle().
			Foreground(silverGray).
			PaddingLeft(2)

	statusStyle = lipgloss.NewStyle().
			Foreground(acidYellow).
			PaddingTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(acidGreen).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(acidGreen).
			Padding(1, 2)
)

// State represents the current TUI state
type State int

const (
	StateTempo State = iota
	StateTapping
	StateSaving
	StateResult
)

// Model represents the TUI model
type Model struct {
	state      State
	tempoInput textinput.Model
	spinner    spinner.Model
	tempo      uint32
	firstTap   time.Time
	keys       []uint32
	outputFile string
	err        error
	width      int
	height     int
}

// saveDoneMsg signals that the MIDI file has been written
type saveDoneMsg struct {
	outputFile string
	err        error
}

// New creates a new TUI model
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "120"
	ti.CharLimit = 5
	ti.Width = 8
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(acidGreen)

	return Model{
		state:      StateTempo,
		tempoInput: ti,
		spinner:    s,
	}
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.state {
		case StateTempo:
			return m.updateTempo(msg)
		case StateTapping:
			return m.updateTapping(msg)
		case StateResult:
			return m.updateResult(msg)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case saveDoneMsg:
		m.state = StateResult
		m.outputFile = msg.outputFile
		m.err = msg.err
		return m, nil
	}

	if m.state == StateTempo {
		var cmd tea.Cmd
		m.tempoInput, cmd = m.tempoInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateTempo(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		tempo, err := strconv.ParseUint(strings.TrimSpace(m.tempoInput.Value()), 10, 32)
		if err != nil || tempo < rhythm.MinTempo || tempo > rhythm.MaxTempo {
			m.err = fmt.Errorf("tempo must be %d-%d bpm", rhythm.MinTempo, rhythm.MaxTempo)
			return m, nil
		}
		m.err = nil
		m.tempo = uint32(tempo)
		m.keys = nil
		m.state = StateTapping
		return m, nil
	case "esc":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.tempoInput, cmd = m.tempoInput.Update(msg)
	return m, cmd
}

func (m Model) updateTapping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if len(m.keys) == 0 {
			m.err = fmt.Errorf("no taps recorded yet")
			return m, nil
		}
		m.err = nil
		m.state = StateSaving
		return m, tea.Batch(m.spinner.Tick, m.saveRecording())
	case "esc":
		m.state = StateTempo
		m.err = nil
		m.tempoInput.Focus()
		return m, textinput.Blink
	default:
		// Any other key is a tap. The first tap anchors t=0.
		now := time.Now()
		if len(m.keys) == 0 {
			m.firstTap = now
		}
		m.keys = append(m.keys, uint32(now.Sub(m.firstTap).Milliseconds()))
		return m, nil
	}
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.state = StateTempo
		m.err = nil
		m.keys = nil
		m.outputFile = ""
		m.tempoInput.Focus()
		return m, textinput.Blink
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) saveRecording() tea.Cmd {
	tempo := m.tempo
	keys := m.keys
	return func() tea.Msg {
		out := rhythm.Solve(rhythm.Input{Tempo: tempo, Keys: keys})

		data, err := rhythm.NewBuilder().Build(out)
		if err != nil {
			return saveDoneMsg{err: err}
		}

		outputFile := fmt.Sprintf("rhythm-%dbpm-%s.mid", tempo, time.Now().Format("150405"))
		if err := os.WriteFile(outputFile, data, 0644); err != nil {
			return saveDoneMsg{err: err}
		}

		return saveDoneMsg{outputFile: outputFile}
	}
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(asciiLogo())
	s.WriteString("\n")

	switch m.state {
	case StateTempo:
		s.WriteString(m.viewTempo())
	case StateTapping:
		s.WriteString(m.viewTapping())
	case StateSaving:
		s.WriteString(m.viewSaving())
	case StateResult:
		s.WriteString(m.viewResult())
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("ctrl+c: quit"))

	return s.String()
}

func (m Model) viewTempo() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SET TEMPO "))
	s.WriteString("\n\n")
	s.WriteString(tapStyle.Render("Beats per minute:"))
	s.WriteString("\n")
	s.WriteString(tapStyle.Render(m.tempoInput.View()))
	if m.err != nil {
		s.WriteString("\n\n")
		s.WriteString(errorStyle.Render(m.err.Error()))
	}
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("enter: start tapping • esc: quit"))

	return boxStyle.Render(s.String())
}

func (m Model) viewTapping() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(fmt.Sprintf(" TAPPING AT %d BPM ", m.tempo)))
	s.WriteString("\n\n")
	s.WriteString(tapStyle.Render("Tap any key in rhythm."))
	s.WriteString("\n")
	s.WriteString(statusStyle.Render(fmt.Sprintf("  %d taps recorded", len(m.keys))))
	if n := len(m.keys); n > 0 {
		s.WriteString(statusStyle.Render(fmt.Sprintf(" • last at %dms", m.keys[n-1])))
	}
	if m.err != nil {
		s.WriteString("\n\n")
		s.WriteString(errorStyle.Render(m.err.Error()))
	}
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("enter: save as MIDI • esc: back"))

	return boxStyle.Render(s.String())
}

func (m Model) viewSaving() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SAVING "))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("%s Quantizing %d taps at %d bpm...", m.spinner.View(), len(m.keys), m.tempo))

	return boxStyle.Render(s.String())
}

func (m Model) viewResult() string {
	var s strings.Builder

	if m.err != nil {
		s.WriteString(titleStyle.Render(" ERROR "))
		s.WriteString("\n\n")
		s.WriteString(errorStyle.Render(fmt.Sprintf("✗ Save failed: %s", m.err.Error())))
	} else {
		s.WriteString(titleStyle.Render(" SUCCESS "))
		s.WriteString("\n\n")
		s.WriteString(successStyle.Render("✓ Rhythm saved!"))
		s.WriteString("\n\n")
		s.WriteString(fmt.Sprintf("Output: %s", m.outputFile))
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("enter: record another • q: quit"))

	return boxStyle.Render(s.String())
}

func asciiLogo() string {
	logo := `
   ____  _   ___   _______ _   _ __  __ ___  __  __ ___ ____ ___
  |  _ \| | | \ \ / /_   _| | | |  \/  |__ \|  \/  |_ _|  _ \_ _|
  | |_) | |_| |\ V /  | | | |_| | |\/| | ) | |\/| || || | | | |
  |  _ <|  _  | | |   | | |  _  | |  | |/ /| |  | || || |_| | |
  |_| \_\_| |_| |_|   |_| |_| |_|_|  |_|____|_|  |_|___|____/___|
`
	return lipgloss.NewStyle().Foreground(acidGreen).Render(logo)
}

// Run starts the TUI application
func Run() error {
	p := tea.NewProgram(New(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
