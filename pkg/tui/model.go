// Package tui implements the terminal user interface
package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/songadaymann/notdeafbeef-blockchainOptimize/pkg/audio"
	"github.com/songadaymann/notdeafbeef-blockchainOptimize/pkg/music"
	"github.com/songadaymann/notdeafbeef-blockchainOptimize/pkg/synth"
)

// Model is the main TUI model
type Model struct {
	Player *audio.Player

	Width  int
	Height int

	Seed uint32
	BPM  float64

	// Playback display
	Info audio.Info

	StatusMsg string
}

// NewModel creates a new TUI model around a running player.
func NewModel(player *audio.Player) Model {
	return Model{
		Player: player,
		Seed:   player.Seed(),
		BPM:    player.Clock().BPM,
		Width:  100,
		Height: 28,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(),
	)
}

// tickMsg is sent periodically for playback updates
type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(16_666_666, func(_ time.Time) tea.Msg {
		return tickMsg{}
	})
}

// exportDoneMsg reports the result of a WAV export
type exportDoneMsg struct {
	path string
	err  error
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tickMsg:
		m.Info = m.Player.Info()
		return m, tickCmd()

	case exportDoneMsg:
		if msg.err != nil {
			m.StatusMsg = fmt.Sprintf("export failed: %v", msg.err)
		} else {
			m.StatusMsg = "wrote " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.Player.Stop()
		return m, tea.Quit

	case " ":
		if m.Player.Toggle() {
			m.StatusMsg = ""
		}

	case "n":
		seed := uint32(time.Now().UnixNano())
		g, err := synth.NewGenerator(seed, m.BPM)
		if err != nil {
			m.StatusMsg = err.Error()
			return m, nil
		}
		g.SetDensity(m.Info.Density)
		m.Player.Swap(g)
		m.Seed = seed
		m.StatusMsg = fmt.Sprintf("reseeded: 0x%08X", seed)

	case "+", "=":
		m.Player.SetDensity(m.Info.Density + 0.05)

	case "-":
		m.Player.SetDensity(m.Info.Density - 0.05)

	case "e":
		seed, bpm, q := m.Seed, m.BPM, m.Info.Density
		return m, func() tea.Msg {
			path := fmt.Sprintf("notdeafbeef_%08x.wav", seed)
			g, err := synth.NewGenerator(seed, bpm)
			if err != nil {
				return exportDoneMsg{path: path, err: err}
			}
			g.SetDensity(q)
			f, err := os.Create(path)
			if err != nil {
				return exportDoneMsg{path: path, err: err}
			}
			defer f.Close()
			_, err = audio.ExportLoopWAV(g, f, 60)
			return exportDoneMsg{path: path, err: err}
		}
	}

	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n\n")
	b.WriteString(m.stepView())
	b.WriteString("\n\n")
	b.WriteString(m.voiceView())
	b.WriteString("\n\n")
	b.WriteString(m.densityView())
	b.WriteString("\n\n")
	b.WriteString(m.footerView())

	return b.String()
}

func (m Model) headerView() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("13")).
		Render("NOTDEAFBEEF")

	playing := "STOPPED"
	if m.Info.Playing {
		playing = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Render("PLAYING")
	}

	elapsed := float64(m.Info.Frames) / music.SampleRate
	info := fmt.Sprintf(" │ Seed:0x%08X │ BPM:%.0f │ Seg:%d Step:%02d │ %6.1fs │ %s",
		m.Seed, m.BPM, m.Info.Segment, m.Info.StepInSeg, elapsed, playing)

	return title + info
}

func (m Model) stepView() string {
	on := lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("13"))
	beat := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	var cells []string
	for i := 0; i < music.StepsPerSeg; i++ {
		cell := fmt.Sprintf(" %02d ", i)
		switch {
		case i == m.Info.StepInSeg && m.Info.Playing:
			cells = append(cells, on.Render(cell))
		case i%music.StepsPerBeat == 0:
			cells = append(cells, beat.Render(cell))
		default:
			cells = append(cells, dim.Render(cell))
		}
	}
	return "  " + strings.Join(cells, "")
}

func (m Model) voiceView() string {
	lit := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	var parts []string
	for i, name := range synth.VoiceNames {
		label := fmt.Sprintf("● %-7s", name)
		if m.Info.Voices[i] {
			parts = append(parts, lit.Render(label))
		} else {
			parts = append(parts, dim.Render(label))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) densityView() string {
	const width = 20
	filled := int(m.Info.Density*width + 0.5)
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("  Density [%s] %.2f", bar, m.Info.Density)
}

func (m Model) footerView() string {
	keys := "  [Space]Play/Stop [N]New Seed [+/-]Density [E]Export Loop [Q]Quit"
	if m.StatusMsg != "" {
		keys += "\n  " + lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Render(m.StatusMsg)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(keys)
}
