package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/planetfield/internal/field"
	"github.com/san-kum/planetfield/internal/sim"
)

const (
	width           = 80
	height          = 24
	statsWidth      = 44
	historyCapacity = 120
	tickRate        = time.Second / 60
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model drives a field.State from a Bubble Tea tick and draws it on a
// Braille canvas.
type Model struct {
	gen      *field.Generator
	state    *field.State
	clock    sim.Clock
	canvas   *Canvas
	proj     *Projector
	theme    Theme
	styles   styles
	title    string
	running  bool
	showHelp bool
	frames   int
	fps      float64
	lastTick time.Time
	wraps    []float64
}

// NewModel generates the initial field at the clock's current time.
func NewModel(gen *field.Generator, clock sim.Clock, theme Theme, title string) Model {
	st := gen.Generate(clock.Now())
	canvas := NewCanvas(width, height)
	return Model{
		gen:     gen,
		state:   st,
		clock:   clock,
		canvas:  canvas,
		proj:    NewProjector(canvas, st.World()),
		theme:   theme,
		styles:  newStyles(theme),
		title:   title,
		running: true,
		wraps:   make([]float64, 0, historyCapacity),
	}
}

func (m Model) State() *field.State { return m.state }
func (m Model) Running() bool       { return m.running }
func (m Model) Frames() int         { return m.frames }
func (m Model) Theme() Theme        { return m.theme }

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.styles = newStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		m.step()
		return m, tick()
	}
	return m, nil
}

// step advances to the clock's time and redraws. While paused the clock is
// still followed, so resuming does not replay the paused interval.
func (m *Model) step() {
	now := m.clock.Now()
	if !m.lastTick.IsZero() {
		if dt := now.Sub(m.lastTick).Seconds(); dt > 0 {
			m.fps = 0.9*m.fps + 0.1/dt
		}
	}
	m.lastTick = now

	wraps := sim.Tick(m.state, now, !m.running)
	m.canvas.Clear()
	m.state.Draw(m.proj)
	if !m.running {
		return
	}
	m.frames++

	m.wraps = append(m.wraps, float64(wraps))
	if len(m.wraps) > historyCapacity {
		m.wraps = m.wraps[1:]
	}
}

func (m *Model) reset() {
	m.state = m.gen.Generate(m.clock.Now())
	m.proj = NewProjector(m.canvas, m.state.World())
	m.frames = 0
	m.wraps = m.wraps[:0]
}

func (m *Model) resize(w, h int) {
	cw := w - statsWidth - 4
	ch := h - 2
	if cw < 10 {
		cw = 10
	}
	if ch < 5 {
		ch = 5
	}
	m.canvas = NewCanvas(cw, ch)
	m.proj = NewProjector(m.canvas, m.state.World())
}

// View renders the canvas next to a stats panel.
func (m Model) View() string {
	canvasView := m.styles.canvas.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(m.styles.header.Render(strings.ToUpper(m.title)) + "\n")
	if m.running {
		s.WriteString(m.styles.running.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(m.styles.paused.Render("PAUSED") + "\n\n")
	}

	w := m.state.World()
	row := func(label, value string) {
		s.WriteString(m.styles.label.Render(label) + m.styles.value.Render(value) + "\n")
	}
	row("Bodies", fmt.Sprintf("%d", m.state.Len()))
	row("World", fmt.Sprintf("%.0f x %.0f", w.Width, w.Height))
	row("Frames", fmt.Sprintf("%d", m.frames))
	row("FPS", fmt.Sprintf("%.1f", m.fps))
	row("Wraps", fmt.Sprintf("%d", m.state.Wraps()))
	row("Theme", m.theme.Name)

	if len(m.wraps) > 1 {
		chart := asciigraph.Plot(m.wraps, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("wraps/frame"))
		s.WriteString(m.styles.graph.Render(chart) + "\n")
	}

	s.WriteString(m.styles.help.Render("SP:Pause R:Regen T:Theme ?:Help Q:Quit"))
	main := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.styles.stats.Render(s.String()))

	if m.showHelp {
		help := strings.Join([]string{
			"KEYBOARD SHORTCUTS",
			"",
			"Space  Pause/Resume",
			"R      Regenerate field",
			"T      Cycle themes",
			"?      Toggle this help",
			"Q      Quit",
		}, "\n")
		return m.styles.overlay.Render(help) + "\n\n" + main
	}
	return main
}

// Run starts the live view on the real clock and blocks until the user quits.
func Run(gen *field.Generator, theme, title string) error {
	p := tea.NewProgram(NewModel(gen, sim.SystemClock{}, GetTheme(theme), title), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
