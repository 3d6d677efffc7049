package viz

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/planetfield/internal/field"
	"github.com/san-kum/planetfield/internal/sim"
)

func newTestModel(t *testing.T) (Model, *sim.FrameClock) {
	t.Helper()
	gen, err := field.NewGenerator(field.ParamsFor(field.World{Width: 400, Height: 400}, 20), rand.NewPCG(1, 2))
	if err != nil {
		t.Fatalf("generator: %v", err)
	}
	clock := sim.NewFrameClock(time.Unix(0, 0), time.Second/60)
	return NewModel(gen, clock, GetTheme("retro"), "test"), clock
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelTickAdvances(t *testing.T) {
	m, _ := newTestModel(t)
	before := m.State().Bodies()

	m, cmd := update(m, TickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("expected next tick scheduled")
	}
	if m.Frames() != 1 {
		t.Errorf("expected 1 frame, got %d", m.Frames())
	}

	after := m.State().Bodies()
	moved := false
	for i := range before {
		if before[i].Position != after[i].Position {
			moved = true
		}
		if before[i].Velocity != after[i].Velocity {
			t.Errorf("body %d velocity changed", i)
		}
	}
	if !moved {
		t.Error("expected bodies to move")
	}
	if m.canvas.String() == NewCanvas(width, height).String() {
		t.Error("expected bodies drawn on the canvas")
	}
}

func TestModelPause(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(m, key(" "))
	if m.Running() {
		t.Fatal("expected paused")
	}

	before := m.State().Bodies()
	for i := 0; i < 5; i++ {
		m, _ = update(m, TickMsg(time.Now()))
	}
	after := m.State().Bodies()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("body %d moved while paused", i)
		}
	}

	// resuming moves by exactly one frame, not by the paused interval
	m, _ = update(m, key(" "))
	m, _ = update(m, TickMsg(time.Now()))
	frame := (time.Second / 60).Seconds()
	for i, b := range before {
		got := m.State().Body(i).Position
		want := b.Position.Add(b.Velocity.Scale(frame))
		if d := got.Add(want.Scale(-1)).Len(); d > 1e-6 && d < 100 {
			t.Errorf("body %d: expected %v, got %v", i, want, got)
		}
	}
}

func TestModelResetAndTheme(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(m, TickMsg(time.Now()))
	first := m.State()

	m, _ = update(m, key("r"))
	if m.State() == first || m.Frames() != 0 {
		t.Error("expected a fresh state after reset")
	}
	if m.State().Len() != 20 {
		t.Errorf("expected 20 bodies, got %d", m.State().Len())
	}

	m, _ = update(m, key("t"))
	if m.Theme().Name != "minimal" {
		t.Errorf("expected theme after retro, got %s", m.Theme().Name)
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := update(m, key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModelViewAndResize(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(m, TickMsg(time.Now()))
	m, _ = update(m, TickMsg(time.Now()))
	m, _ = update(m, key("?"))

	view := m.View()
	for _, want := range []string{"TEST", "Bodies", "KEYBOARD SHORTCUTS"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if m.canvas.Width != 120-statsWidth-4 {
		t.Errorf("expected canvas width %d, got %d", 120-statsWidth-4, m.canvas.Width)
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != Themes[0].Name {
		t.Error("expected fallback theme")
	}
	if NextTheme(Themes[len(Themes)-1].Name).Name != Themes[0].Name {
		t.Error("expected wrap to first theme")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names mismatch")
	}
}
