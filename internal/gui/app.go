package gui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/san-kum/planetfield/internal/field"
	"github.com/san-kum/planetfield/internal/sim"
)

var (
	ColBg   = color.RGBA{10, 10, 10, 255}
	ColBody = color.RGBA{180, 180, 180, 255}
)

// Game is an ebiten.Game that advances the field once per Update and
// paints every body as a filled circle in Draw.
type Game struct {
	gen    *field.Generator
	state  *field.State
	clock  sim.Clock
	width  int
	height int
	scale  float32
	paused bool
	hud    bool
	target *ebiten.Image
}

// NewGame sizes the window so the world's longer side spans size pixels.
func NewGame(gen *field.Generator, clock sim.Clock, size int) *Game {
	st := gen.Generate(clock.Now())
	w := st.World()
	scale := float32(size) / float32(max(w.Width, w.Height))
	return &Game{
		gen:    gen,
		state:  st,
		clock:  clock,
		width:  int(float32(w.Width) * scale),
		height: int(float32(w.Height) * scale),
		scale:  scale,
		hud:    true,
	}
}

func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.state = g.gen.Generate(g.clock.Now())
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.hud = !g.hud
	}
	sim.Tick(g.state, g.clock.Now(), g.paused)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ColBg)

	g.target = screen
	g.state.Draw(g)
	g.target = nil

	if g.hud {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("bodies %d  wraps %d  fps %.0f  paused %v",
			g.state.Len(), g.state.Wraps(), ebiten.ActualFPS(), g.paused))
	}
}

// FillCircle draws onto the screen passed to the current Draw call.
func (g *Game) FillCircle(center field.Vec2, radius float64) {
	if g.target == nil {
		return
	}
	r := max(float32(radius)*g.scale, 0.5)
	vector.DrawFilledCircle(g.target, float32(center.X)*g.scale, float32(center.Y)*g.scale, r, ColBody, true)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Run opens the window and blocks until it is closed.
func Run(gen *field.Generator, size int, title string) error {
	g := NewGame(gen, sim.SystemClock{}, size)
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}
