package viz

import (
	"math"
	"strings"

	"github.com/san-kum/planetfield/internal/field"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// DotWidth and DotHeight are the canvas size in sub-pixels.
func (c *Canvas) DotWidth() int  { return c.Width * 2 }
func (c *Canvas) DotHeight() int { return c.Height * 4 }

// Set sets a pixel at (x, y) in sub-pixel coordinates. Out of range pixels
// are dropped.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// FillEllipse sets every dot inside the ellipse centred on (cx, cy). Radii
// below half a dot still mark the centre dot.
func (c *Canvas) FillEllipse(cx, cy, rx, ry float64) {
	if rx < 0.5 || ry < 0.5 {
		c.Set(int(math.Floor(cx)), int(math.Floor(cy)))
		return
	}
	y0 := int(math.Floor(cy - ry))
	y1 := int(math.Ceil(cy + ry))
	x0 := int(math.Floor(cx - rx))
	x1 := int(math.Ceil(cx + rx))
	for y := max(y0, 0); y <= y1 && y < c.DotHeight(); y++ {
		dy := (float64(y) + 0.5 - cy) / ry
		for x := max(x0, 0); x <= x1 && x < c.DotWidth(); x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			if dx*dx+dy*dy <= 1 {
				c.Set(x, y)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Projector draws world-space circles onto a canvas, stretching the world
// rectangle over every dot.
type Projector struct {
	canvas *Canvas
	sx, sy float64
}

func NewProjector(c *Canvas, w field.World) *Projector {
	return &Projector{
		canvas: c,
		sx:     float64(c.DotWidth()) / w.Width,
		sy:     float64(c.DotHeight()) / w.Height,
	}
}

func (p *Projector) FillCircle(center field.Vec2, radius float64) {
	p.canvas.FillEllipse(center.X*p.sx, center.Y*p.sy, radius*p.sx, radius*p.sy)
}
