package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/san-kum/planetfield/internal/field"
)

type circle struct {
	cx, cy, r float64
}

// SVG is a field.Surface that records circles and writes them as one SVG
// document. World coordinates are multiplied by Scale.
type SVG struct {
	World      field.World
	Scale      float64
	Fill       string
	Background string
	circles    []circle
}

func NewSVG(w field.World, scale float64) *SVG {
	return &SVG{
		World:      w,
		Scale:      scale,
		Fill:       "#00ff00",
		Background: "#0a0a0a",
	}
}

func (s *SVG) FillCircle(center field.Vec2, radius float64) {
	s.circles = append(s.circles, circle{
		cx: center.X * s.Scale,
		cy: center.Y * s.Scale,
		r:  radius * s.Scale,
	})
}

func (s *SVG) Len() int { return len(s.circles) }

// Reset drops recorded circles so the surface can take another frame.
func (s *SVG) Reset() { s.circles = s.circles[:0] }

func (s *SVG) String() string {
	width := s.World.Width * s.Scale
	height := s.World.Height * s.Scale

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, s.Background, s.Fill))

	for _, c := range s.circles {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, c.cx, c.cy, c.r))
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

func (s *SVG) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
