package metrics

import "github.com/san-kum/planetfield/internal/field"

// Containment is the fraction of frames in which every body sat within one
// radius of the world rectangle.
type Containment struct {
	name       string
	violations int
	samples    int
}

func NewContainment() *Containment {
	return &Containment{name: "containment"}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(st *field.State, t float64) {
	c.samples++
	w := st.World()
	for i := 0; i < st.Len(); i++ {
		b := st.Body(i)
		p, r := b.Position, b.Radius
		if p.X < -r || p.X > w.Width+r || p.Y < -r || p.Y > w.Height+r {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
