package field

// Body is one planet. Velocity and Radius never change after creation.
type Body struct {
	Position Vec2
	Velocity Vec2
	Radius   float64
}

// wrap applies one toroidal correction per axis and reports how many
// corrections fired. A body further out than one world extent stays out.
func (b *Body) wrap(w World) int {
	n := 0
	if b.Position.X > w.Width+b.Radius {
		b.Position.X -= w.Width + 2*b.Radius
		n++
	}
	if b.Position.X < -b.Radius {
		b.Position.X += w.Width + 2*b.Radius
		n++
	}
	if b.Position.Y > w.Height+b.Radius {
		b.Position.Y -= w.Height + 2*b.Radius
		n++
	}
	if b.Position.Y < -b.Radius {
		b.Position.Y += w.Height + 2*b.Radius
		n++
	}
	return n
}
