package field

import "testing"

func TestVec2Arithmetic(t *testing.T) {
	a := V(1, 2)
	b := V(3, -4)

	if got := a.Add(b); got != V(4, -2) {
		t.Errorf("add: expected (4,-2), got %v", got)
	}
	if got := b.Div(2); got != V(1.5, -2) {
		t.Errorf("div: expected (1.5,-2), got %v", got)
	}
	if got := a.Scale(3); got != V(3, 6) {
		t.Errorf("scale: expected (3,6), got %v", got)
	}
	if got := b.Len(); got != 5 {
		t.Errorf("len: expected 5, got %f", got)
	}

	a.AddAssign(b)
	if a != V(4, -2) {
		t.Errorf("add assign: expected (4,-2), got %v", a)
	}
}
