package sim

import (
	"time"

	"github.com/san-kum/planetfield/internal/field"
)

// Tick moves st to now for an interactive driver and returns the wraps in
// that frame. A paused tick only follows the clock, so resuming does not
// replay the paused interval. Drawing is left to the caller.
func Tick(st *field.State, now time.Time, paused bool) int {
	if paused {
		st.Touch(now)
		return 0
	}
	before := st.Wraps()
	st.Advance(now)
	return st.Wraps() - before
}
