// Package viz renders a planet field in the terminal.
//
//   - [Canvas]: Braille-based pixel canvas, 2x4 dots per cell
//   - [Projector]: field.Surface that maps world coordinates onto a Canvas
//   - [Model]: Bubble Tea program that advances and redraws the field on a
//     60 Hz tick
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Regenerate the field
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz
