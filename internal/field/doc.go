// Package field simulates a population of circular bodies drifting at
// constant velocity across a bounded plane whose edges wrap around.
//
// The package defines the core types and operations:
//
//   - [Vec2]: position or velocity in world units
//   - [Body]: a planet with position, constant velocity and fixed radius
//   - [Generator]: builds a randomized initial population
//   - [State]: owns the population and advances it by elapsed time
//   - [Surface]: drawing target that [State.Render] paints bodies onto
//
// # Example
//
//	gen, _ := field.NewGenerator(field.DefaultParams(), rand.NewPCG(1, 2))
//	st := gen.Generate(time.Now())
//	for range ticker.C {
//		st.Render(time.Now(), surface)
//	}
//
// # Thread Safety
//
// State instances are NOT thread-safe. A single driver owns the state and
// calls Advance or Render sequentially, once per frame.
package field
