package field

import "errors"

// Configuration errors reported by NewGenerator.
var (
	// ErrWorldBounds indicates a world with a non-positive width or height.
	ErrWorldBounds = errors.New("field: world bounds must be positive")

	// ErrPopulation indicates a negative body count.
	ErrPopulation = errors.New("field: population count must not be negative")

	// ErrRange indicates a sampling range whose max is below its min.
	ErrRange = errors.New("field: range max below min")

	// ErrRadiusRange indicates a radius sample range that reaches zero or
	// below, which would make the derived radius infinite or negative.
	ErrRadiusRange = errors.New("field: radius sample range must be strictly positive")

	// ErrPositionRange indicates a spawn range reaching outside the world.
	ErrPositionRange = errors.New("field: position range must lie within the world")
)
