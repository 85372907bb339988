// Package components defines ECS components for the simulation.
package components

// Position is an individual's location on the habitat grid. Coordinates are
// always in-bounds; individuals reference a patch, they never own one.
type Position struct {
	Row, Col int
}

// Demography holds an individual's age and life state. Alive flips to false
// in the survival rule or at the hard age cutoff; dead individuals are
// removed from the registry at the end of the step.
type Demography struct {
	Age   int
	Alive bool
}

// Brood accumulates the fractional reproduction remainder across steps.
// Carry stays in [0,1): once it reaches a whole unit it converts to an
// extra offspring and is decremented.
type Brood struct {
	Carry float64
}
