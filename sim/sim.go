// Package sim implements the individual-based population model: the
// per-individual behavioral rules and the time-stepping loop that ties them
// to the habitat grid.
package sim

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/herpsim/skink/components"
	"github.com/herpsim/skink/habitat"
	"github.com/herpsim/skink/life"
	"github.com/herpsim/skink/telemetry"
)

// Params holds everything one simulation run needs. A Sim owns its own
// registry and random source, so independent runs never share state.
type Params struct {
	Steps      int
	Rows, Cols int
	Life       life.Table

	Gen   habitat.GenParams
	Drift habitat.Drift

	HeatThreshold    float64 // patch temp above which individuals seek cooler neighbors
	HeatStressTemp   float64 // patch temp above which survival is penalized
	HeatStressFactor float64 // survival multiplier under heat stress
	DrynessPenalty   float64 // max fecundity reduction on fully dry patches
	MaxAge           int     // hard age cutoff, independent of the life table

	SeedMinPerAge int // minimum individuals seeded per age class
	SeedMaxPerAge int // maximum individuals seeded per age class

	Seed int64 // RNG seed for the run's single random source
}

// DefaultParams returns the standard model parameters with the illustrative
// life table.
func DefaultParams() Params {
	return Params{
		Steps:            50,
		Rows:             10,
		Cols:             10,
		Life:             life.Default(),
		Gen:              habitat.DefaultGenParams(),
		Drift:            habitat.DefaultDrift(),
		HeatThreshold:    32.0,
		HeatStressTemp:   35.0,
		HeatStressFactor: 0.8,
		DrynessPenalty:   0.3,
		MaxAge:           15,
		SeedMinPerAge:    5,
		SeedMaxPerAge:    15,
		Seed:             42,
	}
}

// Options carries optional run instrumentation.
type Options struct {
	Collector *telemetry.Collector
	Output    *telemetry.OutputManager
	LogStats  bool
}

// birth is a queued offspring, registered after the rules phase so newborns
// never act in the step they are born.
type birth struct {
	row, col int
}

// Sim is one simulation run: habitat grid, population registry, and the
// stepping state machine.
type Sim struct {
	world  *ecs.World
	mapper *ecs.Map3[
		components.Position,
		components.Demography,
		components.Brood,
	]
	filter *ecs.Filter3[
		components.Position,
		components.Demography,
		components.Brood,
	]
	posMap   *ecs.Map1[components.Position]
	demoMap  *ecs.Map1[components.Demography]
	broodMap *ecs.Map1[components.Brood]

	rng     *rand.Rand
	habitat *habitat.Grid
	params  Params
	opts    Options

	tick       int
	aliveCount int
	trajectory []int
	birthQueue []birth

	// Per-step event counters for trajectory records
	stepBirths int
	stepDeaths int
}

// New validates params, builds the habitat, and seeds the initial
// population. Nothing is constructed if validation fails.
func New(params Params, opts Options) (*Sim, error) {
	return newSim(params, opts, true)
}

func newSim(params Params, opts Options, seedPopulation bool) (*Sim, error) {
	if params.Steps < 0 {
		return nil, fmt.Errorf("sim: steps must be non-negative, got %d", params.Steps)
	}
	if err := params.Life.Validate(); err != nil {
		return nil, err
	}
	if params.SeedMinPerAge < 0 || params.SeedMaxPerAge < params.SeedMinPerAge {
		return nil, fmt.Errorf("sim: seeding range [%d,%d] invalid", params.SeedMinPerAge, params.SeedMaxPerAge)
	}
	if params.MaxAge < 0 {
		return nil, fmt.Errorf("sim: max age must be non-negative, got %d", params.MaxAge)
	}

	rng := rand.New(rand.NewSource(params.Seed))

	grid, err := habitat.New(params.Rows, params.Cols, params.Gen, params.Drift, rng)
	if err != nil {
		return nil, err
	}

	world := ecs.NewWorld()
	s := &Sim{
		world: world,
		mapper: ecs.NewMap3[
			components.Position,
			components.Demography,
			components.Brood,
		](world),
		filter: ecs.NewFilter3[
			components.Position,
			components.Demography,
			components.Brood,
		](world),
		posMap:   ecs.NewMap1[components.Position](world),
		demoMap:  ecs.NewMap1[components.Demography](world),
		broodMap: ecs.NewMap1[components.Brood](world),

		rng:        rng,
		habitat:    grid,
		params:     params,
		opts:       opts,
		trajectory: make([]int, 0, params.Steps),
	}

	if seedPopulation {
		s.seedInitialPopulation()
	}

	return s, nil
}

// Run advances the simulation to completion and returns the per-step
// population trajectory, length exactly Params.Steps.
func (s *Sim) Run() []int {
	for !s.Done() {
		s.Step()
	}
	return s.Trajectory()
}

// Done reports whether all steps have been executed.
func (s *Sim) Done() bool {
	return s.tick >= s.params.Steps
}

// Tick returns the index of the next step to execute.
func (s *Sim) Tick() int {
	return s.tick
}

// Population returns the current number of live individuals.
func (s *Sim) Population() int {
	return s.aliveCount
}

// Trajectory returns the population samples recorded so far.
func (s *Sim) Trajectory() []int {
	return s.trajectory
}

// Habitat returns the run's habitat grid (read-only for callers; only the
// grid itself mutates patches).
func (s *Sim) Habitat() *habitat.Grid {
	return s.habitat
}

// IndividualState is a read-only view of one live individual, for viewers
// and tests.
type IndividualState struct {
	Row, Col int
	Age      int
}

// Individuals returns a snapshot of all live individuals.
func (s *Sim) Individuals() []IndividualState {
	out := make([]IndividualState, 0, s.aliveCount)
	query := s.filter.Query()
	for query.Next() {
		pos, demo, _ := query.Get()
		if demo.Alive {
			out = append(out, IndividualState{Row: pos.Row, Col: pos.Col, Age: demo.Age})
		}
	}
	return out
}
