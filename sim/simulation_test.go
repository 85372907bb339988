package sim

import (
	"testing"

	"github.com/herpsim/skink/life"
	"github.com/herpsim/skink/telemetry"
)

func TestZeroStepsYieldsEmptyTrajectory(t *testing.T) {
	params := DefaultParams()
	params.Steps = 0

	s, err := New(params, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	traj := s.Run()
	if len(traj) != 0 {
		t.Errorf("trajectory length = %d, want 0", len(traj))
	}
}

func TestTrajectoryLengthMatchesSteps(t *testing.T) {
	params := DefaultParams()
	params.Steps = 25

	s, err := New(params, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	traj := s.Run()
	if len(traj) != 25 {
		t.Errorf("trajectory length = %d, want 25", len(traj))
	}
	if !s.Done() {
		t.Error("sim should be done after Run")
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"negative steps", func(p *Params) { p.Steps = -1 }},
		{"empty life table", func(p *Params) { p.Life = life.Table{} }},
		{"increasing survivorship", func(p *Params) { p.Life.Survivorship = []float64{0.5, 0.9} }},
		{"zero rows", func(p *Params) { p.Rows = 0 }},
		{"zero cols", func(p *Params) { p.Cols = 0 }},
		{"inverted seeding", func(p *Params) { p.SeedMinPerAge = 9; p.SeedMaxPerAge = 2 }},
		{"negative max age", func(p *Params) { p.MaxAge = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := DefaultParams()
			tt.mutate(&params)
			if _, err := New(params, Options{}); err == nil {
				t.Error("New() should fail")
			}
		})
	}
}

func TestSeedingCoversAllAgeClasses(t *testing.T) {
	params := DefaultParams()
	params.SeedMinPerAge = 1
	params.SeedMaxPerAge = 1

	s, err := New(params, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ages := make(map[int]int)
	for _, ind := range s.Individuals() {
		ages[ind.Age]++
	}

	maxAge := params.Life.MaxTrackedAge()
	for age := 0; age <= maxAge; age++ {
		if ages[age] != 1 {
			t.Errorf("age class %d seeded %d individuals, want 1", age, ages[age])
		}
	}
	if s.Population() != maxAge+1 {
		t.Errorf("population = %d, want %d", s.Population(), maxAge+1)
	}
}

func TestSameSeedSameTrajectory(t *testing.T) {
	params := DefaultParams()
	params.Steps = 30
	params.Seed = 1234

	run := func() []int {
		s, err := New(params, Options{})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		return s.Run()
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("trajectories diverge at step %d: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestNewbornsCensusedButActNextStep(t *testing.T) {
	// One fertile adult, guaranteed survival, no movement. Its two offspring
	// must count in this step's census with age 0, and first act next step.
	params := DefaultParams()
	params.Rows, params.Cols = 3, 3
	params.Steps = 2
	params.Life = life.Table{
		Survivorship: []float64{1, 1, 1, 1, 1},
		Fecundity:    []float64{0, 2},
	}

	s, err := newSim(params, Options{}, false)
	if err != nil {
		t.Fatalf("newSim: %v", err)
	}
	setAllPatches(s, 25.0, 1.0)
	s.spawnIndividual(1, 1, 1)

	s.Step()

	if got := s.Trajectory()[0]; got != 3 {
		t.Fatalf("census after step 0 = %d, want 3 (adult + 2 newborns)", got)
	}

	var newborns, aged int
	for _, ind := range s.Individuals() {
		switch ind.Age {
		case 0:
			newborns++ // not aged in their birth step
		case 2:
			aged++ // the adult aged 1 -> 2
		default:
			t.Errorf("unexpected age %d", ind.Age)
		}
	}
	if newborns != 2 || aged != 1 {
		t.Fatalf("newborns=%d aged=%d, want 2/1", newborns, aged)
	}

	// Next step: newborns act (age 0 is barren, so no births from them) and
	// age up; the adult at age 2 is past the fecundity table.
	s.Step()

	if got := s.Trajectory()[1]; got != 3 {
		t.Fatalf("census after step 1 = %d, want 3", got)
	}
	for _, ind := range s.Individuals() {
		if ind.Age == 0 {
			t.Error("newborns should have aged to 1 in their first active step")
		}
	}
}

func TestDeterministicExtinctionWithTruncatedTable(t *testing.T) {
	// Two certain-survival age classes, zero fecundity: every individual
	// reaching age 2 dies, so the population hits zero by step 2.
	params := DefaultParams()
	params.Steps = 5
	params.Life = life.Table{
		Survivorship: []float64{1.0, 1.0},
		Fecundity:    []float64{0, 0},
	}

	s, err := New(params, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	traj := s.Run()
	initial := traj[0]

	for i := 1; i < len(traj); i++ {
		if traj[i] > traj[i-1] {
			t.Errorf("population rose from %d to %d at step %d with zero fecundity", traj[i-1], traj[i], i)
		}
	}
	if traj[2] != 0 {
		t.Errorf("population at step 2 = %d, want 0 (initial %d)", traj[2], initial)
	}
	for i := 2; i < len(traj); i++ {
		if traj[i] != 0 {
			t.Errorf("population at step %d = %d, want 0", i, traj[i])
		}
	}
}

func TestCensusBounds(t *testing.T) {
	// Population is never negative and never exceeds initial size plus
	// cumulative births.
	params := DefaultParams()
	params.Steps = 40

	// Window larger than the run so the collector never flushes: its
	// counters accumulate the whole run's births.
	collector := telemetry.NewCollector(params.Steps + 1)

	s, err := New(params, Options{Collector: collector})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	initial := s.Population()

	traj := s.Run()
	ceiling := initial + collector.Births()

	for i, pop := range traj {
		if pop < 0 {
			t.Errorf("population at step %d = %d, negative", i, pop)
		}
		if pop > ceiling {
			t.Errorf("population at step %d = %d exceeds ever-created total %d", i, pop, ceiling)
		}
	}
}

func TestDeadRemovedAfterCensus(t *testing.T) {
	// An individual past the survivorship table dies in its step, so the
	// registry holds no dead individuals after the cull.
	params := DefaultParams()
	params.Rows, params.Cols = 3, 3
	params.Steps = 1
	params.Life = life.Table{Survivorship: []float64{1.0, 1.0}}

	s, err := newSim(params, Options{}, false)
	if err != nil {
		t.Fatalf("newSim: %v", err)
	}
	setAllPatches(s, 25.0, 1.0)
	s.spawnIndividual(2, 0, 0) // past the table: dies in survive
	s.spawnIndividual(1, 2, 2) // survives, ages to 2

	s.Step()

	if got := s.Trajectory()[0]; got != 1 {
		t.Fatalf("census = %d, want 1", got)
	}
	if got := len(s.Individuals()); got != 1 {
		t.Fatalf("registry holds %d live individuals, want 1", got)
	}
}

func TestStepAfterDoneIsNoop(t *testing.T) {
	params := DefaultParams()
	params.Steps = 1

	s, err := New(params, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Run()

	before := len(s.Trajectory())
	s.Step()
	if len(s.Trajectory()) != before {
		t.Error("Step after completion extended the trajectory")
	}
}
