package sim

import (
	"log/slog"

	"github.com/herpsim/skink/telemetry"
)

// Step executes one simulation step in the fixed order: habitat update,
// per-individual rules (move, reproduce, survive) over a snapshot of the
// individuals present at step start, registration of queued births, age-up
// over the same snapshot, cull, census. No-op once the run is done.
func (s *Sim) Step() {
	if s.Done() {
		return
	}
	t := s.tick
	s.stepBirths = 0
	s.stepDeaths = 0

	// 1. Habitat drift
	s.habitat.UpdateAll(t)

	// 2. Behavioral rules, per individual, against the step-start snapshot
	snapshot := s.liveEntities()
	for _, e := range snapshot {
		s.move(e)
		s.reproduce(e)
		s.survive(e)
	}

	// 3. Register newborns; they join the census but act next step
	s.spawnQueuedBirths()

	// 4. Age-up over the snapshot only
	for _, e := range snapshot {
		s.ageUp(e)
	}

	// 5. Cull and census
	s.cullDead()
	s.trajectory = append(s.trajectory, s.aliveCount)

	s.recordStep(t)
	s.tick++
}

// recordStep emits telemetry for the finished step. Output failures are
// logged, never fatal to the run.
func (s *Sim) recordStep(t int) {
	if s.opts.Output != nil {
		rec := telemetry.StepRecord{
			Step:         t,
			Population:   s.aliveCount,
			Births:       s.stepBirths,
			Deaths:       s.stepDeaths,
			MeanTemp:     s.habitat.MeanTemp(),
			MeanMoisture: s.habitat.MeanMoisture(),
		}
		if err := s.opts.Output.WriteStep(rec); err != nil {
			slog.Error("failed to write step record", "step", t, "error", err)
		}
	}

	if s.opts.Collector != nil && s.opts.Collector.ShouldFlush(t) {
		stats := s.opts.Collector.Flush(t, s.aliveCount, s.habitat.MeanTemp(), s.habitat.MeanMoisture())
		if s.opts.LogStats {
			stats.LogStats()
		}
	}
}
