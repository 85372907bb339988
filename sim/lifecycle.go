package sim

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/herpsim/skink/components"
)

// seedInitialPopulation creates a random count of individuals for every age
// class the survivorship table covers, each at a uniformly random patch.
func (s *Sim) seedInitialPopulation() {
	span := s.params.SeedMaxPerAge - s.params.SeedMinPerAge + 1
	for age := 0; age <= s.params.Life.MaxTrackedAge(); age++ {
		n := s.params.SeedMinPerAge + s.rng.Intn(span)
		for i := 0; i < n; i++ {
			row := s.rng.Intn(s.habitat.Rows)
			col := s.rng.Intn(s.habitat.Cols)
			s.spawnIndividual(age, row, col)
		}
	}
}

// spawnIndividual registers a new live individual at (row, col).
func (s *Sim) spawnIndividual(age, row, col int) ecs.Entity {
	pos := components.Position{Row: row, Col: col}
	demo := components.Demography{Age: age, Alive: true}
	brood := components.Brood{Carry: 0}

	entity := s.mapper.NewEntity(&pos, &demo, &brood)
	s.aliveCount++
	return entity
}

// spawnQueuedBirths registers the offspring queued during the rules phase.
// They count in this step's census but first act next step.
func (s *Sim) spawnQueuedBirths() {
	for _, b := range s.birthQueue {
		s.spawnIndividual(0, b.row, b.col)
		s.stepBirths++
		if s.opts.Collector != nil {
			s.opts.Collector.RecordBirth()
		}
	}
	s.birthQueue = s.birthQueue[:0]
}

// liveEntities snapshots the individuals present right now. The rules and
// age-up phases iterate this snapshot, never the live registry, so births
// during the step cannot leak into it.
func (s *Sim) liveEntities() []ecs.Entity {
	out := make([]ecs.Entity, 0, s.aliveCount)
	query := s.filter.Query()
	for query.Next() {
		_, demo, _ := query.Get()
		if demo.Alive {
			out = append(out, query.Entity())
		}
	}
	return out
}

// cullDead removes every dead individual from the registry. Collection and
// removal are separate passes; the registry cannot be mutated while a query
// is open.
func (s *Sim) cullDead() {
	var toRemove []ecs.Entity

	query := s.filter.Query()
	for query.Next() {
		_, demo, _ := query.Get()
		if !demo.Alive {
			toRemove = append(toRemove, query.Entity())
		}
	}

	for _, e := range toRemove {
		s.mapper.Remove(e)
		s.aliveCount--
		s.stepDeaths++
		if s.opts.Collector != nil {
			s.opts.Collector.RecordDeath()
		}
	}
}
