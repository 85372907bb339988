package sim

import (
	"math"

	"github.com/mlange-42/ark/ecs"
)

// move relocates a heat-stressed individual to its coolest Moore neighbor.
// Below the heat threshold the individual stays put; a tie with the current
// patch (or no strictly cooler neighbor) also means staying. Greedy and
// myopic: one hop per step, no memory of prior locations.
func (s *Sim) move(e ecs.Entity) {
	demo := s.demoMap.Get(e)
	if !demo.Alive {
		return
	}
	pos := s.posMap.Get(e)

	current := s.habitat.At(pos.Row, pos.Col)
	if current.Temp <= s.params.HeatThreshold {
		return
	}

	bestRow, bestCol := pos.Row, pos.Col
	bestTemp := current.Temp
	for _, n := range s.habitat.Neighbors(pos.Row, pos.Col) {
		if t := s.habitat.At(n.Row, n.Col).Temp; t < bestTemp {
			bestTemp = t
			bestRow, bestCol = n.Row, n.Col
		}
	}

	pos.Row, pos.Col = bestRow, bestCol
}

// reproduce queues this step's offspring. Expected births come from the
// age-indexed fecundity table, reduced by up to DrynessPenalty on dry
// patches. The fractional part accumulates in the brood carry so sub-unit
// birth rates still produce offspring over time instead of rounding to
// zero forever.
func (s *Sim) reproduce(e ecs.Entity) {
	demo := s.demoMap.Get(e)
	if !demo.Alive {
		return
	}
	pos := s.posMap.Get(e)
	brood := s.broodMap.Get(e)

	patch := s.habitat.At(pos.Row, pos.Col)
	dryness := math.Max(0, 1-patch.Moisture)
	penalty := 1 - dryness*s.params.DrynessPenalty

	actual := s.params.Life.BirthRate(demo.Age) * penalty

	whole := math.Floor(actual)
	brood.Carry += actual - whole

	offspring := int(whole)
	if brood.Carry >= 1 {
		offspring++
		brood.Carry--
	}

	for i := 0; i < offspring; i++ {
		s.birthQueue = append(s.birthQueue, birth{row: pos.Row, col: pos.Col})
	}
}

// survive rolls the individual's age-conditional survival probability.
// Newborns survive the step they are born unconditionally; ages past the
// survivorship table die unconditionally. Local heat stress multiplies the
// probability down. The probability is in (0,1] by the life-table contract
// (validated at construction), so no clamping happens here.
func (s *Sim) survive(e ecs.Entity) {
	demo := s.demoMap.Get(e)
	if !demo.Alive {
		return
	}

	if demo.Age == 0 {
		return
	}
	if demo.Age > s.params.Life.MaxTrackedAge() {
		demo.Alive = false
		return
	}

	prob := s.params.Life.SurvivalProb(demo.Age)

	pos := s.posMap.Get(e)
	if s.habitat.At(pos.Row, pos.Col).Temp > s.params.HeatStressTemp {
		prob *= s.params.HeatStressFactor
	}

	demo.Alive = s.rng.Float64() < prob
}

// ageUp increments age and applies the hard maximum-age cutoff.
func (s *Sim) ageUp(e ecs.Entity) {
	demo := s.demoMap.Get(e)
	demo.Age++
	if demo.Age > s.params.MaxAge {
		demo.Alive = false
	}
}
