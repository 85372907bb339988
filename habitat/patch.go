// Package habitat models the grid of microhabitat patches individuals live
// on. Each patch carries independent environmental state; only the grid
// mutates patches, individuals just read them.
package habitat

// Patch is one grid cell's environmental state.
type Patch struct {
	Temp     float64 // deg C
	Moisture float64 // unitless fraction, floored at 0
	Shade    float64 // fraction in [0,1], fixed at creation
}

// Drift holds per-step environmental drift parameters. The step index is
// reused directly as a pseudo-time unit, so both the warming and the
// moisture loss grow in magnitude as a run progresses.
type Drift struct {
	TempRate      float64 // temp gain coefficient per step
	MoistureDecay float64 // moisture loss coefficient per step
	DayLength     float64 // pseudo-time divisor
}

// DefaultDrift returns the standard drift parameters.
func DefaultDrift() Drift {
	return Drift{TempRate: 0.05, MoistureDecay: 0.01, DayLength: 24}
}

// Update applies one step of deterministic drift to the patch, then clamps
// temperature and moisture to their floors.
func (p *Patch) Update(dayTime int, d Drift) {
	t := float64(dayTime) / d.DayLength
	p.Temp += d.TempRate * t
	p.Moisture -= d.MoistureDecay * t

	if p.Temp < 0 {
		p.Temp = 0
	}
	if p.Moisture < 0 {
		p.Moisture = 0
	}
}
