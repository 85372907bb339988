package habitat

import (
	"fmt"
	"math/rand"
)

// GenParams controls randomized patch initialization.
type GenParams struct {
	BaseTemp       float64
	TempJitter     float64
	BaseMoisture   float64
	MoistureJitter float64
	ShadeLevels    []float64
}

// DefaultGenParams returns the standard initialization ranges.
func DefaultGenParams() GenParams {
	return GenParams{
		BaseTemp:       25.0,
		TempJitter:     2.0,
		BaseMoisture:   0.5,
		MoistureJitter: 0.1,
		ShadeLevels:    []float64{0.0, 0.3, 0.7},
	}
}

// Coord addresses a single patch.
type Coord struct {
	Row, Col int
}

// Grid is a fixed-size 2D collection of patches. It owns its patches
// exclusively for the lifetime of a run.
type Grid struct {
	Rows, Cols int
	drift      Drift
	patches    []Patch
}

// New builds a rows x cols grid with randomized initial conditions drawn
// from gen using rng.
func New(rows, cols int, gen GenParams, drift Drift, rng *rand.Rand) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("habitat: grid dimensions must be positive, got %dx%d", rows, cols)
	}
	if len(gen.ShadeLevels) == 0 {
		return nil, fmt.Errorf("habitat: shade levels must not be empty")
	}
	if drift.DayLength <= 0 {
		return nil, fmt.Errorf("habitat: day length must be positive, got %v", drift.DayLength)
	}

	g := &Grid{
		Rows:    rows,
		Cols:    cols,
		drift:   drift,
		patches: make([]Patch, rows*cols),
	}
	for i := range g.patches {
		g.patches[i] = Patch{
			Temp:     gen.BaseTemp + (rng.Float64()*2-1)*gen.TempJitter,
			Moisture: gen.BaseMoisture + (rng.Float64()*2-1)*gen.MoistureJitter,
			Shade:    gen.ShadeLevels[rng.Intn(len(gen.ShadeLevels))],
		}
	}
	return g, nil
}

// At returns the patch at (row, col).
func (g *Grid) At(row, col int) *Patch {
	return &g.patches[row*g.Cols+col]
}

// InBounds reports whether (row, col) addresses a patch.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// UpdateAll applies one drift step to every patch. Patches are independent,
// so update order does not matter.
func (g *Grid) UpdateAll(dayTime int) {
	for i := range g.patches {
		g.patches[i].Update(dayTime, g.drift)
	}
}

// Neighbors returns the Moore neighborhood of (row, col): the up to 8
// adjacent cells clipped to grid bounds, excluding the center itself.
func (g *Grid) Neighbors(row, col int) []Coord {
	out := make([]Coord, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			nr, nc := row+dr, col+dc
			if g.InBounds(nr, nc) {
				out = append(out, Coord{Row: nr, Col: nc})
			}
		}
	}
	return out
}

// MeanTemp returns the average patch temperature, for telemetry sampling.
func (g *Grid) MeanTemp() float64 {
	var sum float64
	for i := range g.patches {
		sum += g.patches[i].Temp
	}
	return sum / float64(len(g.patches))
}

// MeanMoisture returns the average patch moisture, for telemetry sampling.
func (g *Grid) MeanMoisture() float64 {
	var sum float64
	for i := range g.patches {
		sum += g.patches[i].Moisture
	}
	return sum / float64(len(g.patches))
}
