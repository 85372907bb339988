// Package ui renders a running simulation with raylib: the habitat grid as
// a temperature heatmap, individuals as dots, and a HUD with run state.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/herpsim/skink/sim"
)

const hudHeight = 96

// Viewer drives and draws an interactive run.
type Viewer struct {
	cellSize int32

	stepsPerSec float32
	accum       float32
	paused      bool
}

// NewViewer creates a viewer with the given patch size in pixels.
func NewViewer(cellSize int) *Viewer {
	return &Viewer{
		cellSize:    int32(cellSize),
		stepsPerSec: 4,
	}
}

// WindowSize returns the window dimensions for a rows x cols grid.
func (v *Viewer) WindowSize(rows, cols int) (width, height int32) {
	return int32(cols) * v.cellSize, int32(rows)*v.cellSize + hudHeight
}

// Update handles input and advances the simulation at the selected speed.
func (v *Viewer) Update(s *sim.Sim) {
	if rl.IsKeyPressed(rl.KeySpace) {
		v.paused = !v.paused
	}

	if v.paused || s.Done() {
		return
	}

	v.accum += rl.GetFrameTime() * v.stepsPerSec
	for v.accum >= 1 {
		s.Step()
		v.accum--
	}
}

// Draw renders one frame.
func (v *Viewer) Draw(s *sim.Sim) {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	v.drawHabitat(s)
	v.drawIndividuals(s)
	v.drawHUD(s)

	rl.EndDrawing()
}

// drawHabitat renders every patch colored by temperature and darkened by
// shade.
func (v *Viewer) drawHabitat(s *sim.Sim) {
	grid := s.Habitat()
	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			patch := grid.At(r, c)
			color := tempColor(patch.Temp)

			// Shaded patches render darker
			dim := 1.0 - 0.4*patch.Shade
			color.R = uint8(float64(color.R) * dim)
			color.G = uint8(float64(color.G) * dim)
			color.B = uint8(float64(color.B) * dim)

			x := int32(c) * v.cellSize
			y := int32(r) * v.cellSize
			rl.DrawRectangle(x, y, v.cellSize, v.cellSize, color)
			rl.DrawRectangleLines(x, y, v.cellSize, v.cellSize, rl.Fade(rl.Black, 0.25))
		}
	}
}

// drawIndividuals renders each individual as a dot, packed into a 3x3
// arrangement within its patch so co-located individuals stay visible.
func (v *Viewer) drawIndividuals(s *sim.Sim) {
	slots := make(map[[2]int]int)
	third := v.cellSize / 3

	for _, ind := range s.Individuals() {
		key := [2]int{ind.Row, ind.Col}
		slot := slots[key] % 9
		slots[key]++

		x := int32(ind.Col)*v.cellSize + third/2 + int32(slot%3)*third
		y := int32(ind.Row)*v.cellSize + third/2 + int32(slot/3)*third

		radius := float32(v.cellSize) / 10
		rl.DrawCircle(x, y, radius, rl.DarkGreen)
		rl.DrawCircleLines(x, y, radius, rl.White)
	}
}

// drawHUD renders run state, the population sparkline, and the speed slider.
func (v *Viewer) drawHUD(s *sim.Sim) {
	grid := s.Habitat()
	top := int32(grid.Rows) * v.cellSize

	rl.DrawRectangle(0, top, int32(grid.Cols)*v.cellSize, hudHeight, rl.Color{R: 20, G: 20, B: 24, A: 255})

	rl.DrawText(
		fmt.Sprintf("Step: %d  Population: %d  MeanTemp: %.1f", s.Tick(), s.Population(), grid.MeanTemp()),
		10, top+8, 18, rl.White,
	)

	status := "Running  [SPACE] pause"
	if s.Done() {
		status = "Completed"
	} else if v.paused {
		status = "PAUSED  [SPACE] resume"
	}
	rl.DrawText(status, 10, top+30, 16, rl.Yellow)

	// Speed slider
	sliderWidth := float32(grid.Cols)*float32(v.cellSize) - 170
	v.stepsPerSec = gui.SliderBar(
		rl.Rectangle{X: 90, Y: float32(top) + 54, Width: sliderWidth, Height: 18},
		"steps/s", fmt.Sprintf("%.0f", v.stepsPerSec),
		v.stepsPerSec, 1, 60,
	)

	v.drawSparkline(s, top+76, 16)
}

// drawSparkline draws the population trajectory so far as a thin line chart.
func (v *Viewer) drawSparkline(s *sim.Sim, y, height int32) {
	traj := s.Trajectory()
	if len(traj) < 2 {
		return
	}

	peak := 1
	for _, p := range traj {
		if p > peak {
			peak = p
		}
	}

	width := float32(s.Habitat().Cols)*float32(v.cellSize) - 20
	dx := width / float32(len(traj)-1)
	for i := 1; i < len(traj); i++ {
		x0 := 10 + float32(i-1)*dx
		x1 := 10 + float32(i)*dx
		y0 := float32(y+height) - float32(traj[i-1])/float32(peak)*float32(height)
		y1 := float32(y+height) - float32(traj[i])/float32(peak)*float32(height)
		rl.DrawLineV(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, rl.SkyBlue)
	}
}

// tempColor maps patch temperature onto a cool-to-hot ramp.
func tempColor(temp float64) rl.Color {
	// 20C renders fully cool, 45C fully hot
	t := (temp - 20.0) / 25.0
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	cool := rl.Color{R: 40, G: 90, B: 160, A: 255}
	hot := rl.Color{R: 210, G: 70, B: 40, A: 255}
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + t*(float64(b)-float64(a)))
	}
	return rl.Color{R: lerp(cool.R, hot.R), G: lerp(cool.G, hot.G), B: lerp(cool.B, hot.B), A: 255}
}
