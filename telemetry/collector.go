// Package telemetry accumulates per-step simulation events, aggregates them
// into windowed stats, and writes run output.
package telemetry

// Collector accumulates birth and death events within step windows and
// produces WindowStats.
type Collector struct {
	windowSteps int
	windowStart int

	// Event counters for current window
	births int
	deaths int
}

// NewCollector creates a stats collector that flushes every windowSteps
// simulation steps.
func NewCollector(windowSteps int) *Collector {
	if windowSteps < 1 {
		windowSteps = 1
	}
	return &Collector{windowSteps: windowSteps}
}

// RecordBirth records a birth event.
func (c *Collector) RecordBirth() {
	c.births++
}

// RecordDeath records a death event.
func (c *Collector) RecordDeath() {
	c.deaths++
}

// Births returns the birth count in the current window.
func (c *Collector) Births() int { return c.births }

// Deaths returns the death count in the current window.
func (c *Collector) Deaths() int { return c.deaths }

// ShouldFlush returns true once enough steps have passed to close the window.
func (c *Collector) ShouldFlush(currentStep int) bool {
	return currentStep-c.windowStart+1 >= c.windowSteps
}

// Flush produces a WindowStats for the closing window and resets counters.
// The caller samples population and habitat state at the window end.
func (c *Collector) Flush(currentStep, population int, meanTemp, meanMoisture float64) WindowStats {
	stats := WindowStats{
		WindowStart:  c.windowStart,
		WindowEnd:    currentStep,
		Population:   population,
		Births:       c.births,
		Deaths:       c.deaths,
		MeanTemp:     meanTemp,
		MeanMoisture: meanMoisture,
	}

	c.windowStart = currentStep + 1
	c.births = 0
	c.deaths = 0

	return stats
}
