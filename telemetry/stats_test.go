package telemetry

import (
	"math"
	"testing"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Steps != 0 || s.Extinction != -1 {
		t.Errorf("empty trajectory: got %+v", s)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]int{10, 20, 30, 20, 0, 0})

	if s.Steps != 6 {
		t.Errorf("steps = %d, want 6", s.Steps)
	}
	if s.PeakPop != 30 || s.PeakStep != 2 {
		t.Errorf("peak = %d at step %d, want 30 at 2", s.PeakPop, s.PeakStep)
	}
	if s.MinPop != 0 {
		t.Errorf("min = %d, want 0", s.MinPop)
	}
	if s.FinalPop != 0 {
		t.Errorf("final = %d, want 0", s.FinalPop)
	}
	if s.Extinction != 4 {
		t.Errorf("extinction step = %d, want 4", s.Extinction)
	}
	wantMean := (10.0 + 20 + 30 + 20) / 6.0
	if math.Abs(s.MeanPop-wantMean) > 1e-9 {
		t.Errorf("mean = %v, want %v", s.MeanPop, wantMean)
	}
}

func TestSummarizeNoExtinction(t *testing.T) {
	s := Summarize([]int{5, 6, 7})
	if s.Extinction != -1 {
		t.Errorf("extinction step = %d, want -1", s.Extinction)
	}
	if s.MedianPop != 6 {
		t.Errorf("median = %v, want 6", s.MedianPop)
	}
}

func TestRunSummaryLogValueCarriesQuantiles(t *testing.T) {
	s := Summarize([]int{10, 20, 30, 40, 50})

	keys := make(map[string]bool)
	for _, attr := range s.LogValue().Group() {
		keys[attr.Key] = true
	}
	for _, want := range []string{"p10_population", "median_population", "p90_population"} {
		if !keys[want] {
			t.Errorf("LogValue missing %q", want)
		}
	}
}

func TestCollectorWindowing(t *testing.T) {
	c := NewCollector(5)

	for i := 0; i < 3; i++ {
		c.RecordBirth()
	}
	c.RecordDeath()

	if c.ShouldFlush(3) {
		t.Error("window of 5 should not flush at step 3")
	}
	if !c.ShouldFlush(4) {
		t.Error("window of 5 should flush at step 4")
	}

	stats := c.Flush(4, 42, 26.5, 0.45)
	if stats.Births != 3 || stats.Deaths != 1 {
		t.Errorf("flushed births=%d deaths=%d, want 3/1", stats.Births, stats.Deaths)
	}
	if stats.WindowStart != 0 || stats.WindowEnd != 4 {
		t.Errorf("window [%d,%d], want [0,4]", stats.WindowStart, stats.WindowEnd)
	}
	if stats.Population != 42 {
		t.Errorf("population = %d, want 42", stats.Population)
	}

	// Counters reset, window advances
	if c.Births() != 0 || c.Deaths() != 0 {
		t.Errorf("counters not reset: births=%d deaths=%d", c.Births(), c.Deaths())
	}
	if c.ShouldFlush(8) {
		t.Error("next window should not flush at step 8")
	}
	if !c.ShouldFlush(9) {
		t.Error("next window should flush at step 9")
	}
}

func TestCollectorMinimumWindow(t *testing.T) {
	c := NewCollector(0)
	if !c.ShouldFlush(0) {
		t.Error("degenerate window should clamp to 1 and flush every step")
	}
}
