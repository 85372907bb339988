package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of simulation steps.
type WindowStats struct {
	WindowStart int `csv:"-"`
	WindowEnd   int `csv:"window_end"`

	// Population size at window end
	Population int `csv:"population"`

	// Events during window
	Births int `csv:"births"`
	Deaths int `csv:"deaths"`

	// Habitat state sampled at window end
	MeanTemp     float64 `csv:"mean_temp"`
	MeanMoisture float64 `csv:"mean_moisture"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStart),
		slog.Int("window_end", s.WindowEnd),
		slog.Int("population", s.Population),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Float64("mean_temp", s.MeanTemp),
		slog.Float64("mean_moisture", s.MeanMoisture),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEnd,
		"population", s.Population,
		"births", s.Births,
		"deaths", s.Deaths,
		"mean_temp", s.MeanTemp,
		"mean_moisture", s.MeanMoisture,
	)
}

// RunSummary describes a whole population trajectory.
type RunSummary struct {
	Steps      int     `json:"steps"`
	FinalPop   int     `json:"final_population"`
	PeakPop    int     `json:"peak_population"`
	PeakStep   int     `json:"peak_step"`
	MinPop     int     `json:"min_population"`
	MeanPop    float64 `json:"mean_population"`
	StdDevPop  float64 `json:"stddev_population"`
	P10Pop     float64 `json:"p10_population"`
	MedianPop  float64 `json:"median_population"`
	P90Pop     float64 `json:"p90_population"`
	Extinction int     `json:"extinction_step"` // first step with zero population, -1 if never
}

// Summarize computes trajectory statistics for a finished run. A nil or
// empty trajectory yields a zero summary.
func Summarize(trajectory []int) RunSummary {
	s := RunSummary{Steps: len(trajectory), Extinction: -1}
	if len(trajectory) == 0 {
		return s
	}

	xs := make([]float64, len(trajectory))
	s.MinPop = trajectory[0]
	for i, p := range trajectory {
		xs[i] = float64(p)
		if p > s.PeakPop {
			s.PeakPop = p
			s.PeakStep = i
		}
		if p < s.MinPop {
			s.MinPop = p
		}
		if p == 0 && s.Extinction == -1 {
			s.Extinction = i
		}
	}
	s.FinalPop = trajectory[len(trajectory)-1]

	s.MeanPop = stat.Mean(xs, nil)
	s.StdDevPop = stat.StdDev(xs, nil)

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	s.P10Pop = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	s.MedianPop = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	s.P90Pop = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s RunSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("steps", s.Steps),
		slog.Int("final_population", s.FinalPop),
		slog.Int("peak_population", s.PeakPop),
		slog.Int("peak_step", s.PeakStep),
		slog.Int("min_population", s.MinPop),
		slog.Float64("mean_population", s.MeanPop),
		slog.Float64("stddev_population", s.StdDevPop),
		slog.Float64("p10_population", s.P10Pop),
		slog.Float64("median_population", s.MedianPop),
		slog.Float64("p90_population", s.P90Pop),
		slog.Int("extinction_step", s.Extinction),
	)
}
