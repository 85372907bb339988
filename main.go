package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/herpsim/skink/config"
	"github.com/herpsim/skink/habitat"
	"github.com/herpsim/skink/life"
	"github.com/herpsim/skink/sim"
	"github.com/herpsim/skink/telemetry"
	"github.com/herpsim/skink/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output windowed stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in steps (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for trajectory CSV, summary, and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	steps := flag.Int("steps", 0, "Number of simulation steps (0 = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	params := buildParams(cfg, rngSeed)
	if *steps > 0 {
		params.Steps = *steps
	}

	// Use config stats window if not overridden by CLI
	windowSteps := cfg.Telemetry.StatsWindow
	if *statsWindow > 0 {
		windowSteps = *statsWindow
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer output.Close()

	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	opts := sim.Options{
		Collector: telemetry.NewCollector(windowSteps),
		Output:    output,
		LogStats:  *logStats,
	}

	s, err := sim.New(params, opts)
	if err != nil {
		slog.Error("failed to build simulation", "error", err)
		os.Exit(1)
	}

	slog.Info("starting simulation",
		"run_id", output.RunID(),
		"seed", rngSeed,
		"steps", params.Steps,
		"grid", params.Rows*params.Cols,
		"initial_population", s.Population(),
		"headless", *headless,
	)

	if *headless {
		s.Run()
	} else {
		viewer := ui.NewViewer(cfg.Screen.CellSize)
		width, height := viewer.WindowSize(params.Rows, params.Cols)

		rl.InitWindow(width, height, "Skink - Lizard IBM")
		defer rl.CloseWindow()
		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

		for !rl.WindowShouldClose() {
			viewer.Update(s)
			viewer.Draw(s)
		}
	}

	summary := telemetry.Summarize(s.Trajectory())
	slog.Info("run complete", "run_id", output.RunID(), "summary", summary)

	if err := output.WriteSummary(summary); err != nil {
		slog.Error("failed to write summary", "error", err)
		os.Exit(1)
	}
}

// buildParams maps the loaded configuration onto simulation parameters.
func buildParams(cfg *config.Config, seed int64) sim.Params {
	return sim.Params{
		Steps: cfg.Run.Steps,
		Rows:  cfg.Grid.Rows,
		Cols:  cfg.Grid.Cols,
		Life: life.Table{
			Survivorship: cfg.LifeTable.Survivorship,
			Fecundity:    cfg.LifeTable.Fecundity,
		},
		Gen: habitat.GenParams{
			BaseTemp:       cfg.Habitat.BaseTemp,
			TempJitter:     cfg.Habitat.TempJitter,
			BaseMoisture:   cfg.Habitat.BaseMoisture,
			MoistureJitter: cfg.Habitat.MoistureJitter,
			ShadeLevels:    cfg.Habitat.ShadeLevels,
		},
		Drift: habitat.Drift{
			TempRate:      cfg.Habitat.TempDriftRate,
			MoistureDecay: cfg.Habitat.MoistureDecay,
			DayLength:     cfg.Habitat.DayLength,
		},
		HeatThreshold:    cfg.Movement.HeatThreshold,
		HeatStressTemp:   cfg.Survival.HeatStressTemp,
		HeatStressFactor: cfg.Survival.HeatStressFactor,
		DrynessPenalty:   cfg.Reproduction.DrynessPenalty,
		MaxAge:           cfg.Survival.MaxAge,
		SeedMinPerAge:    cfg.Seeding.MinPerAgeClass,
		SeedMaxPerAge:    cfg.Seeding.MaxPerAgeClass,
		Seed:             seed,
	}
}
