// Command simulate generates a synthetic observation session and exports
// it, so the analyzer and downstream tooling have realistic input without
// a live classroom.
package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/okian/lectio/internal/app"
	"github.com/okian/lectio/internal/config"
	"github.com/okian/lectio/internal/domain/model"
	"github.com/okian/lectio/pkg/logger"
)

// Default simulation constants.
const (
	defaultDuration = 10 * time.Minute
	defaultStep     = 5 * time.Second
	commentChance   = 0.02
	clickChance     = 0.25
	toggleChance    = 0.15
)

var sampleComments = []string{
	"good pacing",
	"lost the back rows",
	"projector flicker",
	"strong discussion",
	"recovered after the break",
}

func main() {
	var (
		output   = flag.String("output", "observation.csv", "Output file for the exported session")
		duration = flag.Duration("duration", defaultDuration, "Simulated session length")
		step     = flag.Duration("step", defaultStep, "Simulated time between actions")
		method   = flag.String("method", "", "Recording mode: timepoint or interval (default from config)")
		seed     = flag.Int64("seed", 0, "Random seed (0 uses the current time)")
	)
	flag.Parse()

	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	loggerInstance := logger.Get()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *method != "" {
		cfg.TimerMethod = *method
	}
	if err := cfg.Validate(); err != nil {
		os.Stderr.WriteString("invalid config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	// The session runs on a virtual clock so a ten-minute observation
	// simulates instantly.
	current := time.Now()
	now := func() time.Time { return current }

	svc := app.New(
		app.WithConfig(cfg),
		app.WithLogger(loggerInstance),
		app.WithNow(now),
	)

	svc.StartObservation(ctx)
	nextFlush := svc.Interval()

	for elapsed := time.Duration(0); elapsed < *duration; elapsed += *step {
		current = current.Add(*step)

		if svc.IntervalMode() {
			if elapsed+*step >= nextFlush {
				svc.TickInterval(ctx)
				nextFlush += svc.Interval()
			}
			simulateToggles(ctx, svc, cfg, rng)
		} else {
			simulateClicks(ctx, svc, cfg, rng)
		}

		if rng.Float64() < commentChance {
			svc.SaveComment(ctx, sampleComments[rng.Intn(len(sampleComments))])
		}
	}

	n, err := svc.StopAndExport(ctx, *output)
	if err != nil {
		os.Stderr.WriteString("failed to export session: " + err.Error() + "\n")
		os.Exit(1)
	}

	loggerInstance.Info(ctx, "simulated session exported",
		logger.String("path", *output),
		logger.Int("events", n),
		logger.String("seed", strconv.FormatInt(*seed, 10)),
	)
}

// simulateClicks presses random buttons in timepoint mode.
func simulateClicks(ctx context.Context, svc *app.Service, cfg *config.Config, rng *rand.Rand) {
	if rng.Float64() < clickChance {
		a := cfg.StudentActions[rng.Intn(len(cfg.StudentActions))]
		svc.RecordClick(ctx, model.CategoryStudent, a.Label)
	}
	if rng.Float64() < clickChance {
		a := cfg.InstructorActions[rng.Intn(len(cfg.InstructorActions))]
		svc.RecordClick(ctx, model.CategoryInstructor, a.Label)
	}
	if rng.Float64() < clickChance {
		a := cfg.EngagementImages[rng.Intn(len(cfg.EngagementImages))]
		svc.RecordClick(ctx, model.CategoryEngagement, a.Label)
	}
}

// simulateToggles flips random toggle state in interval mode. Engagement
// presses exercise the radio-exclusive path.
func simulateToggles(ctx context.Context, svc *app.Service, cfg *config.Config, rng *rand.Rand) {
	if rng.Float64() < toggleChance {
		a := cfg.StudentActions[rng.Intn(len(cfg.StudentActions))]
		svc.Toggle(ctx, model.CategoryStudent, a.Label, rng.Float64() < 0.7)
	}
	if rng.Float64() < toggleChance {
		a := cfg.InstructorActions[rng.Intn(len(cfg.InstructorActions))]
		svc.Toggle(ctx, model.CategoryInstructor, a.Label, rng.Float64() < 0.7)
	}
	if rng.Float64() < toggleChance {
		a := cfg.EngagementImages[rng.Intn(len(cfg.EngagementImages))]
		svc.Toggle(ctx, model.CategoryEngagement, a.Label, true)
	}
}
