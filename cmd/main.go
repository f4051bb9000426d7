package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/okian/lectio/internal/app"
	"github.com/okian/lectio/internal/config"
	"github.com/okian/lectio/pkg/logger"
)

func main() {
	var (
		file     = flag.String("file", "", "Observation file to analyze")
		showRows = flag.Bool("rows", false, "Print the ordered table rows")
	)
	flag.Parse()

	// Initialize logging
	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	loggerInstance := logger.Get()

	ctx := context.Background()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if *file == "" {
		os.Stderr.WriteString("usage: lectio -file <observation.csv>\n")
		os.Exit(2)
	}

	svc := app.New(
		app.WithConfig(cfg),
		app.WithLogger(loggerInstance),
	)

	report, err := svc.Analyze(ctx, *file)
	if err != nil {
		os.Stderr.WriteString("failed to analyze observation: " + err.Error() + "\n")
		os.Exit(1)
	}

	printReport(report, *showRows)
}

func printReport(r *app.Report, showRows bool) {
	if len(r.Table.Meta) > 0 {
		fmt.Println("=== Session ===")
		for _, key := range []string{"Protocol", "Session", "Observation Started", "Duration", "Total Responses"} {
			if v, ok := r.Table.Meta[key]; ok {
				fmt.Printf("%s: %s\n", key, v)
			}
		}
		fmt.Println()
	}

	fmt.Println("=== Summary ===")
	fmt.Printf("Total responses: %d\n", r.Summary.TotalResponses)
	fmt.Printf("Categories: %d\n", r.Summary.UniqueCategories)
	fmt.Printf("Time span: %.1f s (%.1f min)\n", r.Summary.TimeSpanSeconds, r.Summary.TimeSpanMinutes)
	fmt.Printf("Average response time: %.1f s\n", r.Summary.AvgResponseTime)
	lo, hi := r.Summary.ValueRange.Strings()
	fmt.Printf("Value range: %s - %s\n", lo, hi)
	fmt.Println()

	fmt.Println("=== Per category ===")
	for _, s := range r.PerCategory {
		fmt.Printf("%s: count=%d mean=%s std=%s min=%s max=%s\n",
			s.Category, s.Count, s.Mean, s.Std, s.Min, s.Max)
	}
	fmt.Println()

	fmt.Println("=== Insights ===")
	for _, line := range r.Insights {
		fmt.Println("- " + line)
	}

	if len(r.Comments) > 0 {
		fmt.Println()
		fmt.Println("=== Comments ===")
		for _, c := range r.Comments {
			fmt.Printf("[%.1fs] %s\n", c.TimeS, c.Text)
		}
	}

	if showRows {
		fmt.Println()
		fmt.Println("=== Rows ===")
		for _, row := range r.Table.Rows {
			fmt.Printf("%g,%s,%s,%s\n", row.TimeS, row.Category, row.Response, row.Value.String())
		}
	}
}
