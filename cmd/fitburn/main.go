// Command fitburn estimates calories burned from the heart-rate series of FIT
// activity files, audits data quality, computes Karvonen training zones and
// solves the Keytel equation interactively.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fitburn/fitburn/pkg/bootstrap"
	"github.com/fitburn/fitburn/pkg/config"
	"github.com/fitburn/fitburn/pkg/domain/formula"
	"github.com/fitburn/fitburn/pkg/processor"
	"github.com/fitburn/fitburn/pkg/server"
)

func main() {
	filePath := flag.String("file", "", "Process a single FIT file")
	dirPath := flag.String("dir", "", "Process every FIT file in a directory")
	rename := flag.Bool("rename", false, "Rename processed files by their metadata")
	configPath := flag.String("config", "", "Profile config file (default: FITBURN_CONFIG or config.json)")
	calc := flag.Bool("calc", false, "Interactive cardio calculator (solve one unknown)")
	zones := flag.Bool("zones", false, "Compute Karvonen heart rate zones")
	age := flag.Float64("age", 0, "Age in years (for -zones)")
	resting := flag.Float64("resting", 0, "Resting heart rate in bpm (for -zones)")
	maxHR := flag.Float64("max", 0, "Measured max heart rate in bpm, 0 to estimate (for -zones)")
	intensities := flag.String("intensities", "0.5,0.6,0.7,0.85", "Comma-separated zone intensity fractions (for -zones)")
	serveAddr := flag.String("serve", "", "Serve the JSON report API on this address, e.g. :8080")
	flag.Parse()

	bootstrap.InitLogger()
	logger := bootstrap.NewLogger("fitburn")

	if err := bootstrap.InitSentry(logger); err != nil {
		logger.Warn("sentry init failed", "error", err)
	}
	defer bootstrap.FlushSentry(2 * time.Second)

	switch {
	case *calc:
		runCalculator(os.Stdin, os.Stdout, logger)

	case *zones:
		if err := runZones(*age, *resting, *maxHR, *intensities); err != nil {
			fatal(err)
		}

	case *serveAddr != "":
		logger.Info("serving report API", "addr", *serveAddr)
		if err := http.ListenAndServe(*serveAddr, server.New(logger).Handler()); err != nil {
			fatal(err)
		}

	case *filePath != "" || *dirPath != "":
		if err := runProcess(*filePath, *dirPath, *configPath, *rename, logger); err != nil {
			fatal(err)
		}

	default:
		flag.Usage()
		os.Exit(2)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

func runProcess(filePath, dirPath, configPath string, rename bool, logger *slog.Logger) error {
	slogger := logger.With("component", "processor")

	if configPath == "" {
		configPath = config.LoadEnv()
	}

	profile, err := config.Load(configPath, slogger)
	if err != nil {
		slogger.Warn("could not load config, using defaults", "error", err)
		profile = config.DefaultProfile()
	}

	proc, err := processor.New(profile, slogger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	printResult := func(res *processor.FileResult) {
		fmt.Fprintf(w, "%s\t%s\t%.0f kcal\t%.0f bpm avg\t%.1f min\t%d intervals\tquality %.2f\n",
			res.Path,
			res.Metadata.Sport,
			res.Calories.TotalCalories,
			res.Calories.AverageHeartRate,
			res.Calories.DurationMinutes,
			res.Calories.IntervalsProcessed,
			res.Quality.QualityScore,
		)
		for _, warning := range res.Quality.Warnings {
			fmt.Fprintf(w, "\twarning: %s\n", warning)
		}
	}

	maybeRename := func(res *processor.FileResult) {
		if !rename {
			return
		}
		if _, err := processor.RenameByMetadata(res.Path, res.Metadata, slogger); err != nil {
			if errors.Is(err, processor.ErrNoStartTime) {
				slogger.Warn("skipping rename", "error", err)
				return
			}
			slogger.Error("rename failed", "error", err)
		}
	}

	if filePath != "" {
		res, err := proc.ProcessFile(ctx, filePath)
		if err != nil {
			return err
		}
		printResult(res)
		maybeRename(res)
		return nil
	}

	batch, err := proc.ProcessDirectory(ctx, dirPath)
	if err != nil {
		return err
	}
	for i := range batch.Results {
		printResult(&batch.Results[i])
		maybeRename(&batch.Results[i])
	}
	for _, failure := range batch.Failures {
		fmt.Fprintf(w, "%s\tFAILED\t%v\n", failure.Path, failure.Err)
	}
	fmt.Fprintf(w, "\n%d succeeded, %d failed\n", batch.Succeeded(), batch.Failed())
	return nil
}

func runZones(age, resting, maxHR float64, intensityList string) error {
	var measured *float64
	if maxHR > 0 {
		measured = &maxHR
	}

	var fractions []float64
	for _, part := range strings.Split(intensityList, ",") {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return fmt.Errorf("invalid intensity %q: %w", part, err)
		}
		fractions = append(fractions, f)
	}

	zones, err := formula.KarvonenZones(age, resting, fractions, measured)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "Zone\tLower (bpm)\tUpper (bpm)")
	for _, zone := range zones {
		fmt.Fprintf(w, "%s\t%.0f\t%.0f\n", zone.Label, zone.Lower, zone.Upper)
	}
	return nil
}
