// Package processor drives the per-file pipeline: open a FIT file, extract the
// heart-rate series, validate it, integrate calories and audit data quality.
// Each file is processed to completion before the next; failures are isolated
// per file so a batch never aborts on one bad input.
package processor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/fitburn/fitburn/pkg/bootstrap"
	"github.com/fitburn/fitburn/pkg/domain/fitfile"
	"github.com/fitburn/fitburn/pkg/domain/timeseries"
)

// FileResult is the outcome of one successfully processed FIT file.
type FileResult struct {
	Path     string                    `json:"path"`
	Metadata fitfile.Metadata          `json:"metadata"`
	Calories *timeseries.CalorieResult `json:"calories"`
	Quality  *timeseries.QualityReport `json:"quality"`
}

// FileFailure records why one file of a batch could not be processed.
type FileFailure struct {
	Path string `json:"path"`
	Err  error  `json:"-"`
}

// BatchResult aggregates a directory run.
type BatchResult struct {
	Results  []FileResult  `json:"results"`
	Failures []FileFailure `json:"failures"`
}

// Succeeded returns the number of files processed without error.
func (b *BatchResult) Succeeded() int { return len(b.Results) }

// Failed returns the number of files that could not be processed.
func (b *BatchResult) Failed() int { return len(b.Failures) }

// Processor runs the pipeline with a fixed profile and logger.
type Processor struct {
	Profile timeseries.Profile
	Logger  *slog.Logger
}

// New validates the profile once up front and returns a Processor for it.
func New(profile timeseries.Profile, logger *slog.Logger) (*Processor, error) {
	if logger == nil {
		logger = slog.Default()
	}

	validated, err := profile.Validate()
	if err != nil {
		return nil, err
	}

	return &Processor{Profile: validated, Logger: logger}, nil
}

// ProcessFile runs the full pipeline over a single FIT file. Every run gets an
// execution ID so its log lines can be correlated.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*FileResult, error) {
	logger := p.Logger.With("execution_id", uuid.NewString(), "file", path)
	logger.Info("processing FIT file")

	f, err := fitfile.Open(path)
	if err != nil {
		logger.Error("failed to open FIT file", "error", err)
		bootstrap.CaptureException(err, map[string]any{"file": path}, logger)
		return nil, err
	}

	samples, err := timeseries.ExtractHeartRateSeries(f, logger)
	if err != nil {
		logger.Error("failed to extract heart rate data", "error", err)
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := timeseries.ValidateSeries(samples, logger); err != nil {
		logger.Error("heart rate data failed validation", "error", err)
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	calories, err := timeseries.Integrate(samples, p.Profile, logger)
	if err != nil {
		logger.Error("calorie integration failed", "error", err)
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	quality, err := timeseries.Audit(samples, timeseries.AuditOptions{})
	if err != nil {
		logger.Error("quality audit failed", "error", err)
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Info("processed FIT file",
		"total_calories", calories.TotalCalories,
		"average_heart_rate", calories.AverageHeartRate,
		"duration_minutes", calories.DurationMinutes,
		"intervals_processed", calories.IntervalsProcessed,
		"quality_score", quality.QualityScore,
	)

	return &FileResult{
		Path:     path,
		Metadata: f.Metadata(),
		Calories: calories,
		Quality:  quality,
	}, nil
}

// ProcessDirectory processes every *.fit file directly under dir, in name
// order. Per-file errors are collected, not propagated: a missing-data or
// corrupt file never aborts the batch.
func (p *Processor) ProcessDirectory(ctx context.Context, dir string) (*BatchResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".fit") {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	batch := &BatchResult{}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return batch, err
		}

		result, err := p.ProcessFile(ctx, path)
		if err != nil {
			batch.Failures = append(batch.Failures, FileFailure{Path: path, Err: err})
			continue
		}
		batch.Results = append(batch.Results, *result)
	}

	p.Logger.Info("batch complete",
		"directory", dir,
		"succeeded", batch.Succeeded(),
		"failed", batch.Failed(),
	)

	return batch, nil
}
