package timeseries

import (
	"log/slog"

	"github.com/fitburn/fitburn/pkg/domain/formula"
	"github.com/fitburn/fitburn/pkg/domain/validation"
)

// minIntervalMinutes is the shortest interval that contributes calories.
// Sub-second gaps are numerically unstable and contribute negligible energy.
const minIntervalMinutes = 0.01

// CalorieResult is the outcome of one integration run. A fresh instance is
// produced per processed file and never mutated afterwards.
type CalorieResult struct {
	TotalCalories float64 `json:"total_calories"`
	// AverageHeartRate is the mean over ALL samples, including those whose
	// intervals were skipped. TotalCalories and IntervalsProcessed cover only
	// valid intervals. The asymmetry is deliberate: the average reflects raw
	// sensor readings, calories reflect only usable time spans.
	AverageHeartRate   float64 `json:"average_heart_rate"`
	DurationMinutes    float64 `json:"duration_minutes"`
	IntervalsProcessed int     `json:"intervals_processed"`
	Profile            Profile `json:"profile"`
}

// Integrate walks the sorted sample sequence pairwise and accumulates calories
// per interval with the Keytel formula. Anomalous intervals are skipped, never
// fatal: real device data contains clock jitter and duplicate ticks, and failing
// the whole file on one bad interval would be too brittle.
//
// The profile is re-validated here even though callers are expected to have done
// so already.
func Integrate(samples []Sample, profile Profile, logger *slog.Logger) (*CalorieResult, error) {
	if logger == nil {
		logger = slog.Default()
	}

	profile, err := profile.Validate()
	if err != nil {
		return nil, err
	}
	if err := ValidateSeries(samples, logger); err != nil {
		return nil, err
	}
	if len(samples) < 2 {
		return nil, &validation.Error{
			Field:  "heart_rate_data",
			Value:  len(samples),
			Reason: "at least two data points are required",
		}
	}

	var totalCalories float64
	intervals := 0

	for i := 1; i < len(samples); i++ {
		prev, curr := samples[i-1], samples[i]

		if !curr.Timestamp.After(prev.Timestamp) {
			logger.Warn("skipping non-monotonic interval",
				"prev", prev.Timestamp,
				"curr", curr.Timestamp,
			)
			continue
		}

		deltaMinutes := curr.Timestamp.Sub(prev.Timestamp).Minutes()
		if deltaMinutes < minIntervalMinutes {
			logger.Debug("skipping sub-second interval", "delta_minutes", deltaMinutes)
			continue
		}

		avgHR := (prev.HeartRate + curr.HeartRate) / 2
		if avgHR <= 0 || avgHR > 250 {
			logger.Warn("skipping interval with implausible average heart rate", "avg_hr", avgHR)
			continue
		}

		totalCalories += formula.Calories(avgHR, deltaMinutes, profile.WeightKg, profile.AgeYears, profile.Gender)
		intervals++
	}

	var hrSum float64
	for _, s := range samples {
		hrSum += s.HeartRate
	}

	return &CalorieResult{
		TotalCalories:      totalCalories,
		AverageHeartRate:   hrSum / float64(len(samples)),
		DurationMinutes:    samples[len(samples)-1].Timestamp.Sub(samples[0].Timestamp).Minutes(),
		IntervalsProcessed: intervals,
		Profile:            profile,
	}, nil
}
