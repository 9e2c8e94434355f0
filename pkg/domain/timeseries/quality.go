package timeseries

import (
	"fmt"
	"sort"
	"time"

	"github.com/fitburn/fitburn/pkg/domain/validation"
)

// flatRunThreshold is the number of consecutive identical heart-rate readings
// that counts as a suspected stuck sensor.
const flatRunThreshold = 10

// GapEvent records a pair of consecutive samples further apart than the
// configured maximum.
type GapEvent struct {
	Start      time.Time `json:"start_time"`
	End        time.Time `json:"end_time"`
	GapMinutes float64   `json:"gap_minutes"`
}

// FlatRun records a maximal run of identical heart-rate readings.
type FlatRun struct {
	HeartRate float64   `json:"heart_rate"`
	Start     time.Time `json:"start_time"`
	End       time.Time `json:"end_time"`
	Count     int       `json:"count"`
}

// HeartRateStats summarizes the heart-rate values of a series.
type HeartRateStats struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
	Range   float64 `json:"range"`
}

// QualityReport holds the data-quality diagnostics for one sample series. It is
// derived entirely from the series and recomputed on demand.
type QualityReport struct {
	DataPoints             int            `json:"data_points"`
	TotalDurationMinutes   float64        `json:"total_duration_minutes"`
	AverageIntervalMinutes float64        `json:"average_interval_minutes"`
	HeartRateStats         HeartRateStats `json:"heart_rate_stats"`
	LargeGaps              []GapEvent     `json:"large_gaps"`
	FlatPeriods            []FlatRun      `json:"flat_periods"`
	Warnings               []string       `json:"warnings"`
	QualityScore           float64        `json:"quality_score"`
}

// AuditOptions tunes the quality audit. Zero values select the defaults.
type AuditOptions struct {
	MinDataPoints int     // default 2
	MaxGapMinutes float64 // default 60
}

func (o AuditOptions) withDefaults() AuditOptions {
	if o.MinDataPoints == 0 {
		o.MinDataPoints = 2
	}
	if o.MaxGapMinutes == 0 {
		o.MaxGapMinutes = 60.0
	}
	return o
}

// Audit computes quality diagnostics over a sample series, independent of
// calorie computation. It fails only when fewer than MinDataPoints samples are
// supplied; everything else is reported as warnings and score penalties.
func Audit(samples []Sample, opts AuditOptions) (*QualityReport, error) {
	opts = opts.withDefaults()

	if len(samples) < opts.MinDataPoints {
		return nil, &validation.Error{
			Field:  "heart_rate_data",
			Value:  len(samples),
			Reason: fmt.Sprintf("at least %d data points are required", opts.MinDataPoints),
		}
	}

	sorted := make([]Sample, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	totalDuration := sorted[len(sorted)-1].Timestamp.Sub(sorted[0].Timestamp).Minutes()
	avgInterval := totalDuration / float64(len(sorted)-1)

	var gaps []GapEvent
	for i := 1; i < len(sorted); i++ {
		gapMinutes := sorted[i].Timestamp.Sub(sorted[i-1].Timestamp).Minutes()
		if gapMinutes > opts.MaxGapMinutes {
			gaps = append(gaps, GapEvent{
				Start:      sorted[i-1].Timestamp,
				End:        sorted[i].Timestamp,
				GapMinutes: gapMinutes,
			})
		}
	}

	stats := heartRateStats(sorted)

	var warnings []string
	if stats.Min < 40 {
		warnings = append(warnings, fmt.Sprintf("very low minimum heart rate: %g bpm", stats.Min))
	}
	if stats.Max > 220 {
		warnings = append(warnings, fmt.Sprintf("very high maximum heart rate: %g bpm", stats.Max))
	}
	if stats.Range > 150 {
		warnings = append(warnings, fmt.Sprintf("very large heart rate range: %g bpm", stats.Range))
	}
	if len(gaps) > 0 {
		warnings = append(warnings, fmt.Sprintf("found %d large gaps (>%g min) in data", len(gaps), opts.MaxGapMinutes))
	}

	flats := flatRuns(sorted)
	if len(flats) > 0 {
		warnings = append(warnings, fmt.Sprintf("found %d potential flat-line periods", len(flats)))
	}

	return &QualityReport{
		DataPoints:             len(sorted),
		TotalDurationMinutes:   totalDuration,
		AverageIntervalMinutes: avgInterval,
		HeartRateStats:         stats,
		LargeGaps:              gaps,
		FlatPeriods:            flats,
		Warnings:               warnings,
		QualityScore:           qualityScore(len(sorted), totalDuration, len(gaps), len(warnings)),
	}, nil
}

func heartRateStats(samples []Sample) HeartRateStats {
	minHR, maxHR := samples[0].HeartRate, samples[0].HeartRate
	var sum float64
	for _, s := range samples {
		if s.HeartRate < minHR {
			minHR = s.HeartRate
		}
		if s.HeartRate > maxHR {
			maxHR = s.HeartRate
		}
		sum += s.HeartRate
	}
	return HeartRateStats{
		Min:     minHR,
		Max:     maxHR,
		Average: sum / float64(len(samples)),
		Range:   maxHR - minHR,
	}
}

// flatRuns finds maximal runs of flatRunThreshold or more consecutive samples
// sharing an identical heart-rate value. A run that continues to the end of the
// series is closed at the final sample.
func flatRuns(samples []Sample) []FlatRun {
	var runs []FlatRun

	runStart := 0
	for i := 1; i <= len(samples); i++ {
		if i < len(samples) && samples[i].HeartRate == samples[runStart].HeartRate {
			continue
		}
		if count := i - runStart; count >= flatRunThreshold {
			runs = append(runs, FlatRun{
				HeartRate: samples[runStart].HeartRate,
				Start:     samples[runStart].Timestamp,
				End:       samples[i-1].Timestamp,
				Count:     count,
			})
		}
		runStart = i
	}

	return runs
}

// qualityScore starts at 1.0 and applies capped penalties for sparse sampling,
// gap count and warning count. The result is clamped to [0, 1].
func qualityScore(dataPoints int, durationMinutes float64, gapCount, warningCount int) float64 {
	score := 1.0

	if durationMinutes > 0 {
		density := float64(dataPoints) / durationMinutes
		if density < 0.5 {
			score -= 0.2
		} else if density < 1.0 {
			score -= 0.1
		}
	}

	score -= min(0.3, float64(gapCount)*0.1)
	score -= min(0.3, float64(warningCount)*0.05)

	return max(0.0, min(1.0, score))
}
