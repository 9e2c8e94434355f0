// Package timeseries converts raw activity records into a validated heart-rate
// time series and integrates it into a calorie total. It also computes
// data-quality diagnostics over the same series.
package timeseries

import (
	"errors"
	"log/slog"
	"time"

	"github.com/fitburn/fitburn/pkg/domain/validation"
)

// ErrMissingData reports that a record source yielded zero usable samples. It is
// fatal for the file it came from but must not abort a batch.
var ErrMissingData = errors.New("no valid heart rate data found")

// Sample is one validated (timestamp, heart rate) observation. Samples are value
// objects and never mutated after construction.
type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	HeartRate float64   `json:"heart_rate"`
}

// Field is one named value inside a record.
type Field struct {
	Name  string
	Value any
}

// Record is the narrow contract every record source must satisfy: a record is a
// sequence of named fields. Real FIT files and test doubles both implement it.
type Record interface {
	Fields() []Field
}

// RecordSource yields the records of one activity.
type RecordSource interface {
	Records() []Record
}

// Profile holds the physiological parameters of one integration run. It is
// treated as immutable once constructed.
type Profile struct {
	WeightKg float64 `json:"weight_kg"`
	AgeYears float64 `json:"age_years"`
	Gender   string  `json:"gender"`
}

// Validate range-checks all profile fields and returns the profile with the
// gender normalized.
func (p Profile) Validate() (Profile, error) {
	weight, err := validation.Weight(p.WeightKg)
	if err != nil {
		return Profile{}, err
	}
	age, err := validation.Age(p.AgeYears)
	if err != nil {
		return Profile{}, err
	}
	gender, err := validation.Gender(p.Gender)
	if err != nil {
		return Profile{}, err
	}
	return Profile{WeightKg: weight, AgeYears: age, Gender: gender}, nil
}

// ValidateSeries checks a sample sequence: it must be non-empty, every timestamp
// must be set and every heart rate must pass the scalar validator. Out-of-order
// and duplicate timestamps are logged as warnings, not errors, since the
// extractor sorts and the integrator skips such intervals anyway.
func ValidateSeries(samples []Sample, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if len(samples) == 0 {
		return &validation.Error{Field: "heart_rate_data", Value: len(samples), Reason: "cannot be empty"}
	}

	for i, s := range samples {
		if s.Timestamp.IsZero() {
			return &validation.Error{Field: "timestamp", Value: i, Reason: "sample has no timestamp"}
		}
		if _, err := validation.HeartRate(s.HeartRate); err != nil {
			return err
		}
	}

	ordered := true
	seen := make(map[int64]struct{}, len(samples))
	duplicates := false
	for i, s := range samples {
		if i > 0 && s.Timestamp.Before(samples[i-1].Timestamp) {
			ordered = false
		}
		key := s.Timestamp.UnixNano()
		if _, ok := seen[key]; ok {
			duplicates = true
		}
		seen[key] = struct{}{}
	}
	if !ordered {
		logger.Warn("heart rate data is not in chronological order")
	}
	if duplicates {
		logger.Warn("heart rate data contains duplicate timestamps")
	}

	return nil
}
