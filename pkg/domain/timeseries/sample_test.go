package timeseries

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/fitburn/fitburn/pkg/domain/validation"
)

func TestValidateSeries_Valid(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	if err := ValidateSeries(minuteSeries(t0, 100, 110), quietLogger()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateSeries_Failures(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	var verr *validation.Error

	if err := ValidateSeries(nil, quietLogger()); !errors.As(err, &verr) {
		t.Errorf("expected validation error for empty series, got %v", err)
	}

	err := ValidateSeries([]Sample{{Timestamp: t0, HeartRate: 300}}, quietLogger())
	if !errors.As(err, &verr) {
		t.Errorf("expected validation error for out-of-range heart rate, got %v", err)
	}

	err = ValidateSeries([]Sample{{HeartRate: 100}}, quietLogger())
	if !errors.As(err, &verr) {
		t.Errorf("expected validation error for zero timestamp, got %v", err)
	}
}

// Disorder and duplicate timestamps are warnings, never hard errors: the
// extractor sorts and the integrator skips those intervals.
func TestValidateSeries_DisorderAndDuplicatesWarnOnly(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	samples := []Sample{
		{Timestamp: t0.Add(time.Minute), HeartRate: 110},
		{Timestamp: t0, HeartRate: 100},
		{Timestamp: t0, HeartRate: 102},
	}

	if err := ValidateSeries(samples, logger); err != nil {
		t.Fatalf("expected warnings only, got error: %v", err)
	}

	logged := buf.String()
	if !strings.Contains(logged, "chronological") {
		t.Error("expected a chronological-order warning")
	}
	if !strings.Contains(logged, "duplicate") {
		t.Error("expected a duplicate-timestamp warning")
	}
}
