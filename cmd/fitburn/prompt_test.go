package main

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func runWithInput(input string) string {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	runCalculator(strings.NewReader(input), &out, logger)
	return out.String()
}

func TestRunCalculator_SolvesKcalPerMinute(t *testing.T) {
	// heart rate, weight, age given; kcal/min blank; gender male
	out := runWithInput("150\n70\n30\n\nmale\n")

	if !strings.Contains(out, "Calculated kcal per minute: 14.22") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRunCalculator_SolvesHeartRate(t *testing.T) {
	// heart rate blank; weight, age, kcal/min given; gender defaulted
	out := runWithInput("\n70\n30\n12.5\n\n")

	if !strings.Contains(out, "Calculated heart rate:") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRunCalculator_TwoMissingValues(t *testing.T) {
	out := runWithInput("\n\n30\n12.5\nmale\n")

	if !strings.Contains(out, "Exactly one value must be missing") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRunCalculator_NothingMissing(t *testing.T) {
	out := runWithInput("150\n70\n30\n12.5\nmale\n")

	if !strings.Contains(out, "Exactly one value must be missing") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRunCalculator_InvalidGenderFallsBack(t *testing.T) {
	out := runWithInput("150\n70\n30\n\nrobot\n")

	if !strings.Contains(out, `Using default "male"`) {
		t.Errorf("expected gender fallback warning, got:\n%s", out)
	}
	if !strings.Contains(out, "Calculated kcal per minute: 14.22") {
		t.Errorf("expected calculation to proceed, got:\n%s", out)
	}
}

func TestRunCalculator_OutOfRangeInput(t *testing.T) {
	// heart rate 300 exceeds the valid range
	out := runWithInput("300\n70\n30\n\nmale\n")

	if !strings.Contains(out, "Error:") {
		t.Errorf("expected validation error, got:\n%s", out)
	}
}

func TestRunCalculator_RetriesOnGarbage(t *testing.T) {
	// first heart rate entry does not parse, second does
	out := runWithInput("abc\n150\n70\n30\n\nmale\n")

	if !strings.Contains(out, "Please enter a valid number") {
		t.Errorf("expected reprompt message, got:\n%s", out)
	}
	if !strings.Contains(out, "Calculated kcal per minute: 14.22") {
		t.Errorf("expected calculation after retry, got:\n%s", out)
	}
}
