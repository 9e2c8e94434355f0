package formula

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKcalPerMinute_KnownValues(t *testing.T) {
	// 150 bpm, 70 kg, 30 y male: (-55.0969 + 94.635 + 13.916 + 6.051) / 4.184
	require.InDelta(t, 14.22, KcalPerMinute(150, 70, 30, "male"), 0.01)

	// All-zero inputs expose the raw base coefficient.
	require.InDelta(t, -13.17, KcalPerMinute(0, 0, 0, "male"), 0.01)
}

func TestKcalPerMinute_FemaleCoefficients(t *testing.T) {
	got := KcalPerMinute(150, 60, 28, "female")
	want := (-20.4022 + 0.4472*150 - 0.1263*60 + 0.074*28) / 4.184
	require.InDelta(t, want, got, 1e-9)
}

func TestCalories_ScalesWithDuration(t *testing.T) {
	perMin := KcalPerMinute(140, 70, 30, "male")
	require.InDelta(t, perMin*45, Calories(140, 45, 70, 30, "male"), 1e-9)
}

func TestSolve_RoundTrips(t *testing.T) {
	for _, gender := range []string{"male", "female"} {
		const (
			hr     = 152.0
			weight = 71.5
			age    = 34.0
		)
		kcal := KcalPerMinute(hr, weight, age, gender)

		require.InDelta(t, hr, SolveHeartRate(kcal, weight, age, gender), 1e-9, "heart rate round trip (%s)", gender)
		require.InDelta(t, weight, SolveWeight(kcal, hr, age, gender), 1e-9, "weight round trip (%s)", gender)
		require.InDelta(t, age, SolveAge(kcal, hr, weight, gender), 1e-9, "age round trip (%s)", gender)
	}
}

func TestCoefficientsFor_Normalization(t *testing.T) {
	require.Equal(t, FemaleCoefficients, CoefficientsFor("  Female "))
	require.Equal(t, MaleCoefficients, CoefficientsFor("MALE"))
	// Anything not exactly "female" falls back to male; callers validate first.
	require.Equal(t, MaleCoefficients, CoefficientsFor("unknown"))
}
