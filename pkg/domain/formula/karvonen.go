package formula

import (
	"fmt"
	"math"
	"sort"
)

// Zone is one target heart-rate training zone. Label carries the intensity span,
// e.g. "50%-60%"; bounds are in bpm, rounded to the nearest beat.
type Zone struct {
	Label string  `json:"label"`
	Lower float64 `json:"lower_bpm"`
	Upper float64 `json:"upper_bpm"`
}

// KarvonenZones computes target heart-rate zones from age, resting heart rate and
// a list of intensity fractions (each in [0,1], treated as zone lower bounds).
// When measuredMax is nil, maximum heart rate is estimated with the Tanaka,
// Monahan & Seals formula 208 - 0.7*age. Intensities are sorted and deduplicated;
// the topmost zone's upper bound is pegged to 100% intensity.
func KarvonenZones(age, restingHR float64, intensities []float64, measuredMax *float64) ([]Zone, error) {
	if age <= 0 {
		return nil, fmt.Errorf("age must be positive, got %v", age)
	}
	if restingHR <= 0 {
		return nil, fmt.Errorf("resting heart rate must be positive, got %v", restingHR)
	}
	if len(intensities) == 0 {
		return nil, fmt.Errorf("at least one intensity fraction is required")
	}
	for _, in := range intensities {
		if in < 0 || in > 1 {
			return nil, fmt.Errorf("intensity fraction must be between 0 and 1, got %v", in)
		}
	}
	if measuredMax != nil && *measuredMax <= 0 {
		return nil, fmt.Errorf("max heart rate must be positive, got %v", *measuredMax)
	}

	mhr := 208 - 0.7*age
	if measuredMax != nil {
		mhr = *measuredMax
	}

	hrr := mhr - restingHR
	if hrr < 0 {
		return nil, fmt.Errorf("max heart rate %.0f is below resting heart rate %.0f", mhr, restingHR)
	}

	sorted := dedupSorted(intensities)

	zones := make([]Zone, 0, len(sorted))
	for i, intensity := range sorted {
		next := 1.0
		if i < len(sorted)-1 {
			next = sorted[i+1]
		}

		lower := math.Round(hrr*intensity + restingHR)
		upper := math.Round(hrr*next + restingHR)
		if lower > upper {
			lower, upper = upper, lower
		}

		zones = append(zones, Zone{
			Label: fmt.Sprintf("%d%%-%d%%", int(intensity*100), int(next*100)),
			Lower: lower,
			Upper: upper,
		})
	}

	return zones, nil
}

func dedupSorted(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)

	n := 0
	for i, v := range out {
		if i == 0 || v != out[n-1] {
			out[n] = v
			n++
		}
	}
	return out[:n]
}
