// Package formula implements the Keytel et al. energy-expenditure model and the
// Karvonen target heart-rate zone calculation. All functions are pure.
package formula

import "strings"

// Coefficients holds one sex-specific coefficient set for the Keytel regression.
type Coefficients struct {
	Base       float64
	HRCoef     float64
	WeightCoef float64
	AgeCoef    float64
	Conversion float64 // joules-to-kcal divisor
}

// Keytel et al. (2005) regression coefficients. The conversion factor 4.184
// converts the kJ/min estimate to kcal/min.
var (
	MaleCoefficients = Coefficients{
		Base:       -55.0969,
		HRCoef:     0.6309,
		WeightCoef: 0.1988,
		AgeCoef:    0.2017,
		Conversion: 4.184,
	}
	FemaleCoefficients = Coefficients{
		Base:       -20.4022,
		HRCoef:     0.4472,
		WeightCoef: -0.1263,
		AgeCoef:    0.074,
		Conversion: 4.184,
	}
)

// CoefficientsFor selects the coefficient set for a gender string. The string is
// case-folded; anything that is not exactly "female" selects the male set. Callers
// are expected to have validated gender already and must not rely on the fallback.
func CoefficientsFor(gender string) Coefficients {
	if strings.ToLower(strings.TrimSpace(gender)) == "female" {
		return FemaleCoefficients
	}
	return MaleCoefficients
}

// KcalPerMinute estimates energy expenditure in kcal/min for a heart rate in bpm,
// weight in kg and age in years.
func KcalPerMinute(hr, weight, age float64, gender string) float64 {
	c := CoefficientsFor(gender)
	return (c.Base + c.HRCoef*hr + c.WeightCoef*weight + c.AgeCoef*age) / c.Conversion
}

// Calories estimates total kcal burned over an interval of the given length.
func Calories(hr, durationMinutes, weight, age float64, gender string) float64 {
	return KcalPerMinute(hr, weight, age, gender) * durationMinutes
}

// SolveHeartRate isolates heart rate from the Keytel equation given a target
// kcal/min. The HR coefficient is a non-zero compile-time constant for both
// defined sets; anyone adding a coefficient set must keep it non-zero.
func SolveHeartRate(kcalPerMin, weight, age float64, gender string) float64 {
	c := CoefficientsFor(gender)
	return (c.Conversion*kcalPerMin - c.Base - c.WeightCoef*weight - c.AgeCoef*age) / c.HRCoef
}

// SolveWeight isolates weight from the Keytel equation given a target kcal/min.
func SolveWeight(kcalPerMin, hr, age float64, gender string) float64 {
	c := CoefficientsFor(gender)
	return (c.Conversion*kcalPerMin - c.Base - c.HRCoef*hr - c.AgeCoef*age) / c.WeightCoef
}

// SolveAge isolates age from the Keytel equation given a target kcal/min.
func SolveAge(kcalPerMin, hr, weight float64, gender string) float64 {
	c := CoefficientsFor(gender)
	return (c.Conversion*kcalPerMin - c.Base - c.HRCoef*hr - c.WeightCoef*weight) / c.AgeCoef
}
