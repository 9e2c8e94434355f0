// Package validation performs range checks on the physiological inputs of the
// calorie pipeline. All failures are reported as *Error carrying the field name
// and the offending value, so callers can surface exactly what was rejected.
package validation

import (
	"fmt"
	"strings"
)

// Error is a typed validation failure. It is never retried; the value that failed
// is attached for the caller to report.
type Error struct {
	Field  string
	Value  any
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s (got %v)", e.Field, e.Reason, e.Value)
}

// HeartRate validates a heart rate in bpm. Physiological maximum is 250.
func HeartRate(hr float64) (float64, error) {
	if hr <= 0 {
		return 0, &Error{Field: "heart_rate", Value: hr, Reason: "must be positive"}
	}
	if hr > 250 {
		return 0, &Error{Field: "heart_rate", Value: hr, Reason: "exceeds physiological maximum (250 bpm)"}
	}
	return hr, nil
}

// Weight validates a weight in kg.
func Weight(weight float64) (float64, error) {
	if weight <= 0 {
		return 0, &Error{Field: "weight", Value: weight, Reason: "must be positive"}
	}
	if weight > 500 {
		return 0, &Error{Field: "weight", Value: weight, Reason: "exceeds reasonable maximum (500 kg)"}
	}
	return weight, nil
}

// Age validates an age in years.
func Age(age float64) (float64, error) {
	if age <= 0 {
		return 0, &Error{Field: "age", Value: age, Reason: "must be positive"}
	}
	if age > 130 {
		return 0, &Error{Field: "age", Value: age, Reason: "exceeds reasonable maximum (130 years)"}
	}
	return age, nil
}

// KcalPerMin validates an energy expenditure rate in kcal/min.
func KcalPerMin(kcal float64) (float64, error) {
	if kcal < 0 {
		return 0, &Error{Field: "kcal_per_min", Value: kcal, Reason: "cannot be negative"}
	}
	if kcal > 100 {
		return 0, &Error{Field: "kcal_per_min", Value: kcal, Reason: "exceeds reasonable maximum (100 kcal/min)"}
	}
	return kcal, nil
}

// Gender validates and normalizes a gender string to "male" or "female".
func Gender(gender string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(gender))
	if normalized != "male" && normalized != "female" {
		return "", &Error{Field: "gender", Value: gender, Reason: `must be "male" or "female"`}
	}
	return normalized, nil
}

// Inputs holds the optional fields of a cardio calculation. A nil field means the
// value is unknown, which supports the exactly-one-unknown solving flow.
type Inputs struct {
	HeartRate  *float64
	Weight     *float64
	Age        *float64
	KcalPerMin *float64
	Gender     *string
}

// CalculationInputs validates only the fields of in that are set and returns a
// copy with normalized values. Unset fields stay nil in the result.
func CalculationInputs(in Inputs) (Inputs, error) {
	var out Inputs

	if in.HeartRate != nil {
		hr, err := HeartRate(*in.HeartRate)
		if err != nil {
			return Inputs{}, err
		}
		out.HeartRate = &hr
	}
	if in.Weight != nil {
		w, err := Weight(*in.Weight)
		if err != nil {
			return Inputs{}, err
		}
		out.Weight = &w
	}
	if in.Age != nil {
		a, err := Age(*in.Age)
		if err != nil {
			return Inputs{}, err
		}
		out.Age = &a
	}
	if in.KcalPerMin != nil {
		k, err := KcalPerMin(*in.KcalPerMin)
		if err != nil {
			return Inputs{}, err
		}
		out.KcalPerMin = &k
	}
	if in.Gender != nil {
		g, err := Gender(*in.Gender)
		if err != nil {
			return Inputs{}, err
		}
		out.Gender = &g
	}

	return out, nil
}
