package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/fitburn/fitburn/pkg/domain/formula"
	"github.com/fitburn/fitburn/pkg/domain/validation"
)

// runCalculator prompts for heart rate, weight, age and kcal/min, expects
// exactly one of them to be left blank, and solves the Keytel equation for it.
func runCalculator(in io.Reader, out io.Writer, logger *slog.Logger) {
	reader := bufio.NewReader(in)

	fmt.Fprintln(out, "Enter values for the following variables. Leave one blank (press Enter) if unknown.")

	heartRate := promptFloat(reader, out, "Heart rate: ")
	weight := promptFloat(reader, out, "Weight (in kg): ")
	age := promptFloat(reader, out, "Age (in years): ")
	kcalPerMin := promptFloat(reader, out, "Kcal per minute: ")

	gender := promptLine(reader, out, "Gender (male/female, default: male): ")
	if gender == "" {
		gender = "male"
	}
	gender, err := validation.Gender(gender)
	if err != nil {
		fmt.Fprintf(out, "Warning: %v. Using default %q.\n", err, "male")
		gender = "male"
	}

	inputs := validation.Inputs{
		HeartRate:  heartRate,
		Weight:     weight,
		Age:        age,
		KcalPerMin: kcalPerMin,
		Gender:     &gender,
	}
	if _, err := validation.CalculationInputs(inputs); err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}

	missing := missingFields(inputs)
	if len(missing) != 1 {
		fmt.Fprintln(out, "Error: Exactly one value must be missing.")
		return
	}

	logger.Info("solving for missing variable", "variable", missing[0])

	switch missing[0] {
	case "kcal_per_min":
		result := formula.KcalPerMinute(*inputs.HeartRate, *inputs.Weight, *inputs.Age, gender)
		fmt.Fprintf(out, "Calculated kcal per minute: %.4f\n", result)
	case "heart_rate":
		result := formula.SolveHeartRate(*inputs.KcalPerMin, *inputs.Weight, *inputs.Age, gender)
		fmt.Fprintf(out, "Calculated heart rate: %.4f\n", result)
	case "weight":
		result := formula.SolveWeight(*inputs.KcalPerMin, *inputs.HeartRate, *inputs.Age, gender)
		fmt.Fprintf(out, "Calculated weight (kg): %.4f\n", result)
	case "age":
		result := formula.SolveAge(*inputs.KcalPerMin, *inputs.HeartRate, *inputs.Weight, gender)
		fmt.Fprintf(out, "Calculated age (years): %.4f\n", result)
	}
}

// missingFields lists the unset solvable fields, gender excluded.
func missingFields(in validation.Inputs) []string {
	var missing []string
	if in.HeartRate == nil {
		missing = append(missing, "heart_rate")
	}
	if in.Weight == nil {
		missing = append(missing, "weight")
	}
	if in.Age == nil {
		missing = append(missing, "age")
	}
	if in.KcalPerMin == nil {
		missing = append(missing, "kcal_per_min")
	}
	return missing
}

// promptFloat asks for a number until one parses or the input is left blank.
func promptFloat(reader *bufio.Reader, out io.Writer, prompt string) *float64 {
	for {
		line := promptLine(reader, out, prompt)
		if line == "" {
			return nil
		}
		value, err := strconv.ParseFloat(line, 64)
		if err != nil {
			fmt.Fprintln(out, "Please enter a valid number or leave blank.")
			continue
		}
		return &value
	}
}

func promptLine(reader *bufio.Reader, out io.Writer, prompt string) string {
	fmt.Fprint(out, prompt)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}
