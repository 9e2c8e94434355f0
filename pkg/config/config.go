// Package config loads the user's physiological profile from a JSON config
// file, applying defaults for anything absent or out of range. The defaults
// live here, not in the domain packages: the core only ever sees a profile it
// can validate strictly.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/fitburn/fitburn/pkg/domain/timeseries"
)

// Defaults applied when a config value is missing or invalid.
const (
	DefaultWeightKg = 70.0
	DefaultAgeYears = 30.0
	DefaultGender   = "male"
)

// DefaultPath is used when no config path is given and FITBURN_CONFIG is unset.
const DefaultPath = "config.json"

// LoadEnv loads a .env file if one exists, then returns the config file path
// from FITBURN_CONFIG or the default. Missing .env is not an error.
func LoadEnv() string {
	_ = godotenv.Load()

	if path := os.Getenv("FITBURN_CONFIG"); path != "" {
		return path
	}
	return DefaultPath
}

type rawConfig struct {
	WeightKg *float64 `json:"weight_kg"`
	AgeYears *float64 `json:"age_years"`
	Gender   *string  `json:"gender"`
}

// Load reads the profile config at path. Missing or invalid values fall back to
// the defaults with a warning; only an unreadable or syntactically broken file
// is an error.
func Load(path string, logger *slog.Logger) (timeseries.Profile, error) {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return timeseries.Profile{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return timeseries.Profile{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	return profileFrom(raw, logger), nil
}

// DefaultProfile returns the built-in fallback profile.
func DefaultProfile() timeseries.Profile {
	return timeseries.Profile{
		WeightKg: DefaultWeightKg,
		AgeYears: DefaultAgeYears,
		Gender:   DefaultGender,
	}
}

func profileFrom(raw rawConfig, logger *slog.Logger) timeseries.Profile {
	profile := DefaultProfile()

	if raw.WeightKg != nil {
		if *raw.WeightKg > 0 && *raw.WeightKg <= 500 {
			profile.WeightKg = *raw.WeightKg
		} else {
			logger.Warn("invalid weight in config, using default",
				"weight_kg", *raw.WeightKg,
				"default", DefaultWeightKg,
			)
		}
	}

	if raw.AgeYears != nil {
		if *raw.AgeYears > 0 && *raw.AgeYears <= 130 {
			profile.AgeYears = *raw.AgeYears
		} else {
			logger.Warn("invalid age in config, using default",
				"age_years", *raw.AgeYears,
				"default", DefaultAgeYears,
			)
		}
	}

	if raw.Gender != nil {
		normalized := strings.ToLower(strings.TrimSpace(*raw.Gender))
		if normalized == "male" || normalized == "female" {
			profile.Gender = normalized
		} else {
			logger.Warn("invalid gender in config, using default",
				"gender", *raw.Gender,
				"default", DefaultGender,
			)
		}
	}

	return profile
}
