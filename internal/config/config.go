package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load reads the .env file named by CONFIDIS_ENV (or .env by default), then
// loads the corresponding .secret sidecar if it exists. Missing files are
// not an error; CLI flags always take precedence over env vars, which take
// precedence over these defaults.
func Load() error {
	envFile := os.Getenv("CONFIDIS_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	_ = godotenv.Load(envFile)
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}

// LogFormat returns the structured log encoding, "console" or "json".
// Defaults to "console", which is friendlier for an interactive CLI.
func LogFormat() string {
	f := os.Getenv("LOG_FORMAT")
	if f == "" {
		return "console"
	}
	return f
}

// InitialSourceStrength returns the engine's starting value for the
// initial_source_strength parameter, letting a deployment pin a non-default
// prior without editing a script. Defaults to the engine's own default
// when unset or unparsable.
func InitialSourceStrength(fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv("CONFIDIS_INITIAL_SOURCE_STRENGTH"), 64)
	if err != nil {
		return fallback
	}
	return v
}

// DefaultSourceQuality mirrors InitialSourceStrength for the
// default_source_quality parameter.
func DefaultSourceQuality(fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv("CONFIDIS_DEFAULT_SOURCE_QUALITY"), 64)
	if err != nil {
		return fallback
	}
	return v
}

// LogWeightFactor mirrors InitialSourceStrength for the log_weight_factor
// parameter.
func LogWeightFactor(fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv("CONFIDIS_LOG_WEIGHT_FACTOR"), 64)
	if err != nil {
		return fallback
	}
	return v
}
