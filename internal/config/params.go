package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/waoai/confidis/internal/domain"
)

// paramsFile mirrors domain.Params for YAML decoding, since the wire
// format favors readable keys over Go field names.
type paramsFile struct {
	InitialSourceStrength *float64 `yaml:"initial_source_strength"`
	DefaultSourceQuality  *float64 `yaml:"default_source_quality"`
	LogWeightFactor       *float64 `yaml:"log_weight_factor"`
}

// LoadParams reads a YAML file overriding any of the engine's three
// tunables, leaving unset keys at the engine's documented defaults. This
// lets a deployment pin non-default weighting without editing a script.
func LoadParams(path string) (domain.Params, error) {
	params := domain.DefaultParams()

	data, err := os.ReadFile(path)
	if err != nil {
		return params, err
	}

	var pf paramsFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return params, err
	}

	if pf.InitialSourceStrength != nil {
		params.InitialSourceStrength = *pf.InitialSourceStrength
	}
	if pf.DefaultSourceQuality != nil {
		params.DefaultSourceQuality = *pf.DefaultSourceQuality
	}
	if pf.LogWeightFactor != nil {
		params.LogWeightFactor = *pf.LogWeightFactor
	}
	return params, nil
}

// ConfigureCommands renders params as the CONFIGURE lines that would
// produce them on a fresh engine, in a fixed order, so a CLI can apply a
// loaded params file by simply executing them before anything else.
func ConfigureCommands(params domain.Params) []string {
	return []string{
		formatConfigure("initial_source_strength", params.InitialSourceStrength),
		formatConfigure("default_source_quality", params.DefaultSourceQuality),
		formatConfigure("log_weight_factor", params.LogWeightFactor),
	}
}

func formatConfigure(name string, value float64) string {
	return "CONFIGURE " + name + " " + strconv.FormatFloat(value, 'g', -1, 64)
}
