package cli

import (
	"github.com/waoai/confidis/internal/config"
	"github.com/waoai/confidis/internal/engine"
)

// applyParamsFile loads a weighting-parameters YAML file and applies it to
// a fresh engine via the same CONFIGURE commands a host could type itself,
// so a params file is never a separate code path from the protocol.
func applyParamsFile(eng *engine.Engine, path string) error {
	params, err := config.LoadParams(path)
	if err != nil {
		return err
	}
	for _, line := range config.ConfigureCommands(params) {
		if _, err := eng.Execute(line); err != nil {
			return err
		}
	}
	return nil
}
