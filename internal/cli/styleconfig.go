package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/auspexlabs/imager/pkg/chart/styles"
)

// loadStyleConfig reads a TOML style file into styles.Options. Keys mirror
// the style_options object of the JSON request, so a file like
//
//	width = 1000
//	border_color = "#222"
//
//	[planet_colors]
//	Sun = "#FFD700"
//
// layers under any per-request overrides.
func loadStyleConfig(path string) (styles.Options, error) {
	var opts styles.Options

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("reading style config: %w", err)
	}
	if err := toml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parsing style config %s: %w", path, err)
	}
	return opts, nil
}
