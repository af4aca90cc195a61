package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// toolConfig is the optional calyx.toml next to the world file or named via
// --config. Flags override it.
type toolConfig struct {
	Check checkConfig `toml:"check"`
}

type checkConfig struct {
	Jobs  int  `toml:"jobs"`
	Color bool `toml:"color"`
}

func defaultToolConfig() toolConfig {
	return toolConfig{
		Check: checkConfig{
			Color: true,
		},
	}
}

// loadToolConfig reads an explicit config path, or calyx.toml beside the
// given world file when one exists. A missing implicit config is not an
// error.
func loadToolConfig(explicit, worldPath string) (toolConfig, error) {
	cfg := defaultToolConfig()

	path := explicit
	if path == "" {
		candidate := filepath.Join(filepath.Dir(worldPath), "calyx.toml")
		if _, err := os.Stat(candidate); err != nil {
			return cfg, nil
		}
		path = candidate
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %s: unknown key %s", path, undecoded[0])
	}

	return cfg, nil
}
