// Package config holds sysvread settings loaded from a TOML file.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the configuration for sysvread. Command line flags override
// the values read from the file.
type Config struct {
	// Debug enables debug logging of the directory walk.
	Debug bool `toml:"debug"`
	// SkipUnused hides directory slots whose inode number is 0.
	SkipUnused bool `toml:"skip_unused"`
	// CountBySize sizes the last directory block by the records the root
	// inode's size leaves after the full blocks.
	CountBySize bool `toml:"count_by_size"`
	// Parallel is the number of entries resolved concurrently. 0 or 1
	// resolves one at a time.
	Parallel int `toml:"parallel"`
	// ShowAll lists "." and "..".
	ShowAll bool `toml:"show_all"`
}

// Load reads the config file at path. An empty path yields the defaults.
// Unknown keys are an error.
func Load(path string) (*Config, error) {
	var c Config
	if path == "" {
		return &c, nil
	}
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("loading config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if c.Parallel < 0 {
		return nil, fmt.Errorf("loading config %s: parallel must not be negative, got %d", path, c.Parallel)
	}
	return &c, nil
}
