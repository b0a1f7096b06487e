// Package config reads the optional pallene.toml project file: the C
// compiler to invoke, extra compiler/linker flags, and the output
// directory for generated artifacts. Its absence is not an
// error -- Load returns the zero-value Config, and every field has a
// sensible default the Driver and Toolchain already fall back to on
// their own.
//
// No direct chai analogue (chai reads a single CHAI_PATH environment
// variable in cmd/args.go rather than a project file); built in chai's
// flat-struct-plus-defaults style using chai's own pelletier/go-toml
// dependency.
package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the decoded shape of pallene.toml.
type Config struct {
	CC      string   `toml:"cc"`
	CFlags  []string `toml:"cflags"`
	LDFlags []string `toml:"ldflags"`
	OutDir  string   `toml:"out_dir"`
}

// Load reads and decodes path. A missing file is not an error: it
// returns the zero-value Config, which every caller treats the same as
// "no overrides configured".
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
