// Package config loads the optional TOML configuration of the quantum tool:
// which assembler and linker the com command drives, the base name of the
// files it produces, and the simulator step limit.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the tool configuration.
type Config struct {
	Toolchain struct {
		Assembler string `toml:"assembler"`
		Linker    string `toml:"linker"`
		Output    string `toml:"output"`
	} `toml:"toolchain"`

	Sim struct {
		// MaxSteps aborts a simulation after that many operations, 0 means
		// no limit.
		MaxSteps uint64 `toml:"max_steps"`
	} `toml:"sim"`
}

// Default returns the configuration used when no file is provided: the
// system assembler and linker, and files named after "output" in the current
// directory.
func Default() *Config {
	cfg := &Config{}
	cfg.Toolchain.Assembler = "as"
	cfg.Toolchain.Linker = "ld"
	cfg.Toolchain.Output = "output"
	return cfg
}

// Load reads the configuration from path, or returns Default when path is
// empty. Values missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.Toolchain.Output == "" {
		return nil, fmt.Errorf("config %s: toolchain.output must not be empty", path)
	}
	return cfg, nil
}

// AsmFile returns the name of the emitted assembly file.
func (c *Config) AsmFile() string { return c.Toolchain.Output + ".s" }

// ObjFile returns the name of the assembled object file.
func (c *Config) ObjFile() string { return c.Toolchain.Output + ".o" }

// BinFile returns the name of the linked executable.
func (c *Config) BinFile() string { return c.Toolchain.Output }
