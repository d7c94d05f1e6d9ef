package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Conversion modes.
const (
	// ModeFlexible converts everything it can, reporting warnings for
	// best-effort results. The default.
	ModeFlexible = "flexible"
	// ModeStrict treats best-effort results as failures.
	ModeStrict = "strict"
)

// Config holds the converter settings.
type Config struct {
	// Mode is "flexible" or "strict".
	Mode string `toml:"mode"`
	// OutputDir is the root directory for generated Java files.
	OutputDir string `toml:"output_dir"`
	// Include globs select input files relative to the input root.
	// Empty means the default C++ extensions.
	Include []string `toml:"include"`
	// Exclude globs remove files matched by Include.
	Exclude []string `toml:"exclude"`
	// Workers bounds mapping concurrency. Zero means one worker per
	// CPU.
	Workers int `toml:"workers"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Mode:      ModeFlexible,
		OutputDir: "generated",
	}
}

// Load reads a TOML config file over the defaults. A missing file is
// not an error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}

	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks settings for values nothing downstream can honor.
func (c Config) Validate() error {
	if c.Mode != ModeFlexible && c.Mode != ModeStrict {
		return fmt.Errorf("mode must be %q or %q, got %q", ModeFlexible, ModeStrict, c.Mode)
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}

	return nil
}
