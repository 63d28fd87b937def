// Package config provides cssmin configuration with a defined load order:
// CLI flags > environment variables > local config > global config > defaults.
//
// Paths:
//   - Local: cssmin.toml (relative to the working directory)
//   - Global: XDG config dir, e.g. ~/.config/cssmin/config.toml (see os.UserConfigDir)
//
// Environment variables (override config files when set):
//   - CSSMIN_SUFFIX (output file suffix for batch mode, e.g. .min.css)
//   - CSSMIN_JOBS (parallel workers; positive integer)
//   - CSSMIN_TRACE (1/true/yes/on = true, 0/false/no/off = false)
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"cssmin/cli/internal/erruser"
)

// Config holds all cssmin configuration.
type Config struct {
	// Suffix replaces a .css extension on batch outputs (in.css -> in.min.css).
	Suffix string `toml:"suffix"`
	// Jobs is the number of files minified concurrently in batch mode.
	Jobs int `toml:"jobs"`
	// Trace prints internal steps (expansion, per-file savings) to stderr.
	Trace bool `toml:"trace"`
}

// Overrides represents optional CLI flag overrides. Non-nil pointer means
// "override with this value".
type Overrides struct {
	Suffix *string
	Jobs   *int
	Trace  *bool
}

// LoadOptions configures Load. All fields are optional.
type LoadOptions struct {
	// WorkDir is the directory holding the local cssmin.toml; if empty, no local file is read.
	WorkDir string
	// GlobalConfigPath is the global config file path; if empty, the XDG path is used.
	GlobalConfigPath string
	// Env is the environment key=value slice; if nil, os.Environ() is used.
	Env []string
	// Overrides are applied last (highest precedence).
	Overrides *Overrides
}

const (
	_defaultSuffix = ".min.css"
	_defaultJobs   = 4
)

// DefaultConfig returns the default configuration (no I/O).
func DefaultConfig() Config {
	return Config{
		Suffix: _defaultSuffix,
		Jobs:   _defaultJobs,
		Trace:  false,
	}
}

// Load loads configuration with precedence: defaults < global file < local file < env < overrides.
// Missing config files are ignored. Invalid TOML or invalid env values return an error.
func Load(opts LoadOptions) (*Config, error) {
	if opts.Env == nil {
		opts.Env = os.Environ()
	}
	cfg := DefaultConfig()

	globalPath := opts.GlobalConfigPath
	if globalPath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, erruser.New("Could not determine config directory.", err)
		}
		globalPath = filepath.Join(dir, "cssmin", "config.toml")
	}
	if err := mergeFile(&cfg, globalPath); err != nil {
		return nil, err
	}

	if opts.WorkDir != "" {
		if err := mergeFile(&cfg, filepath.Join(opts.WorkDir, "cssmin.toml")); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(&cfg, opts.Env); err != nil {
		return nil, err
	}

	applyOverrides(&cfg, opts.Overrides)
	return &cfg, nil
}

// mergeFile reads path and merges into cfg. Only overwrites fields that are
// present and usable in the file (explicit empty suffix or zero jobs keeps
// the previous value). Missing file is skipped without error.
func mergeFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return erruser.New("Invalid configuration file.", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return erruser.New("Could not read configuration file.", err)
	}
	var file struct {
		Suffix *string `toml:"suffix"`
		Jobs   *int64  `toml:"jobs"`
		Trace  *bool   `toml:"trace"`
	}
	if _, err := toml.Decode(string(data), &file); err != nil {
		return erruser.New("Invalid configuration in "+filepath.Base(path)+".", err)
	}
	if file.Suffix != nil && *file.Suffix != "" {
		cfg.Suffix = *file.Suffix
	}
	if file.Jobs != nil && *file.Jobs > 0 {
		v, err := int64ToInt(*file.Jobs)
		if err != nil {
			return erruser.New("Configuration jobs value out of range.", err)
		}
		cfg.Jobs = v
	}
	if file.Trace != nil {
		cfg.Trace = *file.Trace
	}
	return nil
}

// env key names for config
const (
	envSuffix = "CSSMIN_SUFFIX"
	envJobs   = "CSSMIN_JOBS"
	envTrace  = "CSSMIN_TRACE"
)

func applyEnv(cfg *Config, env []string) error {
	vals := make(map[string]string)
	for _, e := range env {
		idx := strings.Index(e, "=")
		if idx <= 0 {
			continue
		}
		vals[strings.TrimSpace(e[:idx])] = strings.TrimSpace(e[idx+1:])
	}
	if v, ok := vals[envSuffix]; ok && v != "" {
		cfg.Suffix = v
	}
	if v, ok := vals[envJobs]; ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return erruser.New("CSSMIN_JOBS must be a valid number.", err)
		}
		if n <= 0 {
			return erruser.New("CSSMIN_JOBS must be positive.", nil)
		}
		cfg.Jobs, err = int64ToInt(n)
		if err != nil {
			return erruser.New("CSSMIN_JOBS value out of range.", err)
		}
	}
	if v, ok := vals[envTrace]; ok && v != "" {
		b, err := parseBool(v)
		if err != nil {
			return erruser.New("CSSMIN_TRACE must be 1/true/yes/on or 0/false/no/off.", err)
		}
		cfg.Trace = b
	}
	return nil
}

// parseBool parses common boolean env values: 1/true/yes/on = true, 0/false/no/off = false (case-insensitive).
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", s)
	}
}

// int64ToInt converts n to int. It returns an error if n is outside the range
// of int (e.g. overflow on 32-bit).
func int64ToInt(n int64) (int, error) {
	if n < int64(math.MinInt) || n > int64(math.MaxInt) {
		return 0, fmt.Errorf("value out of range for int")
	}
	return int(n), nil
}

func applyOverrides(cfg *Config, o *Overrides) {
	if o == nil {
		return
	}
	if o.Suffix != nil && *o.Suffix != "" {
		cfg.Suffix = *o.Suffix
	}
	if o.Jobs != nil && *o.Jobs > 0 {
		cfg.Jobs = *o.Jobs
	}
	if o.Trace != nil {
		cfg.Trace = *o.Trace
	}
}
