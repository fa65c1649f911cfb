// Package jlconfig loads the optional TOML configuration file that supplies
// a default field separator and named pattern presets, in the style of the
// style of a TOML-based resource-file loader.
package jlconfig

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/ajbruin/jl/internal/jlerrors"
)

// Config is the parsed contents of a jl config file.
type Config struct {
	// FieldSep, if non-empty, is used as the default field separator when
	// the command line does not supply -f.
	FieldSep string `toml:"fieldsep"`

	// Patterns maps a preset name to its DSL text, so "@name" on the
	// command line can stand in for the DSL.
	Patterns map[string]string `toml:"patterns"`
}

// Load reads and parses the TOML config file at path. A path of "" means no
// config file was explicitly requested: Load falls back to
// "$HOME/.jlrc.toml", and if that doesn't exist either, returns an empty
// Config with no error (absence of a config file is never an error).
//
// A present-but-malformed config file is a jlerrors.Usage error: like CLI
// flags, the config describes how to run the program rather than being
// itself a data stream subject to the document grammar.
func Load(path string) (Config, error) {
	explicit := path != ""

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, nil
		}
		path = filepath.Join(home, ".jlrc.toml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit {
			// no config requested and the default location doesn't exist
			// (or isn't readable): silently proceed with defaults.
			return Config{}, nil
		}
		return Config{}, jlerrors.Wrap(jlerrors.Usage, err, "read config %q", path)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, jlerrors.Wrap(jlerrors.Usage, err, "parse config %q", path)
	}
	return cfg, nil
}

// Resolve looks up pattern in cfg's preset table if it begins with "@" and
// returns the preset's DSL text; otherwise it returns pattern unchanged. A
// "@name" that has no matching preset is a jlerrors.Usage error.
func Resolve(cfg Config, pattern string) (string, error) {
	if len(pattern) == 0 || pattern[0] != '@' {
		return pattern, nil
	}
	name := pattern[1:]
	dsl, ok := cfg.Patterns[name]
	if !ok {
		return "", jlerrors.New(jlerrors.Usage, "no such pattern preset: %q", name)
	}
	return dsl, nil
}
