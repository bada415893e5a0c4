package main

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/bjaus/strfmt"
	"github.com/joeshaw/envdecode"
	"golang.org/x/text/language"
)

// config holds the formatter settings. Sources are applied in order:
// defaults, TOML file, STRFMT_* environment, flags.
type config struct {
	Sentinel     string `toml:"sentinel" env:"STRFMT_SENTINEL"`
	Lang         string `toml:"lang" env:"STRFMT_LANG"`
	DisplayWidth bool   `toml:"display_width" env:"STRFMT_DISPLAY_WIDTH"`
	MaxDepth     int    `toml:"max_depth" env:"STRFMT_MAX_DEPTH"`
}

func defaultConfig() config {
	return config{
		Sentinel: strfmt.DefaultSentinel,
		MaxDepth: strfmt.DefaultMaxDepth,
	}
}

// loadConfigFile overlays the keys defined in the TOML file at path.
func loadConfigFile(cfg *config, path string) error {
	var file config
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if meta.IsDefined("sentinel") {
		cfg.Sentinel = file.Sentinel
	}
	if meta.IsDefined("lang") {
		cfg.Lang = file.Lang
	}
	if meta.IsDefined("display_width") {
		cfg.DisplayWidth = file.DisplayWidth
	}
	if meta.IsDefined("max_depth") {
		cfg.MaxDepth = file.MaxDepth
	}
	return nil
}

// loadEnv overlays STRFMT_* variables. Unset variables leave cfg unchanged.
func loadEnv(cfg *config) error {
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return fmt.Errorf("environment: %w", err)
	}
	return nil
}

// options translates cfg into formatter options.
func (c config) options() ([]strfmt.Option, error) {
	opts := []strfmt.Option{
		strfmt.WithSentinel(c.Sentinel),
		strfmt.WithDisplayWidth(c.DisplayWidth),
		strfmt.WithMaxDepth(c.MaxDepth),
	}
	if c.Lang != "" {
		tag, err := language.Parse(c.Lang)
		if err != nil {
			return nil, fmt.Errorf("lang %q: %w", c.Lang, err)
		}
		opts = append(opts, strfmt.WithLanguage(tag))
	}
	return opts, nil
}
