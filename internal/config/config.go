package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the immutable option record for one formatter run. Zero values
// mean "rule disabled"; MaxWidth is the width budget for overflow layout
// and comment wrapping.
type Config struct {
	NormalizeComments         bool `toml:"normalize_comments"`
	ReorderImplItems          bool `toml:"reorder_impl_items"`
	StructFieldAlignThreshold uint `toml:"struct_field_align_threshold"`
	UseFieldInitShorthand     bool `toml:"use_field_init_shorthand"`
	UseTryShorthand           bool `toml:"use_try_shorthand"`
	WrapComments              bool `toml:"wrap_comments"`
	OverflowDelimitedExpr     bool `toml:"overflow_delimited_expr"`
	MaxWidth                  uint `toml:"max_width"`
}

// ErrZeroMaxWidth indicates max_width = 0 in runefmt.toml.
var ErrZeroMaxWidth = errors.New("max_width must be positive")

// Default returns the configuration used when no runefmt.toml is found.
func Default() Config {
	return Config{MaxWidth: 100}
}

// Load parses a runefmt.toml. Unknown keys are rejected: опечатка в имени
// опции не должна молча отключать правило.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return Config{}, fmt.Errorf("%s: unknown option(s): %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks constraints that the TOML schema cannot express.
func (c Config) Validate() error {
	if c.MaxWidth == 0 {
		return ErrZeroMaxWidth
	}
	return nil
}

// Fingerprint returns a stable textual encoding of the options. It feeds
// the format-cache key: любое изменение опций обесценивает кэш.
func (c Config) Fingerprint() []byte {
	return fmt.Appendf(nil, "v1;nc=%t;ri=%t;at=%d;fs=%t;ts=%t;wc=%t;od=%t;mw=%d",
		c.NormalizeComments, c.ReorderImplItems, c.StructFieldAlignThreshold,
		c.UseFieldInitShorthand, c.UseTryShorthand, c.WrapComments,
		c.OverflowDelimitedExpr, c.MaxWidth)
}
