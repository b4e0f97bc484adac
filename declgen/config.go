// Package declgen turns a tree of IDL schema files into TypeScript
// declaration files: one namespace block per input file, with type
// references resolved across files through a shared registry.
package declgen

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the configuration for one generation run.
type Config struct {
	// Root is the directory scanned recursively for schema files.
	Root string `yaml:"root" validate:"required"`

	// Out is the directory generated declaration files are written to,
	// mirroring each input's path relative to Root. Required unless
	// Lint is set.
	Out string `yaml:"out" validate:"required_without=Lint"`

	// Ext is the schema file extension to match. Default: ".proto".
	Ext string `yaml:"ext" validate:"omitempty,startswith=."`

	// Lint parses and resolves without writing any output.
	Lint bool `yaml:"lint"`

	// Bundle, when set, combines every namespace block into a single
	// declaration file with this name instead of one file per input.
	Bundle string `yaml:"bundle"`

	// EnumStyle selects enum rendering: "const_enum" (default) or "enum".
	EnumStyle string `yaml:"enum_style" validate:"omitempty,oneof=const_enum enum"`

	// Indent is the indentation unit for emitted files. Default: two spaces.
	Indent string `yaml:"indent"`

	// Frontmatter is verbatim content prepended to each emitted file.
	Frontmatter string `yaml:"frontmatter"`
}

var validate = validator.New()

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// applyConfigDefaults returns a copy of cfg with defaults filled in.
func applyConfigDefaults(cfg *Config) *Config {
	result := *cfg
	if result.Ext == "" {
		result.Ext = ".proto"
	}
	if result.EnumStyle == "" {
		result.EnumStyle = "const_enum"
	}
	return &result
}

// validateConfig checks cfg against its struct constraints.
func validateConfig(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
