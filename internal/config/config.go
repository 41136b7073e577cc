// Package config loads the optional metakit.yaml project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/metakit/internal/files/scanner"
	"github.com/vvka-141/metakit/internal/merge"
	"github.com/vvka-141/metakit/internal/parser"
	"github.com/vvka-141/metakit/pkg/metakit"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const ConfigFileName = "metakit.yaml"

// Environment variables that override the file.
const (
	EnvKitPairing  = "METAKIT_KIT_PAIRING"
	EnvConsolidate = "METAKIT_CONSOLIDATE"
)

type MergeConfig struct {
	ConsolidateSimilarIDs bool   `yaml:"consolidate_similar_ids"`
	KitPairing            string `yaml:"kit_pairing" validate:"omitempty,oneof=index none"`
}

type ValidateConfig struct {
	FailOnWarnings bool `yaml:"fail_on_warnings"`
}

type ScanConfig struct {
	Include []string `yaml:"include" validate:"dive,required,glob"`
	Exclude []string `yaml:"exclude" validate:"dive,required,glob"`
}

type ProjectConfig struct {
	Merge    MergeConfig    `yaml:"merge"`
	Validate ValidateConfig `yaml:"validate"`
	Scan     ScanConfig     `yaml:"scan"`
}

// Default returns the configuration used when no file is present.
func Default() *ProjectConfig {
	return &ProjectConfig{
		Merge: MergeConfig{
			ConsolidateSimilarIDs: true,
			KitPairing:            string(parser.KitPairingIndex),
		},
		Scan: ScanConfig{Include: scanner.DefaultOptions().Include},
	}
}

// Load reads ConfigFileName from sourcePath on top of the defaults.
func Load(sourcePath string) (*ProjectConfig, error) {
	configPath := filepath.Join(sourcePath, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", metakit.ErrInvalidConfig, configPath, err)
	}
	return cfg, nil
}

// Resolve loads the project file if there is one, applies environment
// overrides and validates the result.
func Resolve(sourcePath string, getenv func(string) string) (*ProjectConfig, error) {
	cfg, err := Load(sourcePath)
	if errors.Is(err, ErrConfigNotFound) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return nil, err
	}
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables read with getenv.
func (c *ProjectConfig) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv(EnvKitPairing); v != "" {
		c.Merge.KitPairing = v
	}
	if v := getenv(EnvConsolidate); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", metakit.ErrInvalidConfig, EnvConsolidate, v)
		}
		c.Merge.ConsolidateSimilarIDs = b
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("glob", func(fl validator.FieldLevel) bool {
		return doublestar.ValidatePattern(fl.Field().String())
	})
	return v
}

// Check checks field constraints.
func (c *ProjectConfig) Check() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%w: %s fails %q (value %v)", metakit.ErrInvalidConfig, fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("%w: %v", metakit.ErrInvalidConfig, err)
	}
	return nil
}

// MergeOptions returns the merge settings.
func (c *ProjectConfig) MergeOptions() merge.Options {
	return merge.Options{
		ConsolidateSimilarIDs: c.Merge.ConsolidateSimilarIDs,
		KitPairing:            c.KitPairing(),
	}
}

// ParserOptions returns the parser settings.
func (c *ProjectConfig) ParserOptions() parser.Options {
	return parser.Options{KitPairing: c.KitPairing()}
}

// KitPairing returns the configured pairing, defaulting to index pairing.
func (c *ProjectConfig) KitPairing() parser.KitPairing {
	if c.Merge.KitPairing == "" {
		return parser.KitPairingIndex
	}
	return parser.KitPairing(c.Merge.KitPairing)
}

// ScanOptions returns the workspace scan globs.
func (c *ProjectConfig) ScanOptions() scanner.Options {
	return scanner.Options{Include: c.Scan.Include, Exclude: c.Scan.Exclude}
}
