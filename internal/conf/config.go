// config.go: settings struct and functions to load and validate the
// application configuration.
package conf

import (
	"embed"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/edubim/schoolcheck/internal/errors"
	"github.com/edubim/schoolcheck/internal/rules"
)

//go:embed config.yaml
var configFiles embed.FS

// LogConfig contains file log rotation settings.
type LogConfig struct {
	Enabled    bool   // true to write a rotated JSON log file
	Path       string // log file path
	MaxSize    int    // megabytes before rotation
	MaxBackups int    // rotated files to keep
	MaxAge     int    // days to keep rotated files
}

// MainSettings contains process-wide settings.
type MainSettings struct {
	Name string    // instance name used in logs
	Log  LogConfig // file log settings
}

// CheckSettings contains settings for one evaluation run.
type CheckSettings struct {
	SchoolType string  // one of the ruleset's declared school types
	Occupants  int     // occupant override; 0 means count from the model
	ZTolerance float64 // vertical assignment tolerance in model length units
	Workers    int     // footprint workers; 0 means one per CPU
	RulesFile  string  // optional YAML ruleset overlay path
}

// Settings contains all application settings.
type Settings struct {
	Debug bool // true to enable debug logging

	Main  MainSettings
	Check CheckSettings

	// Ruleset is the active rule configuration: the built-in tables, or the
	// overlay named by Check.RulesFile. Populated by Load, not by viper.
	Ruleset rules.Ruleset `mapstructure:"-"`
}

// Load reads settings from the given config file, falling back to the
// embedded defaults when path is empty. The returned settings have passed
// Validate.
func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaultConfig(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.New(err).
				Component("conf").
				Category(errors.CategoryConfiguration).
				Context("path", path).
				Build()
		}
	} else {
		defaults, err := configFiles.Open("config.yaml")
		if err != nil {
			return nil, errors.New(err).
				Component("conf").
				Category(errors.CategoryConfiguration).
				Build()
		}
		defer func() { _ = defaults.Close() }()
		if err := v.ReadConfig(defaults); err != nil {
			return nil, errors.New(err).
				Component("conf").
				Category(errors.CategoryConfiguration).
				Build()
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, errors.New(err).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	ruleset, err := loadRuleset(settings.Check.RulesFile)
	if err != nil {
		return nil, err
	}
	settings.Ruleset = ruleset

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// loadRuleset returns the built-in rule tables, or the overlay file when one
// is configured.
func loadRuleset(path string) (rules.Ruleset, error) {
	if path == "" {
		return rules.DefaultRuleset(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return rules.Ruleset{}, errors.New(err).
			Component("conf").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	var rs rules.Ruleset
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return rules.Ruleset{}, errors.New(err).
			Component("conf").
			Category(errors.CategoryRuleConfig).
			Context("path", path).
			Build()
	}
	return rs, nil
}

// Validate checks the settings for structural errors. Rule configuration
// mistakes must fail here, before any model is processed.
func (s *Settings) Validate() error {
	if err := s.Ruleset.Validate(); err != nil {
		return err
	}
	st := rules.SchoolType(s.Check.SchoolType)
	if !s.Ruleset.HasSchoolType(st) {
		return errors.Newf("school type %q is not declared by the ruleset", s.Check.SchoolType).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if s.Check.Occupants < 0 {
		return errors.Newf("occupants override must not be negative, got %d", s.Check.Occupants).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if s.Check.ZTolerance < 0 {
		return errors.Newf("vertical tolerance must not be negative, got %v", s.Check.ZTolerance).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if s.Check.Workers < 0 {
		return errors.Newf("worker count must not be negative, got %d", s.Check.Workers).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	return nil
}
