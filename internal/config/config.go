// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/hotel-forecast/internal/logging"
	"github.com/iwvelando/hotel-forecast/pkg/constants"
	"github.com/iwvelando/hotel-forecast/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for hotel-forecast.
type Configuration struct {
	Logging  LoggingConfig `yaml:"logging,omitempty"`
	Output   OutputConfig  `yaml:"output,omitempty"`
	Settings Settings      `yaml:"settings,omitempty"`
	Projects []Project     `yaml:"projects"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig = logging.Config

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, pdf
	File   string `yaml:"file,omitempty"`   // required for pdf, optional otherwise
}

// Settings are application wide defaults applied to every project.
type Settings struct {
	CurrencySymbol      string  `yaml:"currencySymbol,omitempty"`
	DefaultInterestRate float64 `yaml:"defaultInterestRate,omitempty"`
	DefaultOTAPercent   float64 `yaml:"defaultOtaPercent,omitempty"`
	TargetCMPercent     float64 `yaml:"targetCmPercent,omitempty"`
}

// DefaultSettings returns the settings used when the file sets none.
func DefaultSettings() Settings {
	return Settings{
		CurrencySymbol:      constants.DefaultCurrencySymbol,
		DefaultInterestRate: constants.DefaultInterestRate,
		DefaultOTAPercent:   constants.OTACommissionRate * constants.PercentageMultiplier,
		TargetCMPercent:     constants.DefaultTargetCMPercent,
	}
}

// Project is one property evaluated by the forecast.
type Project struct {
	Name   string        `yaml:"name"`
	Active bool          `yaml:"active"`
	Inputs ProjectInputs `yaml:"inputs"`
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultSettings()
	v.SetDefault("settings.currencySymbol", defaults.CurrencySymbol)
	v.SetDefault("settings.defaultInterestRate", defaults.DefaultInterestRate)
	v.SetDefault("settings.defaultOtaPercent", defaults.DefaultOTAPercent)
	v.SetDefault("settings.targetCmPercent", defaults.TargetCMPercent)
	v.SetDefault("output.format", constants.OutputFormatPretty)
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.SetEnvPrefix("HOTEL_FORECAST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML configuration from r, e.g. an
// uploaded file.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")
	setDefaults(v)

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return &configuration, nil
}

// ActiveProjects returns the projects flagged active, in file order.
func (c *Configuration) ActiveProjects() []Project {
	var active []Project
	for _, project := range c.Projects {
		if project.Active {
			active = append(active, project)
		}
	}
	return active
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.ActiveProjects()) == 0 {
		warnings = append(warnings, "no active projects; nothing will be forecast")
	}

	if c.Output.Format == constants.OutputFormatPDF && c.Output.File == "" {
		warnings = append(warnings, "output format pdf requires output.file")
	}

	seen := make(map[string]bool)
	for i, project := range c.Projects {
		name := strings.TrimSpace(project.Name)
		if name == "" {
			warnings = append(warnings, fmt.Sprintf("project #%d has no name", i+1))
			continue
		}
		if seen[name] {
			warnings = append(warnings, fmt.Sprintf("project '%s' is defined more than once", name))
		}
		seen[name] = true

		if !project.Active {
			continue
		}
		for _, warning := range validation.ValidateInputs(project.Inputs.ToInputState(project.Name, c.Settings)) {
			warnings = append(warnings, fmt.Sprintf("project '%s': %s", name, warning))
		}
	}

	return warnings
}
