// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for finance-calculators.
type Configuration struct {
	Logging     LoggingConfig           `yaml:"logging,omitempty"`
	Output      OutputConfig            `yaml:"output,omitempty"`
	Metrics     MetricsConfig           `yaml:"metrics,omitempty"`
	Concurrency int                     `yaml:"concurrency,omitempty"`
	Loans       []LoanCalculation       `yaml:"loans,omitempty"`
	Investments []InvestmentCalculation `yaml:"investments,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json, yaml
}

// MetricsConfig controls the Prometheus text file written after a run.
type MetricsConfig struct {
	File      string `yaml:"file,omitempty"`
	Namespace string `yaml:"namespace,omitempty"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("metrics.file", "")
	v.SetDefault("metrics.namespace", constants.MetricsNamespace)
	v.SetDefault("concurrency", constants.DefaultConcurrency)
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A .env file in the working directory, when present,
// is loaded first so FINCALC_* variables in it can override file values.
func LoadConfiguration(configPath string) (*Configuration, error) {
	_ = godotenv.Load()

	file, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return LoadConfigurationFromReader(bytes.NewReader(file))
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %w", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	configuration.applyDefaults()
	return &configuration, nil
}

// applyDefaults names unnamed calculations and clamps the worker count.
func (c *Configuration) applyDefaults() {
	if c.Concurrency < 1 {
		c.Concurrency = constants.DefaultConcurrency
	}
	for i := range c.Loans {
		if c.Loans[i].Name == "" {
			c.Loans[i].Name = fmt.Sprintf("loan-%d", i+1)
		}
	}
	for i := range c.Investments {
		if c.Investments[i].Name == "" {
			c.Investments[i].Name = fmt.Sprintf("investment-%d", i+1)
		}
	}
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	validator := validation.ConfigValidator{}

	for _, loan := range c.Loans {
		validator.Loans = append(validator.Loans, validation.LoanConfig{
			Name:       loan.Name,
			Principal:  loan.Principal,
			AnnualRate: loan.AnnualRate,
			FeePercent: loan.FeePercent,
			Term:       loan.Term,
			Payment:    loan.Payment,
		})
	}

	for _, investment := range c.Investments {
		validator.Investments = append(validator.Investments, validation.InvestmentConfig{
			Name:        investment.Name,
			Blank:       len(investment.Inputs().Blank()),
			HasSchedule: investment.HasSchedule(),
			AnnualRate:  investment.AnnualRate,
		})
	}

	warnings := validator.ValidateAll()
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		warnings = append(warnings, err.Error())
	}
	return warnings
}
