package config

import (
	"fmt"

	"github.com/iwvelando/finance-calculators/pkg/finance"
)

// InvestmentCalculation describes one recurring investment. With an explicit
// Contributions schedule it is projected directly; otherwise exactly one of
// the five quantities is left blank and solved for.
type InvestmentCalculation struct {
	Name           string                 `yaml:"name,omitempty"`
	Frequency      string                 `yaml:"frequency,omitempty"` // weekly, monthly, quarterly, semi-annually, annually
	InitialAmount  *float64               `yaml:"initialAmount,omitempty"`
	PeriodicAmount *float64               `yaml:"periodicAmount,omitempty"`
	Periods        *float64               `yaml:"periods,omitempty"`
	AnnualRate     *float64               `yaml:"annualRate,omitempty"`
	FinalValue     *float64               `yaml:"finalValue,omitempty"`
	Contributions  []finance.Contribution `yaml:"contributions,omitempty"`
}

// CompoundingFrequency parses the configured frequency, defaulting to monthly.
func (i InvestmentCalculation) CompoundingFrequency() (finance.Frequency, error) {
	freq, err := finance.ParseFrequency(i.Frequency)
	if err != nil {
		return 0, fmt.Errorf("investment %s: %w", i.Name, err)
	}
	return freq, nil
}

// Inputs returns the five quantities for solving.
func (i InvestmentCalculation) Inputs() finance.Inputs {
	return finance.Inputs{
		InitialAmount:  i.InitialAmount,
		PeriodicAmount: i.PeriodicAmount,
		Periods:        i.Periods,
		AnnualRate:     i.AnnualRate,
		FinalValue:     i.FinalValue,
	}
}

// HasSchedule reports whether explicit contributions were given.
func (i InvestmentCalculation) HasSchedule() bool {
	return len(i.Contributions) > 0
}
