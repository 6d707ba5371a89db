// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/finance-calculators/pkg/constants"
)

// ConfigValidator collects the calculations of a batch for validation.
type ConfigValidator struct {
	Loans       []LoanConfig
	Investments []InvestmentConfig
}

// LoanConfig is the subset of a loan calculation that is checked.
type LoanConfig struct {
	Name       string
	Principal  float64
	AnnualRate float64
	FeePercent *float64
	Term       int
	Payment    float64
}

// InvestmentConfig is the subset of an investment calculation that is checked.
type InvestmentConfig struct {
	Name        string
	Blank       int
	HasSchedule bool
	AnnualRate  *float64
}

// ValidateLoan returns warnings for a loan that will fail or behave unexpectedly.
func ValidateLoan(loan LoanConfig) []string {
	var warnings []string

	if loan.Principal <= 0 {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' has non-positive principal %.2f", loan.Name, loan.Principal))
	}
	if loan.AnnualRate < 0 {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' has negative annual rate %.4f", loan.Name, loan.AnnualRate))
	}

	switch {
	case loan.Term > 0 && loan.Payment > 0:
		warnings = append(warnings, fmt.Sprintf("Loan '%s' sets both term and payment - payment %.2f is ignored",
			loan.Name, loan.Payment))
	case loan.Term <= 0 && loan.Payment <= 0:
		warnings = append(warnings, fmt.Sprintf("Loan '%s' sets neither a term nor a payment", loan.Name))
	}

	if loan.Term > constants.MaxLoanPeriods {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' term of %d months exceeds %d", loan.Name, loan.Term, constants.MaxLoanPeriods))
	}

	if loan.FeePercent != nil {
		if *loan.FeePercent < 0 {
			warnings = append(warnings, fmt.Sprintf("Loan '%s' has negative fee %.4f%%", loan.Name, *loan.FeePercent))
		}
		if loan.AnnualRate >= constants.MaxSolverRatePercent {
			warnings = append(warnings, fmt.Sprintf("Loan '%s' rate %.2f%% is at or above the %.0f%% equivalent rate search limit",
				loan.Name, loan.AnnualRate, constants.MaxSolverRatePercent))
		}
	}

	return warnings
}

// ValidateInvestment returns warnings for an investment that will fail or
// behave unexpectedly.
func ValidateInvestment(investment InvestmentConfig) []string {
	var warnings []string

	if investment.HasSchedule {
		if investment.AnnualRate == nil {
			warnings = append(warnings, fmt.Sprintf("Investment '%s' has a contribution schedule but no annual rate", investment.Name))
		}
		return warnings
	}

	if investment.Blank != 1 {
		warnings = append(warnings, fmt.Sprintf("Investment '%s' must leave exactly one field blank, found %d",
			investment.Name, investment.Blank))
	}
	if investment.AnnualRate != nil && *investment.AnnualRate > constants.MaxSolverRatePercent {
		warnings = append(warnings, fmt.Sprintf("Investment '%s' rate %.2f%% is above the %.0f%% solver limit",
			investment.Name, *investment.AnnualRate, constants.MaxSolverRatePercent))
	}

	return warnings
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	if len(cv.Loans) == 0 && len(cv.Investments) == 0 {
		warnings = append(warnings, "No loans or investments configured")
	}

	seen := make(map[string]bool)
	checkName := func(kind, name string) {
		if seen[name] {
			warnings = append(warnings, fmt.Sprintf("Duplicate calculation name '%s' (%s)", name, kind))
		}
		seen[name] = true
	}

	for _, loan := range cv.Loans {
		checkName("loan", loan.Name)
		warnings = append(warnings, ValidateLoan(loan)...)
	}

	for _, investment := range cv.Investments {
		checkName("investment", investment.Name)
		warnings = append(warnings, ValidateInvestment(investment)...)
	}

	return warnings
}
