package config

import (
	"fmt"

	"github.com/iwvelando/finance-calculators/pkg/loans"
)

// LoanCalculation describes one loan to amortize. Exactly one of Term and
// Payment selects the solve mode; Term wins when both are set. A FeePercent
// turns the calculation into a loan-with-fee comparison.
type LoanCalculation struct {
	Name       string   `yaml:"name,omitempty"`
	Method     string   `yaml:"method,omitempty"` // declining, annuity
	Principal  float64  `yaml:"principal"`
	AnnualRate float64  `yaml:"annualRate"`
	FeePercent *float64 `yaml:"feePercent,omitempty"`
	Term       int      `yaml:"term,omitempty"`    // months
	Payment    float64  `yaml:"payment,omitempty"` // monthly
}

// AmortizationTerm returns the solve mode selected by the calculation.
func (l LoanCalculation) AmortizationTerm() (loans.Term, error) {
	switch {
	case l.Term > 0:
		return loans.ByTerm{Periods: l.Term}, nil
	case l.Payment > 0:
		return loans.ByPayment{Payment: l.Payment}, nil
	default:
		return nil, fmt.Errorf("loan %s: %w: a positive term or payment is required", l.Name, loans.ErrInvalidInput)
	}
}

// AmortizationMethod parses the configured method.
func (l LoanCalculation) AmortizationMethod() (loans.Method, error) {
	method, err := loans.ParseMethod(l.Method)
	if err != nil {
		return "", fmt.Errorf("loan %s: %w", l.Name, err)
	}
	return method, nil
}

// HasFee reports whether the loan carries an upfront fee.
func (l LoanCalculation) HasFee() bool {
	return l.FeePercent != nil
}
