package loans

import (
	"errors"
	"fmt"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/optimization"
)

// FeeResult is the schedule of a fee-inclusive loan together with the fee
// and the fee-free rate that would produce the same payment.
type FeeResult struct {
	Result                 `yaml:",inline"`
	FeePercent             float64              `json:"feePercent" yaml:"feePercent"`
	InitialFee             float64              `json:"initialFee" yaml:"initialFee"`
	EquivalentInterestRate float64              `json:"equivalentInterestRate" yaml:"equivalentInterestRate"`
	Search                 optimization.Summary `json:"search" yaml:"search"`
}

// LoanWithFee amortizes principal plus an upfront fee on the declining-balance
// convention and derives the equivalent fee-free rate.
func LoanWithFee(principal, feePercent, annualInterestRate float64, term Term) (*FeeResult, error) {
	return LoanWithFeeMethod(MethodDecliningBalance, principal, feePercent, annualInterestRate, term)
}

// LoanWithFeeMethod is LoanWithFee with an explicit amortization convention.
func LoanWithFeeMethod(method Method, principal, feePercent, annualInterestRate float64, term Term) (*FeeResult, error) {
	if !mathutil.IsFinite(feePercent) || feePercent < 0 {
		return nil, fmt.Errorf("%w: fee must be non-negative, got %v", ErrInvalidInput, feePercent)
	}
	if err := validateLoan(principal, annualInterestRate, term); err != nil {
		return nil, err
	}

	initialFee := mathutil.ApplyPercentage(principal, feePercent)
	totalLoanAmount := principal + initialFee

	loan, err := Amortize(method, totalLoanAmount, annualInterestRate, term)
	if err != nil {
		return nil, fmt.Errorf("amortizing fee-inclusive amount %.2f: %w", totalLoanAmount, err)
	}

	targetPayment := 0.0
	switch {
	case loan.MonthlyPayment != nil:
		targetPayment = *loan.MonthlyPayment
	default:
		if t, ok := term.(ByPayment); ok {
			targetPayment = t.Payment
		}
	}

	search, err := EquivalentRate(principal, targetPayment, loan.Periods())
	if err != nil {
		return nil, err
	}

	return &FeeResult{
		Result:                 *loan,
		FeePercent:             feePercent,
		InitialFee:             initialFee,
		EquivalentInterestRate: search.Value,
		Search:                 search.Summary("equivalentInterestRate"),
	}, nil
}

// EquivalentRate searches [0, 50] percent for the annual rate at which a
// fee-free loan of principal over the given periods costs payment per month.
func EquivalentRate(principal, payment float64, periods int) (optimization.Result, error) {
	if !mathutil.IsFinite(principal) || principal <= 0 {
		return optimization.Result{}, fmt.Errorf("%w: principal must be positive, got %v", ErrInvalidInput, principal)
	}
	if !mathutil.IsFinite(payment) || payment <= 0 {
		return optimization.Result{}, fmt.Errorf("%w: payment must be positive, got %v", ErrInvalidInput, payment)
	}
	if periods < 1 {
		return optimization.Result{}, fmt.Errorf("%w: periods must be at least one, got %d", ErrInvalidInput, periods)
	}

	problem := optimization.Problem{
		Lower:     0,
		Upper:     constants.MaxSolverRatePercent,
		Tolerance: constants.RateTolerance,
		Target:    payment,
	}
	result, err := optimization.Bisect(problem, func(rate float64) float64 {
		return CalculateMonthlyPayment(principal, rate, periods)
	})
	if errors.Is(err, optimization.ErrSaturated) {
		return result, fmt.Errorf("%w: payment %.2f over %d periods: %w", ErrNoEquivalentRate, payment, periods, err)
	}
	if err != nil {
		return result, fmt.Errorf("searching equivalent rate: %w", err)
	}
	return result, nil
}
