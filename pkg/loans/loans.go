// Package loans provides fixed-rate loan amortization and the equivalent-rate
// comparison for loans carrying an upfront fee.
package loans

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

var (
	// ErrInvalidInput is returned for inputs outside the supported domain.
	ErrInvalidInput = errors.New("invalid loan input")

	// ErrNonAmortizingPayment is returned when a fixed payment can never pay
	// the loan off.
	ErrNonAmortizingPayment = errors.New("payment does not amortize the loan")

	// ErrNoEquivalentRate is returned when no rate inside the search range
	// reproduces the fee-inclusive payment.
	ErrNoEquivalentRate = errors.New("no equivalent interest rate in search range")
)

// Term selects how a schedule is solved: for a fixed number of periods or for
// a fixed payment. The implementations are ByTerm and ByPayment.
type Term interface {
	isTerm()
	fmt.Stringer
}

// ByTerm solves for the level payment that retires the loan in Periods months.
type ByTerm struct {
	Periods int
}

// ByPayment solves for the number of months a fixed Payment needs.
type ByPayment struct {
	Payment float64
}

func (ByTerm) isTerm()    {}
func (ByPayment) isTerm() {}

func (t ByTerm) String() string    { return fmt.Sprintf("term of %d periods", t.Periods) }
func (t ByPayment) String() string { return fmt.Sprintf("payment of %.2f", t.Payment) }

// Method is the amortization convention.
type Method string

const (
	// MethodDecliningBalance computes each period's interest on the remaining
	// principal and iterates until the balance is retired.
	MethodDecliningBalance Method = "declining"

	// MethodAnnuity keeps the payment equal across the life of the loan.
	MethodAnnuity Method = "annuity"
)

// ParseMethod converts a configuration or flag value into a Method. An empty
// value selects the declining-balance convention.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "declining", "declining-balance", "declining_balance":
		return MethodDecliningBalance, nil
	case "annuity", "equal-payment", "equal_payment":
		return MethodAnnuity, nil
	default:
		return "", fmt.Errorf("%w: unknown amortization method %q", ErrInvalidInput, s)
	}
}

// Payment holds the values for a single schedule row.
type Payment struct {
	Period             int     `json:"period" yaml:"period"`
	Payment            float64 `json:"payment" yaml:"payment"`
	Principal          float64 `json:"principal" yaml:"principal"`
	Interest           float64 `json:"interest" yaml:"interest"`
	RemainingPrincipal float64 `json:"remainingPrincipal" yaml:"remainingPrincipal"`
	CumulativeInterest float64 `json:"cumulativeInterest" yaml:"cumulativeInterest"`
}

// Result is a complete amortization schedule with its totals. MonthlyPayment
// is set when solved by term, TotalPeriods when solved by payment.
type Result struct {
	Principal      float64   `json:"principal" yaml:"principal"`
	Schedule       []Payment `json:"schedule" yaml:"schedule"`
	MonthlyPayment *float64  `json:"monthlyPayment,omitempty" yaml:"monthlyPayment,omitempty"`
	TotalPeriods   *int      `json:"totalPeriods,omitempty" yaml:"totalPeriods,omitempty"`
	TotalInterest  float64   `json:"totalInterest" yaml:"totalInterest"`
	TotalAmount    float64   `json:"totalAmount" yaml:"totalAmount"`
}

// Periods returns the number of rows in the schedule.
func (r *Result) Periods() int {
	return len(r.Schedule)
}

func validateLoan(principal, annualRatePercent float64, term Term) error {
	if !mathutil.IsFinite(principal) || principal <= 0 {
		return fmt.Errorf("%w: principal must be positive, got %v", ErrInvalidInput, principal)
	}
	if !mathutil.IsFinite(annualRatePercent) || annualRatePercent < 0 {
		return fmt.Errorf("%w: annual rate must be non-negative, got %v", ErrInvalidInput, annualRatePercent)
	}
	switch t := term.(type) {
	case ByTerm:
		if t.Periods < 1 {
			return fmt.Errorf("%w: term must be at least one period, got %d", ErrInvalidInput, t.Periods)
		}
	case ByPayment:
		if !mathutil.IsFinite(t.Payment) || t.Payment <= 0 {
			return fmt.Errorf("%w: payment must be positive, got %v", ErrInvalidInput, t.Payment)
		}
	default:
		return fmt.Errorf("%w: a term or a payment is required", ErrInvalidInput)
	}
	return nil
}
