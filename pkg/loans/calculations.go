package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/finance-calculators/pkg/constants"
)

// periodSlack absorbs float noise when a payment count is an exact integer.
const periodSlack = 1e-9

// MonthlyRate converts an annual percentage rate into the monthly fraction.
func MonthlyRate(annualInterestRate float64) float64 {
	return annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the standard amortization formula.
func CalculateMonthlyPayment(principal, annualInterestRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}

	periodicInterestRate := MonthlyRate(annualInterestRate)
	power := math.Pow((1.00 + periodicInterestRate), float64(termMonths))
	discountFactor := (power - 1.00) / power
	return principal * periodicInterestRate / discountFactor
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * MonthlyRate(annualInterestRate)
}

// Amortize dispatches to the schedule generator for the given method.
func Amortize(method Method, principal, annualInterestRate float64, term Term) (*Result, error) {
	switch method {
	case MethodDecliningBalance, "":
		return AmortizeDecliningBalance(principal, annualInterestRate, term)
	case MethodAnnuity:
		return AmortizeAnnuity(principal, annualInterestRate, term)
	default:
		return nil, fmt.Errorf("%w: unknown amortization method %q", ErrInvalidInput, method)
	}
}

// AmortizeDecliningBalance builds a schedule where each period's interest is
// charged on the remaining principal and the rest of the payment retires
// principal, never more than the balance.
func AmortizeDecliningBalance(principal, annualInterestRate float64, term Term) (*Result, error) {
	if err := validateLoan(principal, annualInterestRate, term); err != nil {
		return nil, err
	}

	s := newSchedule(principal, annualInterestRate)
	switch t := term.(type) {
	case ByTerm:
		monthlyPayment := CalculateMonthlyPayment(principal, annualInterestRate, t.Periods)
		for s.balance > constants.BalanceEpsilon && s.period() < t.Periods {
			s.pay(monthlyPayment)
		}
		return s.result(&monthlyPayment, nil), nil

	case ByPayment:
		for s.balance > constants.BalanceEpsilon {
			if s.period() >= constants.MaxLoanPeriods {
				return nil, fmt.Errorf("%w: balance of %.2f remains after %d periods",
					ErrNonAmortizingPayment, s.balance, constants.MaxLoanPeriods)
			}
			interest := s.balance * s.rate
			if t.Payment <= interest {
				return nil, fmt.Errorf("%w: payment %.2f does not exceed interest %.2f in period %d",
					ErrNonAmortizingPayment, t.Payment, interest, s.period()+1)
			}
			s.pay(t.Payment)
		}
		periods := s.period()
		return s.result(nil, &periods), nil
	}

	return nil, fmt.Errorf("%w: a term or a payment is required", ErrInvalidInput)
}

// AmortizeAnnuity builds an equal-payment schedule. Solved by term, every row
// carries the same level payment. Solved by payment, the number of periods is
// found in closed form and the final row is truncated to the balance.
func AmortizeAnnuity(principal, annualInterestRate float64, term Term) (*Result, error) {
	if err := validateLoan(principal, annualInterestRate, term); err != nil {
		return nil, err
	}

	s := newSchedule(principal, annualInterestRate)
	switch t := term.(type) {
	case ByTerm:
		monthlyPayment := CalculateMonthlyPayment(principal, annualInterestRate, t.Periods)
		for period := 1; period <= t.Periods; period++ {
			s.payLevel(monthlyPayment)
		}
		return s.result(&monthlyPayment, nil), nil

	case ByPayment:
		periods, err := annuityPeriods(principal, s.rate, t.Payment)
		if err != nil {
			return nil, err
		}
		for period := 1; period <= periods; period++ {
			s.pay(t.Payment)
		}
		count := s.period()
		return s.result(nil, &count), nil
	}

	return nil, fmt.Errorf("%w: a term or a payment is required", ErrInvalidInput)
}

// annuityPeriods inverts the level-payment formula for n.
func annuityPeriods(principal, monthlyRate, payment float64) (int, error) {
	var n float64
	if monthlyRate == 0 {
		n = principal / payment
	} else {
		x := 1 - principal*monthlyRate/payment
		if x <= 0 || x >= 1 {
			return 0, fmt.Errorf("%w: payment %.2f does not exceed first-period interest %.2f",
				ErrNonAmortizingPayment, payment, principal*monthlyRate)
		}
		n = -math.Log(x) / math.Log(1+monthlyRate)
	}

	periods := int(math.Ceil(n - periodSlack))
	if periods < 1 {
		periods = 1
	}
	if periods > constants.MaxLoanPeriods {
		return 0, fmt.Errorf("%w: payment %.2f needs %d periods, more than the %d supported",
			ErrNonAmortizingPayment, payment, periods, constants.MaxLoanPeriods)
	}
	return periods, nil
}

// schedule accumulates rows while a loan is paid down.
type schedule struct {
	principal     float64
	rate          float64
	balance       float64
	totalInterest float64
	rows          []Payment
}

func newSchedule(principal, annualInterestRate float64) *schedule {
	return &schedule{
		principal: principal,
		rate:      MonthlyRate(annualInterestRate),
		balance:   principal,
	}
}

func (s *schedule) period() int {
	return len(s.rows)
}

// pay applies a payment, retiring at most the remaining balance.
func (s *schedule) pay(payment float64) {
	interest := s.balance * s.rate
	principal := math.Min(payment-interest, s.balance)
	s.record(principal+interest, principal, interest)
}

// payLevel applies the full level payment regardless of the balance.
func (s *schedule) payLevel(payment float64) {
	interest := s.balance * s.rate
	s.record(payment, payment-interest, interest)
}

func (s *schedule) record(payment, principal, interest float64) {
	s.balance -= principal
	s.totalInterest += interest
	s.rows = append(s.rows, Payment{
		Period:             len(s.rows) + 1,
		Payment:            payment,
		Principal:          principal,
		Interest:           interest,
		RemainingPrincipal: math.Max(0, s.balance),
		CumulativeInterest: s.totalInterest,
	})
}

func (s *schedule) result(monthlyPayment *float64, totalPeriods *int) *Result {
	return &Result{
		Principal:      s.principal,
		Schedule:       s.rows,
		MonthlyPayment: monthlyPayment,
		TotalPeriods:   totalPeriods,
		TotalInterest:  s.totalInterest,
		TotalAmount:    s.principal + s.totalInterest,
	}
}
