package loans

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/finance-calculators/pkg/optimization"
)

func TestLoanWithFee(t *testing.T) {
	tests := []struct {
		name         string
		principal    float64
		feePercent   float64
		rate         float64
		term         Term
		expectedFee  float64
		expectedRate float64
	}{
		{
			name:         "No fee recovers nominal rate",
			principal:    100000,
			feePercent:   0,
			rate:         5,
			term:         ByTerm{Periods: 360},
			expectedFee:  0,
			expectedRate: 5.0,
		},
		{
			name:         "Two percent fee on a mortgage",
			principal:    100000,
			feePercent:   2,
			rate:         5,
			term:         ByTerm{Periods: 360},
			expectedFee:  2000,
			expectedRate: 5.1749,
		},
		{
			name:         "Fee solved by payment",
			principal:    10000,
			feePercent:   3,
			rate:         6,
			term:         ByPayment{Payment: 500},
			expectedFee:  300,
			expectedRate: 10.1366,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := LoanWithFee(tt.principal, tt.feePercent, tt.rate, tt.term)
			if err != nil {
				t.Fatalf("LoanWithFee() error = %v", err)
			}
			if math.Abs(result.InitialFee-tt.expectedFee) > 0.01 {
				t.Errorf("InitialFee = %.2f, expected %.2f", result.InitialFee, tt.expectedFee)
			}
			if math.Abs(result.EquivalentInterestRate-tt.expectedRate) > 1e-3 {
				t.Errorf("EquivalentInterestRate = %.4f, expected %.4f", result.EquivalentInterestRate, tt.expectedRate)
			}
			if result.EquivalentInterestRate < 0 {
				t.Errorf("EquivalentInterestRate must be non-negative, got %v", result.EquivalentInterestRate)
			}
			if !result.Search.Converged {
				t.Errorf("expected the rate search to converge, got %+v", result.Search)
			}
			if math.Abs(result.Principal-(tt.principal+tt.expectedFee)) > 0.01 {
				t.Errorf("schedule principal = %.2f, expected fee-inclusive %.2f", result.Principal, tt.principal+tt.expectedFee)
			}
			checkScheduleInvariants(t, result.Principal, &result.Result)
		})
	}
}

func TestLoanWithFeeMonotonicity(t *testing.T) {
	previous := -1.0
	for _, fee := range []float64{0, 0.5, 1, 2, 5, 10} {
		result, err := LoanWithFee(100000, fee, 5, ByTerm{Periods: 360})
		if err != nil {
			t.Fatalf("LoanWithFee(fee=%v) error = %v", fee, err)
		}
		if result.EquivalentInterestRate <= previous {
			t.Errorf("fee %v%%: equivalent rate %.6f did not increase over %.6f", fee, result.EquivalentInterestRate, previous)
		}
		previous = result.EquivalentInterestRate
	}
}

func TestLoanWithFeeAnnuity(t *testing.T) {
	declining, err := LoanWithFeeMethod(MethodDecliningBalance, 100000, 2, 5, ByTerm{Periods: 360})
	if err != nil {
		t.Fatalf("LoanWithFeeMethod(declining) error = %v", err)
	}
	annuity, err := LoanWithFeeMethod(MethodAnnuity, 100000, 2, 5, ByTerm{Periods: 360})
	if err != nil {
		t.Fatalf("LoanWithFeeMethod(annuity) error = %v", err)
	}
	if math.Abs(declining.EquivalentInterestRate-annuity.EquivalentInterestRate) > 1e-6 {
		t.Errorf("level payments agree so equivalent rates should too: %.6f vs %.6f",
			declining.EquivalentInterestRate, annuity.EquivalentInterestRate)
	}
}

func TestLoanWithFeeErrors(t *testing.T) {
	tests := []struct {
		name       string
		principal  float64
		feePercent float64
		rate       float64
		term       Term
		expected   error
	}{
		{"Negative fee", 10000, -1, 5, ByTerm{Periods: 12}, ErrInvalidInput},
		{"Zero principal", 0, 1, 5, ByTerm{Periods: 12}, ErrInvalidInput},
		{"Missing term", 10000, 1, 5, nil, ErrInvalidInput},
		// 10300 at 12% accrues 103 of interest, above the 102 payment.
		{"Fee makes payment non-amortizing", 10000, 3, 12, ByPayment{Payment: 102}, ErrNonAmortizingPayment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := LoanWithFee(tt.principal, tt.feePercent, tt.rate, tt.term)
			if !errors.Is(err, tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, err)
			}
			if result != nil {
				t.Error("expected no result on failure")
			}
		})
	}
}

func TestEquivalentRate(t *testing.T) {
	payment := CalculateMonthlyPayment(100000, 7.25, 360)
	result, err := EquivalentRate(100000, payment, 360)
	if err != nil {
		t.Fatalf("EquivalentRate() error = %v", err)
	}
	if math.Abs(result.Value-7.25) > 1e-4 {
		t.Errorf("EquivalentRate() = %.6f, expected 7.25", result.Value)
	}
	if result.Upper-result.Lower > 1e-4 {
		t.Errorf("final bracket [%v, %v] wider than tolerance", result.Lower, result.Upper)
	}
}

func TestEquivalentRateSaturated(t *testing.T) {
	// Even 50% a year only costs about 1075.85 a month on 10000 over 12 months.
	result, err := EquivalentRate(10000, 2000, 12)
	if !errors.Is(err, ErrNoEquivalentRate) {
		t.Fatalf("expected ErrNoEquivalentRate, got %v", err)
	}
	if !errors.Is(err, optimization.ErrSaturated) {
		t.Errorf("expected error to wrap optimization.ErrSaturated, got %v", err)
	}
	if !result.Saturated {
		t.Errorf("expected a saturated result, got %+v", result)
	}
}

func TestEquivalentRateInvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		payment   float64
		periods   int
	}{
		{"Zero principal", 0, 100, 12},
		{"Zero payment", 1000, 0, 12},
		{"Zero periods", 1000, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := EquivalentRate(tt.principal, tt.payment, tt.periods); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
