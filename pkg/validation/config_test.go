package validation

import (
	"strings"
	"testing"
)

func floatPtr(v float64) *float64 {
	return &v
}

func containsWarning(warnings []string, fragment string) bool {
	for _, w := range warnings {
		if strings.Contains(w, fragment) {
			return true
		}
	}
	return false
}

func TestValidateLoan(t *testing.T) {
	tests := []struct {
		name     string
		loan     LoanConfig
		expected []string
	}{
		{
			name: "Valid loan by term",
			loan: LoanConfig{Name: "Mortgage", Principal: 100000, AnnualRate: 5.5, Term: 360},
		},
		{
			name: "Valid loan by payment with fee",
			loan: LoanConfig{Name: "Car", Principal: 20000, AnnualRate: 4, Payment: 400, FeePercent: floatPtr(1)},
		},
		{
			name:     "Non-positive principal",
			loan:     LoanConfig{Name: "Empty", Principal: 0, AnnualRate: 5, Term: 12},
			expected: []string{"non-positive principal"},
		},
		{
			name:     "Negative rate",
			loan:     LoanConfig{Name: "Odd", Principal: 1000, AnnualRate: -1, Term: 12},
			expected: []string{"negative annual rate"},
		},
		{
			name:     "Term and payment",
			loan:     LoanConfig{Name: "Both", Principal: 1000, AnnualRate: 5, Term: 12, Payment: 100},
			expected: []string{"payment 100.00 is ignored"},
		},
		{
			name:     "Neither term nor payment",
			loan:     LoanConfig{Name: "Neither", Principal: 1000, AnnualRate: 5},
			expected: []string{"neither a term nor a payment"},
		},
		{
			name:     "Term beyond cap",
			loan:     LoanConfig{Name: "Long", Principal: 1000, AnnualRate: 5, Term: 720},
			expected: []string{"exceeds 600"},
		},
		{
			name:     "Negative fee at high rate",
			loan:     LoanConfig{Name: "Fee", Principal: 1000, AnnualRate: 55, Term: 12, FeePercent: floatPtr(-2)},
			expected: []string{"negative fee", "search limit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := ValidateLoan(tt.loan)
			if len(warnings) != len(tt.expected) {
				t.Fatalf("expected %d warnings, got %d: %v", len(tt.expected), len(warnings), warnings)
			}
			for _, fragment := range tt.expected {
				if !containsWarning(warnings, fragment) {
					t.Errorf("expected a warning containing %q, got %v", fragment, warnings)
				}
			}
		})
	}
}

func TestValidateInvestment(t *testing.T) {
	tests := []struct {
		name       string
		investment InvestmentConfig
		expected   []string
	}{
		{
			name:       "One blank field",
			investment: InvestmentConfig{Name: "Retirement", Blank: 1, AnnualRate: floatPtr(7)},
		},
		{
			name:       "Two blank fields",
			investment: InvestmentConfig{Name: "Vague", Blank: 2},
			expected:   []string{"found 2"},
		},
		{
			name:       "Nothing blank",
			investment: InvestmentConfig{Name: "Full", Blank: 0, AnnualRate: floatPtr(5)},
			expected:   []string{"found 0"},
		},
		{
			name:       "Rate above solver limit",
			investment: InvestmentConfig{Name: "Greedy", Blank: 1, AnnualRate: floatPtr(75)},
			expected:   []string{"solver limit"},
		},
		{
			name:       "Schedule without rate",
			investment: InvestmentConfig{Name: "Irregular", HasSchedule: true, Blank: 3},
			expected:   []string{"no annual rate"},
		},
		{
			name:       "Schedule with rate ignores blanks",
			investment: InvestmentConfig{Name: "Irregular", HasSchedule: true, Blank: 3, AnnualRate: floatPtr(5)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := ValidateInvestment(tt.investment)
			if len(warnings) != len(tt.expected) {
				t.Fatalf("expected %d warnings, got %d: %v", len(tt.expected), len(warnings), warnings)
			}
			for _, fragment := range tt.expected {
				if !containsWarning(warnings, fragment) {
					t.Errorf("expected a warning containing %q, got %v", fragment, warnings)
				}
			}
		})
	}
}

func TestConfigValidatorValidateAll(t *testing.T) {
	t.Run("Empty batch", func(t *testing.T) {
		cv := &ConfigValidator{}
		warnings := cv.ValidateAll()
		if !containsWarning(warnings, "No loans or investments") {
			t.Errorf("expected empty batch warning, got %v", warnings)
		}
	})

	t.Run("Duplicate names", func(t *testing.T) {
		cv := &ConfigValidator{
			Loans: []LoanConfig{
				{Name: "Plan", Principal: 1000, AnnualRate: 5, Term: 12},
			},
			Investments: []InvestmentConfig{
				{Name: "Plan", Blank: 1},
			},
		}
		warnings := cv.ValidateAll()
		if len(warnings) != 1 || !containsWarning(warnings, "Duplicate calculation name 'Plan' (investment)") {
			t.Errorf("expected one duplicate warning, got %v", warnings)
		}
	})

	t.Run("Clean batch", func(t *testing.T) {
		cv := &ConfigValidator{
			Loans: []LoanConfig{
				{Name: "Mortgage", Principal: 100000, AnnualRate: 5.5, Term: 360},
			},
			Investments: []InvestmentConfig{
				{Name: "Retirement", Blank: 1, AnnualRate: floatPtr(7)},
			},
		}
		if warnings := cv.ValidateAll(); len(warnings) != 0 {
			t.Errorf("expected no warnings, got %v", warnings)
		}
	})
}
