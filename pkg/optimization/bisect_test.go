package optimization

import (
	"errors"
	"math"
	"testing"
)

func TestBisect(t *testing.T) {
	tests := []struct {
		name      string
		problem   Problem
		evaluate  func(float64) float64
		expected  float64
		tolerance float64
	}{
		{
			name:      "Square root of two",
			problem:   Problem{Lower: 0, Upper: 2, Tolerance: 1e-9, Target: 2},
			evaluate:  func(x float64) float64 { return x * x },
			expected:  math.Sqrt2,
			tolerance: 1e-8,
		},
		{
			name:      "Linear crossing",
			problem:   Problem{Lower: 0, Upper: 50, Tolerance: 1e-4, Target: 30},
			evaluate:  func(x float64) float64 { return 3 * x },
			expected:  10,
			tolerance: 1e-4,
		},
		{
			name:      "Target met at lower bound",
			problem:   Problem{Lower: 0, Upper: 50, Tolerance: 1e-4, Target: 0},
			evaluate:  func(x float64) float64 { return x },
			expected:  0,
			tolerance: 1e-4,
		},
		{
			name:      "Default tolerance applied",
			problem:   Problem{Lower: 0, Upper: 50, Target: 7.5},
			evaluate:  func(x float64) float64 { return x },
			expected:  7.5,
			tolerance: 1e-4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Bisect(tt.problem, tt.evaluate)
			if err != nil {
				t.Fatalf("Bisect() error = %v", err)
			}
			if math.Abs(result.Value-tt.expected) > tt.tolerance {
				t.Errorf("Bisect() = %v, expected %v", result.Value, tt.expected)
			}
			if !result.Converged {
				t.Errorf("expected search to converge, got %+v", result)
			}
			if result.Saturated {
				t.Errorf("did not expect saturation, got %+v", result)
			}
		})
	}
}

func TestBisectIterationCount(t *testing.T) {
	result, err := Bisect(Problem{Lower: 0, Upper: 50, Tolerance: 1e-4, Target: 12.3456}, func(x float64) float64 { return x })
	if err != nil {
		t.Fatalf("Bisect() error = %v", err)
	}
	// log2(50 / 1e-4) rounds up to 19 halvings.
	if result.Iterations != 19 {
		t.Errorf("expected 19 iterations, got %d", result.Iterations)
	}
	if result.Upper-result.Lower > 1e-4 {
		t.Errorf("final bracket wider than tolerance: [%v, %v]", result.Lower, result.Upper)
	}
}

func TestBisectSaturated(t *testing.T) {
	result, err := Bisect(Problem{Lower: 0, Upper: 50, Target: 100}, func(x float64) float64 { return x })
	if !errors.Is(err, ErrSaturated) {
		t.Fatalf("expected ErrSaturated, got %v", err)
	}
	if !result.Saturated {
		t.Error("expected result to be flagged saturated")
	}
	if result.Value != 50 {
		t.Errorf("expected value pinned at upper bound, got %v", result.Value)
	}
}

func TestBisectMaxIterations(t *testing.T) {
	result, err := Bisect(Problem{Lower: 0, Upper: 50, Tolerance: 1e-12, Target: 10, MaxIterations: 3}, func(x float64) float64 { return x })
	if err != nil {
		t.Fatalf("Bisect() error = %v", err)
	}
	if result.Iterations != 3 {
		t.Errorf("expected 3 iterations, got %d", result.Iterations)
	}
	if result.Converged {
		t.Error("expected search to stop before converging")
	}
}

func TestBisectInvalidProblem(t *testing.T) {
	tests := []struct {
		name    string
		problem Problem
	}{
		{"Inverted bounds", Problem{Lower: 10, Upper: 0, Target: 1}},
		{"NaN target", Problem{Lower: 0, Upper: 10, Target: math.NaN()}},
		{"Infinite upper", Problem{Lower: 0, Upper: math.Inf(1), Target: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Bisect(tt.problem, func(x float64) float64 { return x })
			if !errors.Is(err, ErrInvalidProblem) {
				t.Errorf("expected ErrInvalidProblem, got %v", err)
			}
		})
	}
}

func TestBisectInt(t *testing.T) {
	tests := []struct {
		name     string
		problem  IntProblem
		evaluate func(int) float64
		expected float64
	}{
		{
			name:     "Smallest square above 50",
			problem:  IntProblem{Lower: 0, Upper: 600, Target: 50},
			evaluate: func(n int) float64 { return float64(n * n) },
			expected: 8,
		},
		{
			name:     "Exact hit",
			problem:  IntProblem{Lower: 0, Upper: 600, Target: 120},
			evaluate: func(n int) float64 { return float64(n) * 10 },
			expected: 12,
		},
		{
			name:     "Already met at lower bound",
			problem:  IntProblem{Lower: 0, Upper: 600, Target: 0},
			evaluate: func(n int) float64 { return float64(n) },
			expected: 0,
		},
		{
			name:     "Met only at upper bound",
			problem:  IntProblem{Lower: 0, Upper: 600, Target: 600},
			evaluate: func(n int) float64 { return float64(n) },
			expected: 600,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := BisectInt(tt.problem, tt.evaluate)
			if err != nil {
				t.Fatalf("BisectInt() error = %v", err)
			}
			if result.Value != tt.expected {
				t.Errorf("BisectInt() = %v, expected %v", result.Value, tt.expected)
			}
			if !result.Converged {
				t.Errorf("expected convergence, got %+v", result)
			}
		})
	}
}

func TestBisectIntSaturated(t *testing.T) {
	result, err := BisectInt(IntProblem{Lower: 0, Upper: 600, Target: 601}, func(n int) float64 { return float64(n) })
	if !errors.Is(err, ErrSaturated) {
		t.Fatalf("expected ErrSaturated, got %v", err)
	}
	if !result.Saturated || result.Value != 600 {
		t.Errorf("expected saturated result pinned at 600, got %+v", result)
	}
}

func TestResultSummary(t *testing.T) {
	converged := Result{Value: 4.2, Lower: 4.19995, Upper: 4.20005, Iterations: 19, Converged: true}
	summary := converged.Summary("equivalentRate")
	if summary.Name != "equivalentRate" || summary.Value != 4.2 || summary.Iterations != 19 {
		t.Errorf("unexpected summary %+v", summary)
	}
	if len(summary.Notes) != 0 {
		t.Errorf("expected no notes for a converged search, got %v", summary.Notes)
	}

	saturated := Result{Value: 50, Lower: 0, Upper: 50, Saturated: true}
	if notes := saturated.Summary("rate").Notes; len(notes) != 1 {
		t.Errorf("expected one note for a saturated search, got %v", notes)
	}

	stalled := Result{Value: 5, Lower: 0, Upper: 10, Iterations: 1}
	if notes := stalled.Summary("rate").Notes; len(notes) != 1 {
		t.Errorf("expected one note for a stalled search, got %v", notes)
	}
}
