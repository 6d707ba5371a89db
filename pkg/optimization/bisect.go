package optimization

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/finance-calculators/pkg/constants"
)

var (
	// ErrSaturated is returned when the target is not reached even at the
	// upper search bound, so any answer would be pinned to that bound.
	ErrSaturated = errors.New("search saturated at upper bound")

	// ErrInvalidProblem is returned for malformed search bounds.
	ErrInvalidProblem = errors.New("invalid search problem")
)

// Problem describes a bisection over a continuous interval. The evaluated
// function must be non-decreasing on [Lower, Upper].
type Problem struct {
	Lower         float64
	Upper         float64
	Tolerance     float64
	Target        float64
	MaxIterations int
}

// Normalize applies default tolerance and iteration limits.
func (p *Problem) Normalize() {
	if p.Tolerance <= 0 {
		p.Tolerance = constants.RateTolerance
	}
	if p.MaxIterations <= 0 {
		p.MaxIterations = constants.DefaultMaxIterations
	}
}

// Validate returns an error when the problem cannot be searched.
func (p Problem) Validate() error {
	for _, v := range []float64{p.Lower, p.Upper, p.Tolerance, p.Target} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: bounds, tolerance and target must be finite", ErrInvalidProblem)
		}
	}
	if p.Upper < p.Lower {
		return fmt.Errorf("%w: upper bound %g is below lower bound %g", ErrInvalidProblem, p.Upper, p.Lower)
	}
	return nil
}

// IntProblem describes a bisection over the integers in [Lower, Upper]. It
// has no tolerance: the search stops when the bracket closes on one integer.
type IntProblem struct {
	Lower         int
	Upper         int
	Target        float64
	MaxIterations int
}

// Normalize applies the default iteration limit.
func (p *IntProblem) Normalize() {
	if p.MaxIterations <= 0 {
		p.MaxIterations = constants.DefaultMaxIterations
	}
}

// Validate returns an error when the problem cannot be searched.
func (p IntProblem) Validate() error {
	if math.IsNaN(p.Target) || math.IsInf(p.Target, 0) {
		return fmt.Errorf("%w: target must be finite", ErrInvalidProblem)
	}
	if p.Upper < p.Lower {
		return fmt.Errorf("%w: upper bound %d is below lower bound %d", ErrInvalidProblem, p.Upper, p.Lower)
	}
	return nil
}

// Result is the outcome of a bisection.
type Result struct {
	Value      float64
	Lower      float64
	Upper      float64
	Iterations int
	Converged  bool
	Saturated  bool
}

// Summary converts the result into a reportable Summary.
func (r Result) Summary(name string) Summary {
	summary := Summary{
		Name:       name,
		Value:      r.Value,
		Lower:      r.Lower,
		Upper:      r.Upper,
		Iterations: r.Iterations,
		Converged:  r.Converged,
		Saturated:  r.Saturated,
	}
	if r.Saturated {
		summary.Notes = append(summary.Notes, fmt.Sprintf("target not reached at upper bound %g", r.Upper))
	} else if !r.Converged {
		summary.Notes = append(summary.Notes, fmt.Sprintf("stopped after %d iterations with bracket [%g, %g]", r.Iterations, r.Lower, r.Upper))
	}
	return summary
}

// Bisect narrows [Lower, Upper] around the point where evaluate crosses
// Target and returns the midpoint of the final bracket. When evaluate(Upper)
// is still below Target the result is pinned at Upper, flagged Saturated, and
// ErrSaturated is returned.
func Bisect(p Problem, evaluate func(float64) float64) (Result, error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	if evaluate(p.Upper) < p.Target {
		return Result{Value: p.Upper, Lower: p.Lower, Upper: p.Upper, Saturated: true},
			fmt.Errorf("%w: value at %g is below target %g", ErrSaturated, p.Upper, p.Target)
	}

	lower := p.Lower
	upper := p.Upper
	iterations := 0
	for iterations < p.MaxIterations && upper-lower > p.Tolerance {
		mid := lower + (upper-lower)/2
		if mid == lower || mid == upper {
			// Float resolution exhausted.
			break
		}
		iterations++
		if evaluate(mid) < p.Target {
			lower = mid
		} else {
			upper = mid
		}
	}

	return Result{
		Value:      lower + (upper-lower)/2,
		Lower:      lower,
		Upper:      upper,
		Iterations: iterations,
		Converged:  upper-lower <= p.Tolerance,
	}, nil
}

// BisectInt returns the smallest integer n in [Lower, Upper] for which
// evaluate(n) >= Target. Saturation is reported as in Bisect.
func BisectInt(p IntProblem, evaluate func(int) float64) (Result, error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	if evaluate(p.Upper) < p.Target {
		return Result{Value: float64(p.Upper), Lower: float64(p.Lower), Upper: float64(p.Upper), Saturated: true},
			fmt.Errorf("%w: value at %d is below target %g", ErrSaturated, p.Upper, p.Target)
	}

	lower := p.Lower
	upper := p.Upper
	iterations := 0
	for iterations < p.MaxIterations && lower < upper {
		mid := lower + (upper-lower)/2
		iterations++
		if evaluate(mid) < p.Target {
			lower = mid + 1
		} else {
			upper = mid
		}
	}

	return Result{
		Value:      float64(lower),
		Lower:      float64(lower),
		Upper:      float64(upper),
		Iterations: iterations,
		Converged:  lower == upper,
	}, nil
}
