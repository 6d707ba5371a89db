package finance

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/optimization"
)

// periodSlack absorbs float noise when a period count is an exact integer.
const periodSlack = 1e-9

// Field names one of the five quantities describing a recurring investment.
type Field int

const (
	FieldInitialAmount Field = iota + 1
	FieldPeriodicAmount
	FieldPeriods
	FieldRate
	FieldFinalValue
)

var fieldNames = map[Field]string{
	FieldInitialAmount:  "initialAmount",
	FieldPeriodicAmount: "periodicAmount",
	FieldPeriods:        "periods",
	FieldRate:           "rate",
	FieldFinalValue:     "finalValue",
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// ParseField accepts a field name in camel, kebab or snake case.
func ParseField(s string) (Field, error) {
	normalized := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	for f, name := range fieldNames {
		if normalized == strings.ToLower(name) {
			return f, nil
		}
	}
	if normalized == "annualrate" {
		return FieldRate, nil
	}
	return 0, fmt.Errorf("%w: unknown field %q", ErrInvalidInput, s)
}

// MarshalText renders the field by name.
func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText parses a field name.
func (f *Field) UnmarshalText(text []byte) error {
	parsed, err := ParseField(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Unknown identifies the quantity to solve for and carries the four known
// values. The implementations are UnknownInitialAmount, UnknownPeriodicAmount,
// UnknownPeriods, UnknownRate and UnknownFinalValue.
type Unknown interface {
	Field() Field
	solve(freq Frequency) (float64, error)
	project(solved float64, freq Frequency) (*InvestmentResult, error)
}

// UnknownInitialAmount solves for the starting capital.
type UnknownInitialAmount struct {
	PeriodicAmount float64
	Periods        int
	AnnualRate     float64
	FinalValue     float64
}

// UnknownPeriodicAmount solves for the deposit made each period.
type UnknownPeriodicAmount struct {
	InitialAmount float64
	Periods       int
	AnnualRate    float64
	FinalValue    float64
}

// UnknownPeriods solves for the number of periods.
type UnknownPeriods struct {
	InitialAmount  float64
	PeriodicAmount float64
	AnnualRate     float64
	FinalValue     float64
}

// UnknownRate solves for the annual rate in percent.
type UnknownRate struct {
	InitialAmount  float64
	PeriodicAmount float64
	Periods        int
	FinalValue     float64
}

// UnknownFinalValue projects the final value.
type UnknownFinalValue struct {
	InitialAmount  float64
	PeriodicAmount float64
	Periods        int
	AnnualRate     float64
}

func (UnknownInitialAmount) Field() Field  { return FieldInitialAmount }
func (UnknownPeriodicAmount) Field() Field { return FieldPeriodicAmount }
func (UnknownPeriods) Field() Field        { return FieldPeriods }
func (UnknownRate) Field() Field           { return FieldRate }
func (UnknownFinalValue) Field() Field     { return FieldFinalValue }

func (u UnknownInitialAmount) solve(freq Frequency) (float64, error) {
	return SolveInitialAmount(u.PeriodicAmount, u.Periods, u.AnnualRate, u.FinalValue, freq)
}

func (u UnknownInitialAmount) project(solved float64, freq Frequency) (*InvestmentResult, error) {
	return ProjectFlat(u.PeriodicAmount, u.Periods, u.AnnualRate, solved, freq)
}

func (u UnknownPeriodicAmount) solve(freq Frequency) (float64, error) {
	return SolvePeriodicAmount(u.InitialAmount, u.Periods, u.AnnualRate, u.FinalValue, freq)
}

func (u UnknownPeriodicAmount) project(solved float64, freq Frequency) (*InvestmentResult, error) {
	return ProjectFlat(solved, u.Periods, u.AnnualRate, u.InitialAmount, freq)
}

func (u UnknownPeriods) solve(freq Frequency) (float64, error) {
	periods, err := SolvePeriods(u.InitialAmount, u.PeriodicAmount, u.AnnualRate, u.FinalValue, freq)
	return float64(periods), err
}

func (u UnknownPeriods) project(solved float64, freq Frequency) (*InvestmentResult, error) {
	return ProjectFlat(u.PeriodicAmount, int(solved), u.AnnualRate, u.InitialAmount, freq)
}

func (u UnknownRate) solve(freq Frequency) (float64, error) {
	return SolveRate(u.InitialAmount, u.PeriodicAmount, u.Periods, u.FinalValue, freq)
}

func (u UnknownRate) project(solved float64, freq Frequency) (*InvestmentResult, error) {
	return ProjectFlat(u.PeriodicAmount, u.Periods, solved, u.InitialAmount, freq)
}

func (u UnknownFinalValue) solve(freq Frequency) (float64, error) {
	return SolveFinalValue(u.InitialAmount, u.PeriodicAmount, u.Periods, u.AnnualRate, freq)
}

func (u UnknownFinalValue) project(_ float64, freq Frequency) (*InvestmentResult, error) {
	return ProjectFlat(u.PeriodicAmount, u.Periods, u.AnnualRate, u.InitialAmount, freq)
}

// Solve computes the unknown quantity, then projects the completed inputs and
// tags the result with the solved field and value.
func Solve(u Unknown, freq Frequency) (float64, *InvestmentResult, error) {
	if u == nil {
		return 0, nil, fmt.Errorf("%w: no unknown field given", ErrInvalidInput)
	}

	value, err := u.solve(freq)
	if err != nil {
		return 0, nil, fmt.Errorf("solving %s: %w", u.Field(), err)
	}

	result, err := u.project(value, freq)
	if err != nil {
		return 0, nil, fmt.Errorf("projecting solved %s: %w", u.Field(), err)
	}

	field := u.Field()
	result.SolvedField = &field
	result.SolvedValue = &value
	return value, result, nil
}

// SolveInitialAmount returns the starting capital needed to reach
// finalValue, or 0 when the deposits alone reach it.
func SolveInitialAmount(periodicAmount float64, periods int, annualRatePercent, finalValue float64, freq Frequency) (float64, error) {
	if err := validateKnown(freq, annualRatePercent, periods, periodicAmount, finalValue); err != nil {
		return 0, err
	}

	rate := freq.PeriodicRate(annualRatePercent)
	fvAnnuity := periodicAmount * mathutil.AnnuityFactor(rate, periods)
	required := (finalValue - fvAnnuity) / mathutil.GrowthFactor(rate, periods)
	return math.Max(0, required), nil
}

// SolvePeriodicAmount returns the deposit per period needed to reach
// finalValue, or 0 when the initial amount alone reaches it.
func SolvePeriodicAmount(initialAmount float64, periods int, annualRatePercent, finalValue float64, freq Frequency) (float64, error) {
	if err := validateKnown(freq, annualRatePercent, periods, initialAmount, finalValue); err != nil {
		return 0, err
	}

	rate := freq.PeriodicRate(annualRatePercent)
	requiredFvAnnuity := finalValue - initialAmount*mathutil.GrowthFactor(rate, periods)
	if requiredFvAnnuity <= 0 {
		return 0, nil
	}
	if periods == 0 {
		return 0, fmt.Errorf("%w: %.2f short of target with no periods to contribute", ErrUnreachableTarget, requiredFvAnnuity)
	}
	return math.Max(0, requiredFvAnnuity/mathutil.AnnuityFactor(rate, periods)), nil
}

// SolvePeriods returns the fewest whole periods after which the projection
// reaches finalValue.
func SolvePeriods(initialAmount, periodicAmount, annualRatePercent, finalValue float64, freq Frequency) (int, error) {
	if err := validateKnown(freq, annualRatePercent, 0, initialAmount, periodicAmount, finalValue); err != nil {
		return 0, err
	}
	if initialAmount >= finalValue {
		return 0, nil
	}

	rate := freq.PeriodicRate(annualRatePercent)
	switch {
	case rate == 0:
		if periodicAmount == 0 {
			return 0, fmt.Errorf("%w: nothing grows without deposits or interest", ErrUnreachableTarget)
		}
		return boundedPeriods((finalValue - initialAmount) / periodicAmount)

	case periodicAmount == 0:
		if initialAmount == 0 {
			return 0, fmt.Errorf("%w: nothing grows from a zero balance without deposits", ErrUnreachableTarget)
		}
		return boundedPeriods(math.Log(finalValue/initialAmount) / math.Log(1+rate))
	}

	problem := optimization.IntProblem{
		Lower:  0,
		Upper:  constants.MaxSolverPeriods,
		Target: finalValue,
	}
	result, err := optimization.BisectInt(problem, func(periods int) float64 {
		return flatFinalValue(initialAmount, periodicAmount, periods, rate)
	})
	if errors.Is(err, optimization.ErrSaturated) {
		return 0, fmt.Errorf("%w: not reached within %d periods: %w", ErrUnreachableTarget, constants.MaxSolverPeriods, err)
	}
	if err != nil {
		return 0, err
	}
	return int(result.Value), nil
}

// SolveRate returns the annual rate in percent at which the projection
// reaches finalValue, or 0 when the deposits alone reach it.
func SolveRate(initialAmount, periodicAmount float64, periods int, finalValue float64, freq Frequency) (float64, error) {
	if err := validateKnown(freq, 0, periods, initialAmount, periodicAmount, finalValue); err != nil {
		return 0, err
	}

	if periods == 0 {
		if initialAmount >= finalValue {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: no periods to earn interest", ErrUnreachableTarget)
	}
	if finalValue <= initialAmount+periodicAmount*float64(periods) {
		return 0, nil
	}

	problem := optimization.Problem{
		Lower:     0,
		Upper:     constants.MaxSolverRatePercent,
		Tolerance: constants.RateTolerance,
		Target:    finalValue,
	}
	result, err := optimization.Bisect(problem, func(annualRatePercent float64) float64 {
		return flatFinalValue(initialAmount, periodicAmount, periods, freq.PeriodicRate(annualRatePercent))
	})
	if errors.Is(err, optimization.ErrSaturated) {
		return 0, fmt.Errorf("%w: not reached below %.0f%%: %w", ErrUnreachableTarget, constants.MaxSolverRatePercent, err)
	}
	if err != nil {
		return 0, err
	}
	return result.Value, nil
}

// SolveFinalValue projects the inputs and returns the final value.
func SolveFinalValue(initialAmount, periodicAmount float64, periods int, annualRatePercent float64, freq Frequency) (float64, error) {
	result, err := ProjectFlat(periodicAmount, periods, annualRatePercent, initialAmount, freq)
	if err != nil {
		return 0, err
	}
	return result.FinalValue, nil
}

// boundedPeriods rounds a closed-form period count up to whole periods and
// applies the same upper bound as the period search.
func boundedPeriods(n float64) (int, error) {
	if !mathutil.IsFinite(n) || n-periodSlack > constants.MaxSolverPeriods {
		return 0, fmt.Errorf("%w: not reached within %d periods: %w", ErrUnreachableTarget, constants.MaxSolverPeriods, optimization.ErrSaturated)
	}
	return int(math.Max(0, math.Ceil(n-periodSlack))), nil
}

// validateKnown checks the frequency, rate and period count and that every
// amount is finite and non-negative.
func validateKnown(freq Frequency, annualRatePercent float64, periods int, amounts ...float64) error {
	if !freq.Valid() {
		return fmt.Errorf("%w: unsupported frequency %d", ErrInvalidInput, int(freq))
	}
	if !mathutil.IsFinite(annualRatePercent) || annualRatePercent < 0 {
		return fmt.Errorf("%w: annual rate must be non-negative, got %v", ErrInvalidInput, annualRatePercent)
	}
	if periods < 0 || periods > constants.MaxProjectionPeriods {
		return fmt.Errorf("%w: periods must be between 0 and %d, got %d", ErrInvalidInput, constants.MaxProjectionPeriods, periods)
	}
	for _, amount := range amounts {
		if !mathutil.IsFinite(amount) || amount < 0 {
			return fmt.Errorf("%w: amounts must be non-negative, got %v", ErrInvalidInput, amount)
		}
	}
	return nil
}
