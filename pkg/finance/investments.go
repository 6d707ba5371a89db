// Package finance projects recurring investments and solves for any one of
// their five interdependent quantities.
package finance

import (
	"errors"
	"fmt"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

var (
	// ErrInvalidInput is returned for inputs outside the supported domain.
	ErrInvalidInput = errors.New("invalid investment input")

	// ErrUnreachableTarget is returned when no value inside the search range
	// reaches the requested final value.
	ErrUnreachableTarget = errors.New("target final value is unreachable")
)

// Contribution is a deposit made at the end of a period.
type Contribution struct {
	Period int     `json:"period" yaml:"period" mapstructure:"period"`
	Amount float64 `json:"amount" yaml:"amount" mapstructure:"amount"`
}

// ContributionSchedule lists deposits by period. Periods without an entry
// receive nothing and entries sharing a period are added together.
type ContributionSchedule []Contribution

// FlatSchedule returns the same deposit for periods 1 through periods.
func FlatSchedule(periodicAmount float64, periods int) ContributionSchedule {
	if periods <= 0 {
		return ContributionSchedule{}
	}
	schedule := make(ContributionSchedule, periods)
	for i := range schedule {
		schedule[i] = Contribution{Period: i + 1, Amount: periodicAmount}
	}
	return schedule
}

// Periods returns the last period with an entry.
func (s ContributionSchedule) Periods() int {
	last := 0
	for _, c := range s {
		if c.Period > last {
			last = c.Period
		}
	}
	return last
}

// amounts returns the deposit for each period, indexed from 1.
func (s ContributionSchedule) amounts() []float64 {
	amounts := make([]float64, s.Periods()+1)
	for _, c := range s {
		amounts[c.Period] += c.Amount
	}
	return amounts
}

func (s ContributionSchedule) validate() error {
	for _, c := range s {
		if c.Period < 1 || c.Period > constants.MaxProjectionPeriods {
			return fmt.Errorf("%w: contribution period must be between 1 and %d, got %d", ErrInvalidInput, constants.MaxProjectionPeriods, c.Period)
		}
		if !mathutil.IsFinite(c.Amount) || c.Amount < 0 {
			return fmt.Errorf("%w: contribution for period %d must be non-negative, got %v", ErrInvalidInput, c.Period, c.Amount)
		}
	}
	return nil
}

// PeriodResult is one row of a projection.
type PeriodResult struct {
	Period                  int     `json:"period" yaml:"period"`
	Contribution            float64 `json:"contribution" yaml:"contribution"`
	InterestEarned          float64 `json:"interestEarned" yaml:"interestEarned"`
	CumulativeContributions float64 `json:"cumulativeContributions" yaml:"cumulativeContributions"`
	CumulativeInterest      float64 `json:"cumulativeInterest" yaml:"cumulativeInterest"`
	TotalValue              float64 `json:"totalValue" yaml:"totalValue"`
}

// InvestmentResult is a projection with its totals. SolvedField and
// SolvedValue are set when the projection completes a solve.
type InvestmentResult struct {
	Frequency          Frequency      `json:"frequency" yaml:"frequency"`
	InitialAmount      float64        `json:"initialAmount" yaml:"initialAmount"`
	AnnualRate         float64        `json:"annualRate" yaml:"annualRate"`
	Schedule           []PeriodResult `json:"schedule" yaml:"schedule"`
	FinalValue         float64        `json:"finalValue" yaml:"finalValue"`
	TotalContributions float64        `json:"totalContributions" yaml:"totalContributions"`
	TotalInterest      float64        `json:"totalInterest" yaml:"totalInterest"`
	SolvedField        *Field         `json:"solvedField,omitempty" yaml:"solvedField,omitempty"`
	SolvedValue        *float64       `json:"solvedValue,omitempty" yaml:"solvedValue,omitempty"`
}

// Project grows initialAmount over the schedule's periods. Each period
// accrues interest on the running value first and then adds that period's
// contribution. Total contributions include the initial amount.
func Project(schedule ContributionSchedule, annualRatePercent, initialAmount float64, freq Frequency) (*InvestmentResult, error) {
	if err := validateProjection(annualRatePercent, initialAmount, freq); err != nil {
		return nil, err
	}
	if err := schedule.validate(); err != nil {
		return nil, err
	}

	periodicRate := freq.PeriodicRate(annualRatePercent)
	amounts := schedule.amounts()

	result := &InvestmentResult{
		Frequency:          freq,
		InitialAmount:      initialAmount,
		AnnualRate:         annualRatePercent,
		Schedule:           make([]PeriodResult, 0, len(amounts)-1),
		FinalValue:         initialAmount,
		TotalContributions: initialAmount,
	}

	totalValue := initialAmount
	for period := 1; period < len(amounts); period++ {
		var interest float64
		totalValue, interest = accrue(totalValue, periodicRate, amounts[period])
		result.TotalInterest += interest
		result.TotalContributions += amounts[period]

		result.Schedule = append(result.Schedule, PeriodResult{
			Period:                  period,
			Contribution:            amounts[period],
			InterestEarned:          interest,
			CumulativeContributions: result.TotalContributions,
			CumulativeInterest:      result.TotalInterest,
			TotalValue:              totalValue,
		})
	}
	result.FinalValue = totalValue

	return result, nil
}

// ProjectFlat projects the same deposit for each of periods.
func ProjectFlat(periodicAmount float64, periods int, annualRatePercent, initialAmount float64, freq Frequency) (*InvestmentResult, error) {
	if periods < 0 || periods > constants.MaxProjectionPeriods {
		return nil, fmt.Errorf("%w: periods must be between 0 and %d, got %d", ErrInvalidInput, constants.MaxProjectionPeriods, periods)
	}
	if !mathutil.IsFinite(periodicAmount) || periodicAmount < 0 {
		return nil, fmt.Errorf("%w: periodic amount must be non-negative, got %v", ErrInvalidInput, periodicAmount)
	}
	return Project(FlatSchedule(periodicAmount, periods), annualRatePercent, initialAmount, freq)
}

// accrue advances one period and returns the new value and the interest earned.
func accrue(value, periodicRate, contribution float64) (float64, float64) {
	interest := value * periodicRate
	return value + interest + contribution, interest
}

// flatFinalValue runs the same recurrence as Project without building rows.
func flatFinalValue(initialAmount, periodicAmount float64, periods int, periodicRate float64) float64 {
	value := initialAmount
	for period := 1; period <= periods; period++ {
		value, _ = accrue(value, periodicRate, periodicAmount)
	}
	return value
}

func validateProjection(annualRatePercent, initialAmount float64, freq Frequency) error {
	if !mathutil.IsFinite(initialAmount) || initialAmount < 0 {
		return fmt.Errorf("%w: initial amount must be non-negative, got %v", ErrInvalidInput, initialAmount)
	}
	if !mathutil.IsFinite(annualRatePercent) || annualRatePercent < 0 {
		return fmt.Errorf("%w: annual rate must be non-negative, got %v", ErrInvalidInput, annualRatePercent)
	}
	if !freq.Valid() {
		return fmt.Errorf("%w: unsupported frequency %d", ErrInvalidInput, int(freq))
	}
	return nil
}
