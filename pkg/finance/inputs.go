package finance

import (
	"fmt"
	"math"
	"strings"
)

// Inputs holds the five investment quantities as entered, with nil marking
// a blank. Exactly one must be blank for Resolve to succeed.
type Inputs struct {
	InitialAmount  *float64
	PeriodicAmount *float64
	Periods        *float64
	AnnualRate     *float64
	FinalValue     *float64
}

// Blank returns the fields left unset.
func (in Inputs) Blank() []Field {
	var blank []Field
	for _, f := range []struct {
		field Field
		value *float64
	}{
		{FieldInitialAmount, in.InitialAmount},
		{FieldPeriodicAmount, in.PeriodicAmount},
		{FieldPeriods, in.Periods},
		{FieldRate, in.AnnualRate},
		{FieldFinalValue, in.FinalValue},
	} {
		if f.value == nil {
			blank = append(blank, f.field)
		}
	}
	return blank
}

// Resolve converts the inputs into the Unknown naming the single blank field.
func (in Inputs) Resolve() (Unknown, error) {
	blank := in.Blank()
	if len(blank) != 1 {
		names := make([]string, len(blank))
		for i, f := range blank {
			names[i] = f.String()
		}
		return nil, fmt.Errorf("%w: exactly one of the five fields must be blank, got %d blank [%s]",
			ErrInvalidInput, len(blank), strings.Join(names, ", "))
	}

	var periods int
	if in.Periods != nil {
		p := *in.Periods
		if p < 0 || p != math.Trunc(p) || p > math.MaxInt32 {
			return nil, fmt.Errorf("%w: periods must be a non-negative whole number, got %v", ErrInvalidInput, p)
		}
		periods = int(p)
	}

	switch blank[0] {
	case FieldInitialAmount:
		return UnknownInitialAmount{
			PeriodicAmount: *in.PeriodicAmount,
			Periods:        periods,
			AnnualRate:     *in.AnnualRate,
			FinalValue:     *in.FinalValue,
		}, nil
	case FieldPeriodicAmount:
		return UnknownPeriodicAmount{
			InitialAmount: *in.InitialAmount,
			Periods:       periods,
			AnnualRate:    *in.AnnualRate,
			FinalValue:    *in.FinalValue,
		}, nil
	case FieldPeriods:
		return UnknownPeriods{
			InitialAmount:  *in.InitialAmount,
			PeriodicAmount: *in.PeriodicAmount,
			AnnualRate:     *in.AnnualRate,
			FinalValue:     *in.FinalValue,
		}, nil
	case FieldRate:
		return UnknownRate{
			InitialAmount:  *in.InitialAmount,
			PeriodicAmount: *in.PeriodicAmount,
			Periods:        periods,
			FinalValue:     *in.FinalValue,
		}, nil
	default:
		return UnknownFinalValue{
			InitialAmount:  *in.InitialAmount,
			PeriodicAmount: *in.PeriodicAmount,
			Periods:        periods,
			AnnualRate:     *in.AnnualRate,
		}, nil
	}
}
