package finance

import (
	"github.com/iwvelando/finance-calculators/pkg/format"
)

// Summary lists the headline figures of a projection for display. A solved
// field is listed first.
func (r *InvestmentResult) Summary() []format.Item {
	var items []format.Item
	if r.SolvedField != nil && r.SolvedValue != nil {
		items = append(items, format.Item{
			Label: "Solved " + r.SolvedField.Label(),
			Value: *r.SolvedValue,
			Kind:  r.SolvedField.Kind(),
		})
	}
	return append(items,
		format.Item{Label: "Final value", Value: r.FinalValue, Kind: format.KindCurrency},
		format.Item{Label: "Total contributions", Value: r.TotalContributions, Kind: format.KindCurrency},
		format.Item{Label: "Total interest", Value: r.TotalInterest, Kind: format.KindCurrency},
		format.Item{Label: "Periods", Value: float64(len(r.Schedule)), Kind: format.KindCount},
	)
}

// Label is the display name of the field.
func (f Field) Label() string {
	switch f {
	case FieldInitialAmount:
		return "initial amount"
	case FieldPeriodicAmount:
		return "periodic amount"
	case FieldPeriods:
		return "number of periods"
	case FieldRate:
		return "annual rate"
	case FieldFinalValue:
		return "final value"
	default:
		return f.String()
	}
}

// Kind says how values of the field render.
func (f Field) Kind() format.Kind {
	switch f {
	case FieldPeriods:
		return format.KindCount
	case FieldRate:
		return format.KindPercent
	default:
		return format.KindCurrency
	}
}
