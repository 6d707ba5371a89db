package loans

import (
	"github.com/iwvelando/finance-calculators/pkg/format"
)

// Summary lists the headline figures of a schedule for display.
func (r *Result) Summary() []format.Item {
	var items []format.Item
	if r.MonthlyPayment != nil {
		items = append(items, format.Item{Label: "Monthly payment", Value: *r.MonthlyPayment, Kind: format.KindCurrency})
	}
	items = append(items, format.Item{Label: "Number of payments", Value: float64(r.Periods()), Kind: format.KindCount})
	if n := len(r.Schedule); n > 0 {
		first, last := r.Schedule[0], r.Schedule[n-1]
		items = append(items,
			format.Item{Label: "First payment", Value: first.Payment, Kind: format.KindCurrency},
			format.Item{Label: "Last payment", Value: last.Payment, Kind: format.KindCurrency},
		)
	}
	items = append(items,
		format.Item{Label: "Total interest", Value: r.TotalInterest, Kind: format.KindCurrency},
		format.Item{Label: "Total amount", Value: r.TotalAmount, Kind: format.KindCurrency},
	)
	return items
}

// Summary lists the fee and equivalent rate ahead of the schedule figures.
func (r *FeeResult) Summary() []format.Item {
	items := []format.Item{
		{Label: "Initial fee", Value: r.InitialFee, Kind: format.KindCurrency},
		{Label: "Equivalent interest rate", Value: r.EquivalentInterestRate, Kind: format.KindPercent},
	}
	return append(items, r.Result.Summary()...)
}
