package format

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Kind says how a summary value should be rendered.
type Kind string

const (
	KindCurrency Kind = "currency"
	KindPercent  Kind = "percent"
	KindCount    Kind = "count"
)

// Item is a single labelled figure in a result summary.
type Item struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
	Kind  Kind    `json:"kind" yaml:"kind"`
}

// String renders the value according to its kind.
func (i Item) String() string {
	switch i.Kind {
	case KindPercent:
		return Percent(i.Value)
	case KindCount:
		return strconv.FormatInt(decimal.NewFromFloat(i.Value).Round(0).IntPart(), 10)
	default:
		return Currency(i.Value)
	}
}

// Plain renders the value without currency symbols or separators.
func (i Item) Plain() string {
	switch i.Kind {
	case KindPercent:
		return decimal.NewFromFloat(i.Value).StringFixed(4)
	case KindCount:
		return strconv.FormatInt(decimal.NewFromFloat(i.Value).Round(0).IntPart(), 10)
	default:
		return PlainCurrency(i.Value)
	}
}

// Percent renders an annual percentage with up to four decimals (e.g., "5.1234%"),
// trimming trailing zeros but keeping at least two.
func Percent(value float64) string {
	d := decimal.NewFromFloat(value).Round(4)
	s := d.StringFixed(4)
	for i := 0; i < 2 && len(s) > 0 && s[len(s)-1] == '0'; i++ {
		s = s[:len(s)-1]
	}
	return s + "%"
}
