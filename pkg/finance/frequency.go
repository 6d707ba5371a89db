package finance

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

// Frequency is the number of compounding and contribution periods per year.
type Frequency int

const (
	Annually     Frequency = 1
	SemiAnnually Frequency = 2
	Quarterly    Frequency = 4
	Monthly      Frequency = 12
	Weekly       Frequency = 52
)

var frequencyNames = map[Frequency]string{
	Annually:     "annually",
	SemiAnnually: "semi-annually",
	Quarterly:    "quarterly",
	Monthly:      "monthly",
	Weekly:       "weekly",
}

var frequencyLabels = map[Frequency]string{
	Annually:     "Year",
	SemiAnnually: "Half-year",
	Quarterly:    "Quarter",
	Monthly:      "Month",
	Weekly:       "Week",
}

// ParseFrequency accepts a frequency name ("monthly", "semi-annually", ...)
// or its periods-per-year count. An empty value selects Monthly.
func ParseFrequency(s string) (Frequency, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return Monthly, nil
	case "annual", "yearly":
		return Annually, nil
	case "semiannually", "semi-annual", "semiannual":
		return SemiAnnually, nil
	}
	for f, name := range frequencyNames {
		if s == name {
			return f, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Frequency(n).Valid() {
		return Frequency(n), nil
	}
	return 0, fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, s)
}

// Valid reports whether f is one of the supported frequencies.
func (f Frequency) Valid() bool {
	_, ok := frequencyNames[f]
	return ok
}

// PeriodsPerYear returns f as a count.
func (f Frequency) PeriodsPerYear() int {
	return int(f)
}

// PeriodicRate converts an annual percentage into the per-period fraction.
func (f Frequency) PeriodicRate(annualRatePercent float64) float64 {
	return mathutil.PeriodicRate(annualRatePercent, f.PeriodsPerYear())
}

// Label names a single period for table headings ("Month", "Week", ...).
func (f Frequency) Label() string {
	if label, ok := frequencyLabels[f]; ok {
		return label
	}
	return "Period"
}

func (f Frequency) String() string {
	if name, ok := frequencyNames[f]; ok {
		return name
	}
	return strconv.Itoa(int(f))
}

// MarshalText renders the frequency by name.
func (f Frequency) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText parses a frequency name or count.
func (f *Frequency) UnmarshalText(text []byte) error {
	parsed, err := ParseFrequency(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
