// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"
	"testing"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

// FindResult finds a calculation result by name in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindResult(results []calculator.Result, name string) *calculator.Result {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// AssertClose fails the test when got and expected differ by more than tolerance.
func AssertClose(t testing.TB, label string, got, expected, tolerance float64) {
	t.Helper()
	if math.IsNaN(got) || !mathutil.WithinTolerance(got, expected, tolerance) {
		t.Errorf("%s = %.6f, expected %.6f (tolerance %g)", label, got, expected, tolerance)
	}
}
