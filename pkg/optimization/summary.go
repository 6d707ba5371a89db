// Package optimization provides the bisection search shared by the rate and
// period solvers, and the data structures describing a finished search.
package optimization

// Summary captures the outcome of a single search for reporting.
type Summary struct {
	Name       string   `json:"name" yaml:"name"`
	Value      float64  `json:"value" yaml:"value"`
	Lower      float64  `json:"lower" yaml:"lower"`
	Upper      float64  `json:"upper" yaml:"upper"`
	Iterations int      `json:"iterations" yaml:"iterations"`
	Converged  bool     `json:"converged" yaml:"converged"`
	Saturated  bool     `json:"saturated,omitempty" yaml:"saturated,omitempty"`
	Notes      []string `json:"notes,omitempty" yaml:"notes,omitempty"`
}
