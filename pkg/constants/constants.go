// Package constants provides shared constants for the finance-calculators application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Amortization constants
const (
	// BalanceEpsilon is the remaining balance at or below which a loan is
	// considered paid off.
	BalanceEpsilon = 0.01

	// MaxLoanPeriods caps the iterative payoff search (50 years of months).
	MaxLoanPeriods = 600

	// MaxProjectionPeriods caps the rows of an investment projection
	// (100 years of weekly deposits).
	MaxProjectionPeriods = 5200
)

// Solver constants
const (
	// MaxSolverRatePercent is the upper bound of every annual rate search.
	MaxSolverRatePercent = 50.0

	// RateTolerance is the bracket width, in percent, at which a rate search stops.
	RateTolerance = 1e-4

	// MaxSolverPeriods is the upper bound of the investment period search.
	MaxSolverPeriods = 600

	// DefaultMaxIterations bounds every bisection loop.
	DefaultMaxIterations = 100
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// EnvPrefix prefixes every environment variable override.
	EnvPrefix = "FINCALC"

	// DefaultConcurrency is the default number of calculations run at once.
	DefaultConcurrency = 4

	// MetricsNamespace prefixes every exported metric name.
	MetricsNamespace = "fincalc"
)
