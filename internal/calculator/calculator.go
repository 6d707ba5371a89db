// Package calculator defines the results of a batch of configured
// calculations and runs them against the loan and investment engines.
package calculator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iwvelando/finance-calculators/internal/config"
	"github.com/iwvelando/finance-calculators/internal/metrics"
	"github.com/iwvelando/finance-calculators/pkg/finance"
	"github.com/iwvelando/finance-calculators/pkg/format"
	"github.com/iwvelando/finance-calculators/pkg/loans"
	"github.com/iwvelando/finance-calculators/pkg/optimization"
)

const tracerName = "github.com/iwvelando/finance-calculators/internal/calculator"

// Kind identifies which engine produced a result.
type Kind string

// Calculation kinds.
const (
	KindLoan        Kind = "loan"
	KindLoanWithFee Kind = "loan-with-fee"
	KindInvestment  Kind = "investment"
)

// Result holds the outcome of one named calculation. Exactly one of Loan,
// LoanWithFee and Investment is set.
type Result struct {
	Name        string                    `json:"name" yaml:"name"`
	Kind        Kind                      `json:"kind" yaml:"kind"`
	Method      loans.Method              `json:"method,omitempty" yaml:"method,omitempty"`
	Loan        *loans.Result             `json:"loan,omitempty" yaml:"loan,omitempty"`
	LoanWithFee *loans.FeeResult          `json:"loanWithFee,omitempty" yaml:"loanWithFee,omitempty"`
	Investment  *finance.InvestmentResult `json:"investment,omitempty" yaml:"investment,omitempty"`
	Duration    time.Duration             `json:"-" yaml:"-"`
}

// Summary returns the headline figures of whichever result is set.
func (r Result) Summary() []format.Item {
	switch {
	case r.LoanWithFee != nil:
		return r.LoanWithFee.Summary()
	case r.Loan != nil:
		return r.Loan.Summary()
	case r.Investment != nil:
		return r.Investment.Summary()
	default:
		return nil
	}
}

// Runner executes configured calculations.
type Runner struct {
	logger      *zap.Logger
	metrics     *metrics.Collectors
	tracer      trace.Tracer
	concurrency int
}

// Option configures a Runner.
type Option func(*Runner)

// WithMetrics records every calculation on c.
func WithMetrics(c *metrics.Collectors) Option {
	return func(r *Runner) { r.metrics = c }
}

// WithConcurrency overrides the configured number of parallel calculations.
func WithConcurrency(n int) Option {
	return func(r *Runner) { r.concurrency = n }
}

// WithTracer sets the tracer used for calculation spans.
func WithTracer(t trace.Tracer) Option {
	return func(r *Runner) { r.tracer = t }
}

// NewRunner creates a Runner. Spans go to the global tracer provider unless
// WithTracer is given.
func NewRunner(logger *zap.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer(tracerName)
	}
	return r
}

// Run processes every loan and investment in conf. Results keep the
// configured order, loans first. The first failing calculation cancels the
// remaining ones and its error is returned.
func (r *Runner) Run(ctx context.Context, conf config.Configuration) ([]Result, error) {
	start := time.Now()
	ctx, span := r.tracer.Start(ctx, "calculator.Run")
	defer span.End()

	limit := r.concurrency
	if limit < 1 {
		limit = conf.Concurrency
	}
	if limit < 1 {
		limit = 1
	}

	results := make([]Result, len(conf.Loans)+len(conf.Investments))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, loan := range conf.Loans {
		i, loan := i, loan
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := r.RunLoan(gctx, loan)
			if err != nil {
				return fmt.Errorf("calculation %s: %w", loan.Name, err)
			}
			results[i] = result
			return nil
		})
	}

	offset := len(conf.Loans)
	for i, investment := range conf.Investments {
		i, investment := i, investment
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := r.RunInvestment(gctx, investment)
			if err != nil {
				return fmt.Errorf("calculation %s: %w", investment.Name, err)
			}
			results[offset+i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	r.logger.Info(fmt.Sprintf("completed %d calculations", len(results)),
		zap.String("op", "calculator.Run"),
		zap.Int("concurrency", limit),
		zap.Duration("elapsed", time.Since(start)),
	)
	return results, nil
}

// RunLoan amortizes one configured loan. A loan with a fee is also solved
// for its equivalent fee-free rate.
func (r *Runner) RunLoan(ctx context.Context, loan config.LoanCalculation) (result Result, err error) {
	kind := KindLoan
	if loan.HasFee() {
		kind = KindLoanWithFee
	}

	_, span := r.tracer.Start(ctx, "calculator.RunLoan", trace.WithAttributes(
		attribute.String("calculation.name", loan.Name),
		attribute.String("calculation.kind", string(kind)),
	))
	start := time.Now()
	defer func() {
		result.Duration = time.Since(start)
		r.finish(span, "calculator.RunLoan", kind, loan.Name, result.Duration, err)
	}()

	method, err := loan.AmortizationMethod()
	if err != nil {
		return Result{}, err
	}
	term, err := loan.AmortizationTerm()
	if err != nil {
		return Result{}, err
	}
	span.SetAttributes(
		attribute.String("loan.method", string(method)),
		attribute.String("loan.term", term.String()),
	)

	result = Result{Name: loan.Name, Kind: kind, Method: method}

	if loan.HasFee() {
		feeResult, feeErr := loans.LoanWithFeeMethod(method, loan.Principal, *loan.FeePercent, loan.AnnualRate, term)
		if feeErr != nil {
			if errors.Is(feeErr, optimization.ErrSaturated) {
				r.metrics.ObserveSaturation("equivalentInterestRate")
			}
			return Result{}, feeErr
		}
		r.metrics.ObserveSearch(feeResult.Search)
		span.SetAttributes(
			attribute.Int("loan.periods", feeResult.Periods()),
			attribute.Float64("loan.equivalent_rate", feeResult.EquivalentInterestRate),
		)
		result.LoanWithFee = feeResult
		return result, nil
	}

	loanResult, err := loans.Amortize(method, loan.Principal, loan.AnnualRate, term)
	if err != nil {
		return Result{}, err
	}
	span.SetAttributes(attribute.Int("loan.periods", loanResult.Periods()))
	result.Loan = loanResult
	return result, nil
}

// RunInvestment projects an explicit contribution schedule, or solves for the
// single blank quantity of a flat investment.
func (r *Runner) RunInvestment(ctx context.Context, investment config.InvestmentCalculation) (result Result, err error) {
	_, span := r.tracer.Start(ctx, "calculator.RunInvestment", trace.WithAttributes(
		attribute.String("calculation.name", investment.Name),
		attribute.String("calculation.kind", string(KindInvestment)),
	))
	start := time.Now()
	defer func() {
		result.Duration = time.Since(start)
		r.finish(span, "calculator.RunInvestment", KindInvestment, investment.Name, result.Duration, err)
	}()

	freq, err := investment.CompoundingFrequency()
	if err != nil {
		return Result{}, err
	}
	span.SetAttributes(attribute.String("investment.frequency", freq.String()))

	result = Result{Name: investment.Name, Kind: KindInvestment}

	if investment.HasSchedule() {
		if investment.AnnualRate == nil {
			return Result{}, fmt.Errorf("%w: an annual rate is required with a contribution schedule", finance.ErrInvalidInput)
		}
		initial := 0.0
		if investment.InitialAmount != nil {
			initial = *investment.InitialAmount
		}
		projection, projectErr := finance.Project(finance.ContributionSchedule(investment.Contributions), *investment.AnnualRate, initial, freq)
		if projectErr != nil {
			return Result{}, projectErr
		}
		result.Investment = projection
		return result, nil
	}

	unknown, err := investment.Inputs().Resolve()
	if err != nil {
		return Result{}, err
	}
	field := unknown.Field().String()
	span.SetAttributes(attribute.String("investment.solved_field", field))

	value, projection, err := finance.Solve(unknown, freq)
	if err != nil {
		if errors.Is(err, optimization.ErrSaturated) {
			r.metrics.ObserveSaturation(field)
		}
		return Result{}, err
	}
	span.SetAttributes(attribute.Float64("investment.solved_value", value))
	result.Investment = projection
	return result, nil
}

// finish records the outcome of a calculation on the span, the metrics and
// the log, then ends the span.
func (r *Runner) finish(span trace.Span, op string, kind Kind, name string, elapsed time.Duration, err error) {
	defer span.End()

	status := statusOf(err)
	span.SetAttributes(attribute.String("calculation.status", status))
	r.metrics.ObserveCalculation(string(kind), status, elapsed)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.logger.Warn(fmt.Sprintf("calculation %s failed", name),
			zap.String("op", op),
			zap.String("kind", string(kind)),
			zap.String("status", status),
			zap.Error(err),
		)
		return
	}

	r.logger.Debug(fmt.Sprintf("calculation %s completed", name),
		zap.String("op", op),
		zap.String("kind", string(kind)),
		zap.Duration("elapsed", elapsed),
	)
}

// statusOf classifies an engine error into a metrics status label.
func statusOf(err error) string {
	switch {
	case err == nil:
		return metrics.StatusSuccess
	case errors.Is(err, loans.ErrInvalidInput), errors.Is(err, finance.ErrInvalidInput):
		return metrics.StatusInvalid
	case errors.Is(err, loans.ErrNonAmortizingPayment),
		errors.Is(err, loans.ErrNoEquivalentRate),
		errors.Is(err, finance.ErrUnreachableTarget):
		return metrics.StatusUnreachable
	default:
		return metrics.StatusError
	}
}
