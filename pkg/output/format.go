// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/finance"
	"github.com/iwvelando/finance-calculators/pkg/format"
	"github.com/iwvelando/finance-calculators/pkg/loans"
	"github.com/iwvelando/finance-calculators/pkg/validation"
)

// Write renders results to w in the named output format.
func Write(w io.Writer, outputFormat string, results []calculator.Result) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, results)
	case constants.OutputFormatCSV:
		return CsvFormat(w, results)
	case constants.OutputFormatJSON:
		return JSONFormat(w, results)
	case constants.OutputFormatYAML:
		return YAMLFormat(w, results)
	default:
		return validation.ValidateOutputFormat(outputFormat)
	}
}

// printer accumulates the first write error so rendering code can print
// line after line without checking each one.
type printer struct {
	w   io.Writer
	p   *message.Printer
	err error
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w, p: message.NewPrinter(language.English)}
}

func (pr *printer) printf(format string, args ...interface{}) {
	if pr.err != nil {
		return
	}
	_, pr.err = pr.p.Fprintf(pr.w, format, args...)
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, results []calculator.Result) error {
	pr := newPrinter(w)
	for i, result := range results {
		if i > 0 {
			pr.printf("\n")
		}
		switch {
		case result.LoanWithFee != nil:
			prettyLoanHeader(pr, result)
			prettyLoan(pr, &result.LoanWithFee.Result)
		case result.Loan != nil:
			prettyLoanHeader(pr, result)
			prettyLoan(pr, result.Loan)
		case result.Investment != nil:
			pr.printf("--- Results for %s %s (%s) ---\n", result.Kind, result.Name, result.Investment.Frequency)
			prettyInvestment(pr, result.Investment)
		default:
			pr.printf("--- Results for %s %s ---\n", result.Kind, result.Name)
		}
		prettySummary(pr, result.Summary())
	}
	return pr.err
}

func prettyLoanHeader(pr *printer, result calculator.Result) {
	pr.printf("--- Results for %s %s (%s) ---\n", result.Kind, result.Name, result.Method)
}

func prettyLoan(pr *printer, loan *loans.Result) {
	pr.printf("Period | Payment | Principal | Interest | Remaining Principal | Cumulative Interest\n")
	pr.printf("______ | _______ | _________ | ________ | ___________________ | ___________________\n")
	for _, row := range loan.Schedule {
		pr.printf("%d | $%.2f | $%.2f | $%.2f | $%.2f | $%.2f\n",
			row.Period, row.Payment, row.Principal, row.Interest, row.RemainingPrincipal, row.CumulativeInterest)
	}
}

func prettyInvestment(pr *printer, investment *finance.InvestmentResult) {
	pr.printf("%s | Contribution | Interest Earned | Total Contributions | Total Interest | Total Value\n",
		investment.Frequency.Label())
	pr.printf("%s | ____________ | _______________ | ___________________ | ______________ | ___________\n",
		strings.Repeat("_", len(investment.Frequency.Label())))
	for _, row := range investment.Schedule {
		pr.printf("%d | $%.2f | $%.2f | $%.2f | $%.2f | $%.2f\n",
			row.Period, row.Contribution, row.InterestEarned, row.CumulativeContributions, row.CumulativeInterest, row.TotalValue)
	}
}

func prettySummary(pr *printer, items []format.Item) {
	if len(items) == 0 {
		return
	}
	pr.printf("Summary\n")
	for _, item := range items {
		pr.printf("  %s: %s\n", item.Label, item.String())
	}
}

// CsvFormat outputs in comma-separated value format. Each result is a block
// of schedule rows followed by its summary, and blocks are separated by a
// blank line.
func CsvFormat(w io.Writer, results []calculator.Result) error {
	pr := newPrinter(w)
	for i, result := range results {
		if i > 0 {
			pr.printf("\n")
		}
		pr.printf("%s,%s,%s\n", quote("calculation"), quote(result.Name), quote(string(result.Kind)))
		switch {
		case result.LoanWithFee != nil:
			csvLoan(pr, &result.LoanWithFee.Result)
		case result.Loan != nil:
			csvLoan(pr, result.Loan)
		case result.Investment != nil:
			csvInvestment(pr, result.Investment)
		}

		pr.printf("\nSummary\n")
		for _, item := range result.Summary() {
			pr.printf("%s,%s\n", quote(item.Label), quote(item.Plain()))
		}
	}
	return pr.err
}

func csvLoan(pr *printer, loan *loans.Result) {
	pr.printf(`"Period","Payment","Principal","Interest","Remaining Principal","Cumulative Interest"` + "\n")
	for _, row := range loan.Schedule {
		pr.printf(`"%s","%s","%s","%s","%s","%s"`+"\n",
			strconv.Itoa(row.Period),
			format.PlainCurrency(row.Payment),
			format.PlainCurrency(row.Principal),
			format.PlainCurrency(row.Interest),
			format.PlainCurrency(row.RemainingPrincipal),
			format.PlainCurrency(row.CumulativeInterest),
		)
	}
}

func csvInvestment(pr *printer, investment *finance.InvestmentResult) {
	pr.printf(`%s,"Contribution","Interest Earned","Total Contributions","Total Interest","Total Value"`+"\n",
		quote(investment.Frequency.Label()))
	for _, row := range investment.Schedule {
		pr.printf(`"%s","%s","%s","%s","%s","%s"`+"\n",
			strconv.Itoa(row.Period),
			format.PlainCurrency(row.Contribution),
			format.PlainCurrency(row.InterestEarned),
			format.PlainCurrency(row.CumulativeContributions),
			format.PlainCurrency(row.CumulativeInterest),
			format.PlainCurrency(row.TotalValue),
		)
	}
}

// quote wraps a CSV field in double quotes, doubling any embedded quotes.
func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// document is the machine-readable shape of one result.
type document struct {
	calculator.Result `yaml:",inline"`
	Summary           []format.Item `json:"summary" yaml:"summary"`
}

func documents(results []calculator.Result) []document {
	docs := make([]document, len(results))
	for i, result := range results {
		docs[i] = document{Result: result, Summary: result.Summary()}
	}
	return docs
}

// JSONFormat outputs the full results, including summaries, as indented JSON.
func JSONFormat(w io.Writer, results []calculator.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(documents(results)); err != nil {
		return fmt.Errorf("encoding results as JSON: %w", err)
	}
	return nil
}

// YAMLFormat outputs the full results, including summaries, as YAML.
func YAMLFormat(w io.Writer, results []calculator.Result) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(documents(results)); err != nil {
		return fmt.Errorf("encoding results as YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encoding results as YAML: %w", err)
	}
	return nil
}
