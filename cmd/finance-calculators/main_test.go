package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/finance-calculators/internal/config"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/finance"
)

// runCommand executes the CLI with args and returns what it wrote to stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.Contains(out, "finance-calculators dev") {
		t.Errorf("unexpected version output %q", out)
	}
}

func TestLoanAnnuityCommand(t *testing.T) {
	out, err := runCommand(t, "loan", "annuity", "--principal", "100000", "--rate", "5.5", "--term", "360", "--output-format", "csv")
	if err != nil {
		t.Fatalf("loan annuity error = %v", err)
	}
	for _, expected := range []string{
		`"calculation","loan","loan"`,
		`"360","567.79"`,
		`"Total amount","204404.04"`,
	} {
		if !strings.Contains(out, expected) {
			t.Errorf("output missing %q\n%s", expected, out)
		}
	}
}

func TestLoanDecliningCommandRequiresTermOrPayment(t *testing.T) {
	if _, err := runCommand(t, "loan", "declining", "--principal", "1000", "--rate", "5"); err == nil {
		t.Error("expected error without --term or --payment")
	}
}

func TestLoanDecliningCommandNonAmortizing(t *testing.T) {
	_, err := runCommand(t, "loan", "declining", "--principal", "10000", "--rate", "12", "--payment", "50")
	if err == nil || !strings.Contains(err.Error(), "does not amortize") {
		t.Errorf("expected non-amortizing error, got %v", err)
	}
}

func TestLoanFeeCommand(t *testing.T) {
	out, err := runCommand(t, "loan", "fee", "--principal", "10000", "--rate", "6", "--payment", "500", "--fee", "3", "--output-format", "json")
	if err != nil {
		t.Fatalf("loan fee error = %v", err)
	}

	var decoded []struct {
		Name        string `json:"name"`
		Kind        string `json:"kind"`
		LoanWithFee struct {
			InitialFee             float64 `json:"initialFee"`
			EquivalentInterestRate float64 `json:"equivalentInterestRate"`
			TotalPeriods           int     `json:"totalPeriods"`
		} `json:"loanWithFee"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if len(decoded) != 1 || decoded[0].Kind != "loan-with-fee" {
		t.Fatalf("unexpected output %+v", decoded)
	}
	fee := decoded[0].LoanWithFee
	if fee.InitialFee != 300 || fee.TotalPeriods != 22 {
		t.Errorf("expected fee 300 over 22 periods, got %+v", fee)
	}
	if fee.EquivalentInterestRate < 10.13 || fee.EquivalentInterestRate > 10.14 {
		t.Errorf("expected equivalent rate near 10.1366, got %v", fee.EquivalentInterestRate)
	}
}

func TestInvestSolveCommand(t *testing.T) {
	out, err := runCommand(t, "invest", "solve", "--initial", "0", "--periodic", "500", "--periods", "420", "--rate", "7", "--output-format", "csv")
	if err != nil {
		t.Fatalf("invest solve error = %v", err)
	}
	if !strings.Contains(out, `"Solved final value","900527.3`) {
		t.Errorf("expected solved final value 900527.30\n%s", out)
	}
}

func TestInvestSolveCommandNeedsFourFields(t *testing.T) {
	_, err := runCommand(t, "invest", "solve", "--initial", "0", "--periodic", "500", "--rate", "7")
	if !errors.Is(err, finance.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestInvestProjectCommandWithSchedule(t *testing.T) {
	out, err := runCommand(t, "invest", "project", "--frequency", "quarterly", "--initial", "1000", "--rate", "4",
		"--contribution", "1=250", "--contribution", "4=500", "--output-format", "csv")
	if err != nil {
		t.Fatalf("invest project error = %v", err)
	}
	if !strings.Contains(out, `"Quarter","Contribution"`) {
		t.Errorf("expected quarterly schedule header\n%s", out)
	}
	if !strings.Contains(out, `"4","500.00"`) {
		t.Errorf("expected contribution in period 4\n%s", out)
	}
}

const cliConfig = `
output:
  format: pretty
loans:
  - name: Mortgage
    method: annuity
    principal: 100000
    annualRate: 5.5
    term: 360
investments:
  - name: Retirement
    initialAmount: 0
    periodicAmount: 500
    periods: 420
    annualRate: 7
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestRunCommand(t *testing.T) {
	metricsFile := filepath.Join(t.TempDir(), "fincalc.prom")
	out, err := runCommand(t, "run", "--config", writeConfig(t, cliConfig), "--metrics-file", metricsFile)
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	for _, expected := range []string{
		"--- Results for loan Mortgage (annuity) ---",
		"--- Results for investment Retirement (monthly) ---",
		"Solved final value: $900,527.3",
	} {
		if !strings.Contains(out, expected) {
			t.Errorf("output missing %q", expected)
		}
	}

	data, err := os.ReadFile(metricsFile)
	if err != nil {
		t.Fatalf("reading metrics file: %v", err)
	}
	if !strings.Contains(string(data), `fincalc_calculations_total{kind="loan",status="success"} 1`) {
		t.Errorf("metrics file missing loan counter:\n%s", data)
	}
}

func TestRunCommandErrors(t *testing.T) {
	t.Run("Missing config", func(t *testing.T) {
		_, err := runCommand(t, "run", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("expected not-exist error for missing config, got %v", err)
		}
		if !strings.Contains(err.Error(), constants.ExampleConfigFile) {
			t.Errorf("expected hint naming %s, got %v", constants.ExampleConfigFile, err)
		}
	})

	t.Run("Invalid output format", func(t *testing.T) {
		_, err := runCommand(t, "run", "--config", writeConfig(t, cliConfig), "--output-format", "xml")
		if err == nil || !strings.Contains(err.Error(), "got xml") {
			t.Errorf("expected output format error, got %v", err)
		}
	})
}

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name     string
		config   config.LoggingConfig
		override string
		wantErr  bool
	}{
		{"Defaults", config.LoggingConfig{}, "", false},
		{"Console debug", config.LoggingConfig{Level: "debug", Format: "console"}, "", false},
		{"Override wins", config.LoggingConfig{Level: "bogus"}, "warn", false},
		{"Invalid level", config.LoggingConfig{Level: "verbose"}, "", true},
		{"Invalid format", config.LoggingConfig{Format: "xml"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.config, tt.override)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("initializeLogger() error = %v", err)
			}
			if logger == nil {
				t.Fatal("expected a logger")
			}
		})
	}
}

func TestInitializeLoggerOutputFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "fincalc.log")
	logger, err := initializeLogger(config.LoggingConfig{Level: "info", OutputFile: logFile}, "")
	if err != nil {
		t.Fatalf("initializeLogger() error = %v", err)
	}
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file missing entry: %s", data)
	}
}

func TestParseContributions(t *testing.T) {
	schedule, err := parseContributions([]string{"1=250", " 4 = 500.5 "})
	if err != nil {
		t.Fatalf("parseContributions() error = %v", err)
	}
	expected := []finance.Contribution{{Period: 1, Amount: 250}, {Period: 4, Amount: 500.5}}
	if len(schedule) != len(expected) {
		t.Fatalf("expected %d contributions, got %d", len(expected), len(schedule))
	}
	for i := range expected {
		if schedule[i] != expected[i] {
			t.Errorf("contribution %d = %+v, expected %+v", i, schedule[i], expected[i])
		}
	}

	for _, bad := range []string{"250", "x=1", "1=y"} {
		if _, err := parseContributions([]string{bad}); !errors.Is(err, finance.ErrInvalidInput) {
			t.Errorf("parseContributions(%q) expected ErrInvalidInput, got %v", bad, err)
		}
	}
}
