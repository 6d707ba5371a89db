package main

import (
	"github.com/spf13/cobra"

	"github.com/iwvelando/finance-calculators/internal/config"
	"github.com/iwvelando/finance-calculators/pkg/loans"
)

// loanFlags are the inputs of a single loan given on the command line.
type loanFlags struct {
	name       string
	principal  float64
	annualRate float64
	term       int
	payment    float64
	feePercent float64
	method     string
}

func (f *loanFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "loan", "name shown in the output")
	cmd.Flags().Float64Var(&f.principal, "principal", 0, "amount borrowed")
	cmd.Flags().Float64Var(&f.annualRate, "rate", 0, "annual interest rate in percent")
	cmd.Flags().IntVar(&f.term, "term", 0, "term in months")
	cmd.Flags().Float64Var(&f.payment, "payment", 0, "fixed monthly payment, used when no term is given")
	_ = cmd.MarkFlagRequired("principal")
	_ = cmd.MarkFlagRequired("rate")
	cmd.MarkFlagsOneRequired("term", "payment")
	cmd.MarkFlagsMutuallyExclusive("term", "payment")
}

func (f *loanFlags) calculation(method loans.Method) config.LoanCalculation {
	return config.LoanCalculation{
		Name:       f.name,
		Method:     string(method),
		Principal:  f.principal,
		AnnualRate: f.annualRate,
		Term:       f.term,
		Payment:    f.payment,
	}
}

func newLoanCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Amortize a single loan",
	}
	cmd.AddCommand(newLoanMethodCmd(opts, loans.MethodDecliningBalance,
		"Amortize with a level payment and interest on the declining balance"))
	cmd.AddCommand(newLoanMethodCmd(opts, loans.MethodAnnuity,
		"Amortize as an annuity with a constant payment every period"))
	cmd.AddCommand(newLoanFeeCmd(opts))
	return cmd
}

func newLoanMethodCmd(opts *options, method loans.Method, short string) *cobra.Command {
	flags := &loanFlags{}
	cmd := &cobra.Command{
		Use:   string(method),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := &config.Configuration{
				Loans: []config.LoanCalculation{flags.calculation(method)},
			}
			return execute(cmd, conf, opts)
		},
	}
	flags.register(cmd)
	return cmd
}

func newLoanFeeCmd(opts *options) *cobra.Command {
	flags := &loanFlags{}
	cmd := &cobra.Command{
		Use:   "fee",
		Short: "Amortize a loan with an upfront fee and find the equivalent fee-free rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			method, err := loans.ParseMethod(flags.method)
			if err != nil {
				return err
			}
			calc := flags.calculation(method)
			calc.FeePercent = &flags.feePercent
			conf := &config.Configuration{
				Loans: []config.LoanCalculation{calc},
			}
			return execute(cmd, conf, opts)
		},
	}
	flags.register(cmd)
	cmd.Flags().Float64Var(&flags.feePercent, "fee", 0, "upfront fee in percent of the principal")
	cmd.Flags().StringVar(&flags.method, "method", string(loans.MethodDecliningBalance), "amortization method: declining, annuity")
	_ = cmd.MarkFlagRequired("fee")
	return cmd
}
