package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iwvelando/finance-calculators/internal/config"
	"github.com/iwvelando/finance-calculators/pkg/finance"
)

func newInvestCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invest",
		Short: "Project or solve a recurring investment",
	}
	cmd.AddCommand(newInvestProjectCmd(opts))
	cmd.AddCommand(newInvestSolveCmd(opts))
	return cmd
}

func newInvestProjectCmd(opts *options) *cobra.Command {
	var (
		name          string
		frequency     string
		initial       float64
		periodic      float64
		periods       int
		rate          float64
		contributions []string
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project the growth of an investment period by period",
		Long: `Project the growth of an investment. Either give a flat deposit with
--periodic and --periods, or an explicit schedule with repeated
--contribution period=amount flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			calc := config.InvestmentCalculation{
				Name:          name,
				Frequency:     frequency,
				InitialAmount: &initial,
				AnnualRate:    &rate,
			}

			if len(contributions) > 0 {
				schedule, err := parseContributions(contributions)
				if err != nil {
					return err
				}
				calc.Contributions = schedule
			} else {
				n := float64(periods)
				calc.PeriodicAmount = &periodic
				calc.Periods = &n
			}

			conf := &config.Configuration{
				Investments: []config.InvestmentCalculation{calc},
			}
			return execute(cmd, conf, opts)
		},
	}

	cmd.Flags().StringVar(&name, "name", "investment", "name shown in the output")
	cmd.Flags().StringVar(&frequency, "frequency", "monthly", "compounding frequency: weekly, monthly, quarterly, semi-annually, annually")
	cmd.Flags().Float64Var(&initial, "initial", 0, "initial amount")
	cmd.Flags().Float64Var(&periodic, "periodic", 0, "deposit made at the end of every period")
	cmd.Flags().IntVar(&periods, "periods", 0, "number of periods")
	cmd.Flags().Float64Var(&rate, "rate", 0, "annual interest rate in percent")
	cmd.Flags().StringArrayVar(&contributions, "contribution", nil, "deposit for one period as period=amount, repeatable")
	cmd.MarkFlagsMutuallyExclusive("contribution", "periodic")
	cmd.MarkFlagsMutuallyExclusive("contribution", "periods")
	return cmd
}

func newInvestSolveCmd(opts *options) *cobra.Command {
	var (
		name      string
		frequency string
		values    = map[string]*float64{}
	)

	fields := []struct {
		flag  string
		usage string
	}{
		{"initial", "initial amount"},
		{"periodic", "deposit made at the end of every period"},
		{"periods", "number of periods"},
		{"rate", "annual interest rate in percent"},
		{"final", "target final value"},
	}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve for the one investment quantity left out",
		Long: `Give any four of --initial, --periodic, --periods, --rate and --final;
the missing one is solved for and the completed investment is projected.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			given := func(flag string) *float64 {
				if !cmd.Flags().Changed(flag) {
					return nil
				}
				return values[flag]
			}

			calc := config.InvestmentCalculation{
				Name:           name,
				Frequency:      frequency,
				InitialAmount:  given("initial"),
				PeriodicAmount: given("periodic"),
				Periods:        given("periods"),
				AnnualRate:     given("rate"),
				FinalValue:     given("final"),
			}
			if blank := calc.Inputs().Blank(); len(blank) != 1 {
				return fmt.Errorf("%w: give exactly four of --initial, --periodic, --periods, --rate and --final", finance.ErrInvalidInput)
			}

			conf := &config.Configuration{
				Investments: []config.InvestmentCalculation{calc},
			}
			return execute(cmd, conf, opts)
		},
	}

	cmd.Flags().StringVar(&name, "name", "investment", "name shown in the output")
	cmd.Flags().StringVar(&frequency, "frequency", "monthly", "compounding frequency: weekly, monthly, quarterly, semi-annually, annually")
	for _, f := range fields {
		v := new(float64)
		values[f.flag] = v
		cmd.Flags().Float64Var(v, f.flag, 0, f.usage)
	}
	return cmd
}

// parseContributions reads period=amount pairs.
func parseContributions(entries []string) ([]finance.Contribution, error) {
	schedule := make([]finance.Contribution, 0, len(entries))
	for _, entry := range entries {
		periodText, amountText, found := strings.Cut(entry, "=")
		if !found {
			return nil, fmt.Errorf("%w: contribution %q is not period=amount", finance.ErrInvalidInput, entry)
		}
		period, err := strconv.Atoi(strings.TrimSpace(periodText))
		if err != nil {
			return nil, fmt.Errorf("%w: contribution period %q: %w", finance.ErrInvalidInput, periodText, err)
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(amountText), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: contribution amount %q: %w", finance.ErrInvalidInput, amountText, err)
		}
		schedule = append(schedule, finance.Contribution{Period: period, Amount: amount})
	}
	return schedule, nil
}
