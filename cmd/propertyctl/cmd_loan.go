package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"propertyhub/internal/loan"

	"github.com/spf13/cobra"
)

func (a *app) loanCmd() *cobra.Command {
	var (
		amount   float64
		rate     float64
		term     int
		allTerms bool
	)

	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Calculate a fixed-rate mortgage payment",
		Long: `Calculate the monthly payment of a fixed-rate, fully amortizing loan.

With --all-terms every offered term (10, 15, 20, 25 and 30 years) is
calculated and listed, most recent first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if amount <= 0 {
				return fmt.Errorf("--amount must be greater than 0")
			}
			if rate < 0 {
				return fmt.Errorf("--rate must not be negative")
			}
			if !allTerms && !loan.ValidTerm(term) {
				return fmt.Errorf("unsupported loan term %d; choose one of %v", term, loan.Terms)
			}

			a.session.SetInterestRate(rate)
			a.session.SetLoanTerm(term)
			state := a.session.SetLoanAmount(amount)
			if allTerms {
				state = a.session.ClearLoanHistory()
				for _, years := range loan.Terms {
					state = a.session.SetLoanTerm(years)
				}
			}

			if a.jsonOutput {
				if allTerms {
					return writeJSON(cmd.OutOrStdout(), state.History)
				}
				return writeJSON(cmd.OutOrStdout(), loan.Calculation{Inputs: state.Inputs, Result: state.Result})
			}
			if allTerms {
				return printCalculations(cmd.OutOrStdout(), state.History)
			}
			return printResult(cmd.OutOrStdout(), state)
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "Loan amount")
	cmd.Flags().Float64Var(&rate, "rate", 3.5, "Annual interest rate in percent")
	cmd.Flags().IntVar(&term, "term", 30, "Loan term in years")
	cmd.Flags().BoolVar(&allTerms, "all-terms", false, "Compare every offered term")
	return cmd
}

func printResult(w io.Writer, s loan.State) error {
	_, err := fmt.Fprintf(w, "Loan amount:     %.2f\nInterest rate:   %.2f%%\nTerm:            %d years (%d payments)\n\nMonthly payment: %.2f\nTotal payment:   %.2f\nTotal interest:  %.2f\n",
		s.LoanAmount, s.InterestRate, s.LoanTerm, s.NumberOfPayments(),
		s.MonthlyPayment, s.TotalPayment, s.TotalInterest)
	return err
}

func printCalculations(w io.Writer, history []loan.Calculation) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TERM\tMONTHLY\tTOTAL\tINTEREST")
	for _, c := range history {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\n", c.LoanTerm, c.MonthlyPayment, c.TotalPayment, c.TotalInterest)
	}
	return tw.Flush()
}
