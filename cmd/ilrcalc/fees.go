package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
	"github.com/andrii-maglovanyi/mandrii-sub001/internal/output"
)

var feesCmd = &cobra.Command{
	Use:   "fees [answers-file]",
	Short: "Show the remaining route cost for the household",
	Long: `Show the indefinite leave application fees plus the visa renewals and
health surcharge still to pay before the settlement date.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, outcome, _, err := evaluate(args[0])
		if err != nil {
			return err
		}
		if outcome.Fees == nil {
			return fmt.Errorf("fees need a visa start or arrival date in %s", args[0])
		}

		fmt.Fprint(cmd.OutOrStdout(), renderFees(outcome.Fees, engine.Rules.Metadata.FeeYear))
		return nil
	},
}

func renderFees(f *domain.FeeEstimate, feeYear int) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("Fees (%s, %d rates)", f.Currency, feeYear))
	t.AppendHeader(table.Row{"Item", "Amount"})
	t.AppendRows([]table.Row{
		{fmt.Sprintf("Settlement application x%d", f.Headcount), output.FormatCurrency(f.ApplicationFeeTotal)},
		{"Visa renewals", output.FormatCurrency(f.HouseholdVisaRemaining)},
		{"Health surcharge", output.FormatCurrency(f.HouseholdSurchargeRemaining)},
	})
	t.AppendFooter(table.Row{"Total", output.FormatCurrency(f.GrandTotal)})

	out := t.Render() + "\n"
	out += fmt.Sprintf("Years remaining on route: %s (elapsed %s)\n", f.MainRemainingYears.StringFixed(2), f.ElapsedYears.StringFixed(2))
	if f.UnderOneYear {
		out += "No further renewals expected before applying.\n"
	}
	if f.DefaultTableUsed {
		out += "Route has no fee entry; default fees were used.\n"
	}
	return out
}
