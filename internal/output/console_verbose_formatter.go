package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
)

// ConsoleVerboseFormatter renders the full report with tables
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	o := report.Outcome

	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintln(&buf, "SETTLEMENT (ILR) TIMELINE ESTIMATE")
	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintln(&buf, report.Headline())
	if report.Rules.PolicyBasis != "" {
		fmt.Fprintf(&buf, "Rules: %s (updated %s)\n", report.Rules.PolicyBasis, report.Rules.LastUpdated)
	}
	fmt.Fprintln(&buf)

	timeline := newTable(&buf)
	timeline.SetTitle("TIMELINE")
	timeline.AppendHeader(table.Row{"Applicant", "Years", "Settlement date", "Apply from"})
	timeline.AppendRow(table.Row{"Main applicant", o.MainApplicantYears, FormatDate(o.ILRDate), FormatDate(o.EarliestApplicationDate)})
	if o.PartnerYears != nil {
		timeline.AppendRow(table.Row{"Partner", *o.PartnerYears, dependantDate(o, *o.PartnerYears), ""})
	}
	if o.ChildrenYears != nil {
		timeline.AppendRow(table.Row{"Children", *o.ChildrenYears, dependantDate(o, *o.ChildrenYears), ""})
	}
	timeline.Render()
	fmt.Fprintln(&buf)

	if len(o.Adjustments) > 0 || len(o.PartnerAdjustments) > 0 {
		adj := newTable(&buf)
		adj.SetTitle("ADJUSTMENTS")
		adj.AppendHeader(table.Row{"Applies to", "Type", "Reason", "Years"})
		for _, a := range o.Adjustments {
			adj.AppendRow(table.Row{"Main applicant", a.Type, a.Reason, signedYears(a)})
		}
		for _, a := range o.PartnerAdjustments {
			adj.AppendRow(table.Row{"Partner", a.Type, a.Reason, signedYears(a)})
		}
		adj.Render()
		fmt.Fprintln(&buf)
	}

	reqs := newTable(&buf)
	reqs.SetTitle("REQUIREMENTS")
	reqs.AppendHeader(table.Row{"", "Requirement"})
	for _, r := range o.Requirements {
		reqs.AppendRow(table.Row{checkmark(r.Met), r.Text})
	}
	reqs.AppendFooter(table.Row{checkmark(o.AllRequirementsMet), "All requirements met"})
	reqs.Render()
	fmt.Fprintln(&buf)

	if len(o.BlockingRequirements) > 0 || o.HasRouteBlock || o.HasCriminalBlock {
		fmt.Fprintln(&buf, "BLOCKING CONDITIONS:")
		if o.HasRouteBlock {
			fmt.Fprintf(&buf, "• The %s route has no settlement path\n", o.VisaCategory)
		}
		for _, b := range o.BlockingRequirements {
			fmt.Fprintf(&buf, "• %s\n", b.Text)
		}
		fmt.Fprintln(&buf)
	}

	if o.Fees != nil {
		writeFees(&buf, o.Fees)
		fmt.Fprintln(&buf)
	}

	if len(o.Warnings) > 0 {
		fmt.Fprintln(&buf, "WARNINGS:")
		for _, w := range o.Warnings {
			fmt.Fprintf(&buf, "• %s\n", w)
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	assumptions := report.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}

	return buf.Bytes(), nil
}

func writeFees(buf *bytes.Buffer, f *domain.FeeEstimate) {
	fees := newTable(buf)
	fees.SetTitle(fmt.Sprintf("FEES SNAPSHOT (%s, %d applicants)", f.Currency, f.Headcount))
	fees.AppendHeader(table.Row{"Item", "Per person", "Household"})
	fees.AppendRow(table.Row{"Settlement application", FormatCurrency(f.ApplicationFeePerPerson), FormatCurrency(f.ApplicationFeeTotal)})
	fees.AppendRow(table.Row{"Visa renewals remaining", FormatCurrency(f.PerPersonVisaRemaining), FormatCurrency(f.HouseholdVisaRemaining)})
	fees.AppendRow(table.Row{"Health surcharge remaining", FormatCurrency(f.PerPersonSurchargeRemaining), FormatCurrency(f.HouseholdSurchargeRemaining)})
	fees.AppendFooter(table.Row{"Total estimated cost", "", FormatCurrency(f.GrandTotal)})
	fees.Render()

	fmt.Fprintf(buf, "Elapsed on route: %s years, remaining: %s years\n", f.ElapsedYears.StringFixed(1), f.MainRemainingYears.StringFixed(1))
	if f.UnderOneYear {
		fmt.Fprintln(buf, "Less than a year remains; no further renewals are expected before applying.")
	}
	if f.DefaultTableUsed {
		fmt.Fprintln(buf, "No fee table for this visa category; default rates were used.")
	}
}

func newTable(buf *bytes.Buffer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(buf)
	t.SetStyle(table.StyleLight)
	return t
}

func signedYears(a domain.Adjustment) string {
	switch a.Type {
	case domain.AdjustmentReduction:
		return fmt.Sprintf("-%d", a.Years)
	case domain.AdjustmentPenalty:
		return fmt.Sprintf("+%d", a.Years)
	case domain.AdjustmentInfo:
		if a.Years == 0 {
			return ""
		}
	}
	return fmt.Sprintf("%d", a.Years)
}

func dependantDate(o *domain.Outcome, years int) string {
	if o.BaseDate == nil {
		return FormatDate(nil)
	}
	d := o.BaseDate.AddDate(years, 0, 0)
	return FormatDate(&d)
}
