package compare

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing profiles
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("SETTLEMENT SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ProfilePath != "" {
		sb.WriteString(fmt.Sprintf("Profile: %s\n", compSet.ProfilePath))
	}
	sb.WriteString("\n")

	t := table.NewWriter()
	t.SetOutputMirror(&sb)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Scenario", "Main", "Partner", "Children", "Settlement date", "Household cost", "Status"})

	if base := compSet.BaseResult; base != nil {
		t.AppendRow(tf.row(base, base.ScenarioName+" (base)"))
	}
	if len(compSet.AlternativeResults) > 0 {
		t.AppendSeparator()
		for i := range compSet.AlternativeResults {
			alt := &compSet.AlternativeResults[i]
			t.AppendRow(tf.row(alt, alt.ScenarioName))
		}
	}
	t.Render()

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}
			sb.WriteString(fmt.Sprintf("  Main applicant:   %s\n", tf.yearsDelta(&alt.MainYearsDiff)))
			if alt.PartnerYearsDiff != nil {
				sb.WriteString(fmt.Sprintf("  Partner:          %s\n", tf.yearsDelta(alt.PartnerYearsDiff)))
			}
			if alt.ChildrenYearsDiff != nil {
				sb.WriteString(fmt.Sprintf("  Children:         %s\n", tf.yearsDelta(alt.ChildrenYearsDiff)))
			}
			if alt.ILRDateDiffDays != nil && *alt.ILRDateDiffDays != 0 {
				sb.WriteString(fmt.Sprintf("  Settlement date:  %+d days\n", *alt.ILRDateDiffDays))
			}
			if alt.CostDiffFromBase != nil && !alt.CostDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Household cost:   %s\n", tf.costDelta(*alt.CostDiffFromBase)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) row(result *ComparisonResult, name string) table.Row {
	status := "eligible"
	if result.Blocked {
		status = "blocked: " + result.BlockReason
	}

	date := "n/a"
	if result.ILRDate != nil {
		date = result.ILRDate.Format("2 Jan 2006")
	}

	cost := "n/a"
	if result.HouseholdCost != nil {
		cost = "£" + tf.formatDecimal(*result.HouseholdCost)
	}

	return table.Row{
		name,
		result.MainApplicantYears,
		optionalYears(result.PartnerYears),
		optionalYears(result.ChildrenYears),
		date,
		cost,
		status,
	}
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) yearsDelta(diff *int) string {
	switch {
	case *diff < 0:
		return fmt.Sprintf("%d years sooner", -*diff)
	case *diff > 0:
		return fmt.Sprintf("%d years later", *diff)
	}
	return "no change"
}

func (tf *TableFormatter) costDelta(diff decimal.Decimal) string {
	if diff.IsNegative() {
		return "-£" + tf.formatDecimal(diff.Abs())
	}
	return "+£" + tf.formatDecimal(diff)
}

// FormatCompact creates a compact single-line summary for each alternative
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s", compSet.BaseScenarioName))
	if compSet.BaseResult != nil {
		sb.WriteString(fmt.Sprintf(" (%d years)", compSet.BaseResult.MainApplicantYears))
	}

	for _, alt := range compSet.AlternativeResults {
		change := "="
		if alt.MainYearsDiff != 0 {
			change = fmt.Sprintf("%+d years", alt.MainYearsDiff)
		}
		sb.WriteString(fmt.Sprintf(" | %s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}

func optionalYears(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}
