package compare

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Main Years",
		"Partner Years",
		"Children Years",
		"Settlement Date",
		"Household Cost",
		"Blocked",
		"Main Years Diff",
		"Settlement Date Diff (Days)",
		"Cost Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	date := ""
	if result.ILRDate != nil {
		date = result.ILRDate.Format("2006-01-02")
	}
	cost := ""
	if result.HouseholdCost != nil {
		cost = result.HouseholdCost.StringFixed(2)
	}
	costDiff := ""
	if result.CostDiffFromBase != nil {
		costDiff = result.CostDiffFromBase.StringFixed(2)
	}

	return []string{
		result.ScenarioName,
		scenarioType,
		formatInt(result.MainApplicantYears),
		formatOptionalInt(result.PartnerYears),
		formatOptionalInt(result.ChildrenYears),
		date,
		cost,
		strconv.FormatBool(result.Blocked),
		formatInt(result.MainYearsDiff),
		formatOptionalInt(result.ILRDateDiffDays),
		costDiff,
	}
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

func formatOptionalInt(i *int) string {
	if i == nil {
		return ""
	}
	return formatInt(*i)
}
