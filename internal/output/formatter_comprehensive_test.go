package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrii-maglovanyi/mandrii-sub001/internal/calculation"
	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
)

var reportTime = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func buildTestReport(modify func(p *domain.ApplicantProfile)) *Report {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := &domain.ApplicantProfile{
		VisaCategory:      domain.VisaSkilledWorker,
		OccupationLevel:   domain.OccupationRQF6Plus,
		Income:            decimal.NewFromInt(60000),
		IncomeYears:       3,
		EnglishLevel:      domain.EnglishB2,
		PassedLifeInUK:    true,
		HasPartner:        true,
		PartnerWorkStatus: domain.PartnerNotWorking,
		HasChildren:       true,
		NumberOfChildren:  1,
		VisaStartDate:     &start,
	}
	if modify != nil {
		modify(p)
	}
	rules := domain.DefaultSettlementRules()
	outcome := calculation.NewSettlementEngineWithRules(rules).Evaluate(p, reportTime)
	return NewReport(p, outcome, rules.Metadata, reportTime)
}

func TestFormatterFunc_Format(t *testing.T) {
	called := false
	var received *Report

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(report *Report) ([]byte, error) {
			called = true
			received = report
			return []byte("test output"), nil
		},
	}

	report := buildTestReport(nil)
	output, err := formatter.Format(report)

	assert.NoError(t, err, "Should not error")
	assert.True(t, called, "Should call the function")
	assert.Equal(t, report, received, "Should pass the report")
	assert.Equal(t, []byte("test output"), output, "Should return the function output")
	assert.Equal(t, "test-formatter", formatter.Name(), "Should return the ID")
}

func TestWriteFormatted(t *testing.T) {
	tmpDir := t.TempDir()
	originalDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(originalDir)

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(report *Report) ([]byte, error) {
			return []byte("test output content"), nil
		},
	}

	filename, err := WriteFormatted(formatter, buildTestReport(nil), "txt")

	assert.NoError(t, err, "Should not error")
	assert.Contains(t, filename, "settlement_report_", "Should have correct prefix")
	assert.True(t, strings.HasSuffix(filename, ".txt"), "Should have correct extension")

	content, err := os.ReadFile(filename)
	assert.NoError(t, err, "Should be able to read the file")
	assert.Equal(t, "test output content", string(content), "Should have correct content")
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	formatter := FormatterFunc{
		ID: "error-formatter",
		F: func(report *Report) ([]byte, error) {
			return nil, fmt.Errorf("formatter error")
		},
	}

	filename, err := WriteFormatted(formatter, buildTestReport(nil), "txt")

	assert.Error(t, err, "Should error when formatter fails")
	assert.Empty(t, filename, "Should return empty filename on error")
	assert.Contains(t, err.Error(), "formatter error", "Should propagate formatter error")
}

func TestConsoleFormatter_Format(t *testing.T) {
	output, err := ConsoleFormatter{}.Format(buildTestReport(nil))
	require.NoError(t, err)

	content := string(output)
	assert.Contains(t, content, "SETTLEMENT TIMELINE SUMMARY")
	assert.Contains(t, content, "Main applicant: 5 years")
	assert.Contains(t, content, "Partner: 10 years")
	assert.Contains(t, content, "Children: 10 years")
	assert.Contains(t, content, "Settlement date: 1 Jan 2029 (apply from 4 Dec 2028)")
	assert.Contains(t, content, "Estimated total cost: £")
}

func TestConsoleFormatter_Format_Blocked(t *testing.T) {
	report := buildTestReport(func(p *domain.ApplicantProfile) { p.HasDebts = true })

	output, err := ConsoleFormatter{}.Format(report)
	require.NoError(t, err)

	content := string(output)
	assert.Contains(t, content, "Blocking:")
	assert.Contains(t, content, "Outstanding government debts")
}

func TestConsoleVerboseFormatter_Format(t *testing.T) {
	output, err := ConsoleVerboseFormatter{}.Format(buildTestReport(func(p *domain.ApplicantProfile) {
		p.EntryMethod = domain.EntryVisitor
		p.VisitorPenaltyYears = yearsOf(4)
	}))
	require.NoError(t, err)

	content := string(output)
	assert.Contains(t, content, "SETTLEMENT (ILR) TIMELINE ESTIMATE")
	assert.Contains(t, content, "TIMELINE")
	assert.Contains(t, content, "ADJUSTMENTS")
	assert.Contains(t, content, "Original entry on visitor visa")
	assert.Contains(t, content, "+4")
	assert.Contains(t, content, "-5")
	assert.Contains(t, content, "REQUIREMENTS")
	assert.Contains(t, content, "FEES SNAPSHOT (GBP, 3 applicants)")
	assert.Contains(t, content, "WARNINGS:")
	assert.Contains(t, content, "KEY ASSUMPTIONS:")
}

func TestConsoleVerboseFormatter_NoBaseDate(t *testing.T) {
	output, err := ConsoleVerboseFormatter{}.Format(buildTestReport(func(p *domain.ApplicantProfile) { p.VisaStartDate = nil }))
	require.NoError(t, err)

	content := string(output)
	assert.Contains(t, content, "add a visa start or arrival date")
	assert.NotContains(t, content, "FEES SNAPSHOT")
}

func TestCSVSummarizer_Format(t *testing.T) {
	output, err := CSVSummarizer{}.Format(buildTestReport(nil))
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(output))).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"Section", "Item", "Value"}, records[0])
	assert.Contains(t, records, []string{"timeline", "main_applicant_years", "5"})
	assert.Contains(t, records, []string{"timeline", "ilr_date", "2029-01-01"})
	assert.Contains(t, records, []string{"fees", "headcount", "3"})
	assert.Contains(t, records, []string{"blocking", "route_block", "false"})
}

func TestJSONFormatter_Format(t *testing.T) {
	output, err := JSONFormatter{}.Format(buildTestReport(nil))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(output, &decoded))

	outcome, ok := decoded["outcome"].(map[string]any)
	require.True(t, ok, "Should include the outcome")
	assert.Equal(t, float64(5), outcome["mainApplicantYears"])
	assert.Equal(t, float64(10), outcome["partnerYears"])
	assert.Contains(t, decoded, "assumptions")
}

func TestHTMLFormatter_Format(t *testing.T) {
	output, err := HTMLFormatter{}.Format(buildTestReport(func(p *domain.ApplicantProfile) { p.HasCriminalRecord = true }))
	require.NoError(t, err)

	content := string(output)
	assert.Contains(t, content, "<!DOCTYPE html>", "Should have HTML structure")
	assert.Contains(t, content, "<title>", "Should have title")
	assert.Contains(t, content, "Settlement (ILR) Timeline Estimate", "Should have main heading")
	assert.Contains(t, content, "A criminal record blocks settlement eligibility")
	assert.Contains(t, content, "Blocking conditions")
}

func TestAvailableFormatterNames(t *testing.T) {
	names := AvailableFormatterNames()

	assert.Equal(t, []string{"console", "console-lite", "csv", "html", "json"}, names)
}

func TestAvailableFormatAliases(t *testing.T) {
	aliases := AvailableFormatAliases()

	assert.Contains(t, aliases, "verbose", "Should include verbose alias")
	assert.Contains(t, aliases, "console-verbose", "Should include console-verbose alias")
}

func TestGetFormatterByName(t *testing.T) {
	formatter := GetFormatterByName("console-lite")
	require.NotNil(t, formatter, "Should return formatter")
	assert.Equal(t, "console-lite", formatter.Name(), "Should return correct formatter")

	formatter = GetFormatterByName("verbose")
	require.NotNil(t, formatter, "Should resolve aliases")
	assert.Equal(t, "console", formatter.Name())

	assert.Nil(t, GetFormatterByName("non-existent"), "Should return nil formatter for non-existent name")
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "£0", FormatCurrency(decimal.Zero))
	assert.Equal(t, "£3,029", FormatCurrency(decimal.NewFromInt(3029)))
	assert.Equal(t, "£1,234,568", FormatCurrency(decimal.NewFromFloat(1234567.8)))
	assert.Equal(t, "-£500", FormatCurrency(decimal.NewFromInt(-500)))
}

func yearsOf(v int) *int {
	return &v
}
