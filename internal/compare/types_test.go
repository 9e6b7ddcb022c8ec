package compare

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
)

func intPtr(v int) *int { return &v }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestMetricsCalculator_CalculateMetrics(t *testing.T) {
	calc := NewMetricsCalculator()

	outcome := &domain.Outcome{
		VisaCategory:       domain.VisaSkilledWorker,
		MainApplicantYears: 5,
		PartnerYears:       intPtr(10),
		ILRDate:            datePtr(2029, 1, 1),
		Fees:               &domain.FeeEstimate{GrandTotal: decimal.NewFromInt(9087)},
	}

	result := calc.CalculateMetrics("Test Scenario", outcome)

	if result.ScenarioName != "Test Scenario" {
		t.Errorf("Expected scenario name 'Test Scenario', got %s", result.ScenarioName)
	}
	if result.MainApplicantYears != 5 {
		t.Errorf("Expected 5 main years, got %d", result.MainApplicantYears)
	}
	if result.PartnerYears == nil || *result.PartnerYears != 10 {
		t.Errorf("Expected partner years 10, got %v", result.PartnerYears)
	}
	if result.ChildrenYears != nil {
		t.Errorf("Expected no children years, got %v", *result.ChildrenYears)
	}
	if result.HouseholdCost == nil || !result.HouseholdCost.Equal(decimal.NewFromInt(9087)) {
		t.Errorf("Expected household cost 9087, got %v", result.HouseholdCost)
	}
	if result.Blocked {
		t.Error("Expected unblocked result")
	}

	// Metrics must not alias the outcome
	*outcome.PartnerYears = 1
	if *result.PartnerYears != 10 {
		t.Error("Result shares partner years with the outcome")
	}
}

func TestMetricsCalculator_CalculateMetrics_Blocked(t *testing.T) {
	calc := NewMetricsCalculator()

	tests := []struct {
		name    string
		outcome *domain.Outcome
		reason  string
	}{
		{
			name:    "route",
			outcome: &domain.Outcome{VisaCategory: domain.VisaStudent, HasRouteBlock: true, HasCriminalBlock: true},
			reason:  "student route has no settlement path",
		},
		{
			name:    "criminal",
			outcome: &domain.Outcome{HasCriminalBlock: true},
			reason:  "criminal record",
		},
		{
			name: "requirement",
			outcome: &domain.Outcome{BlockingRequirements: []domain.Requirement{
				{Code: domain.BlockDebts, Text: "Outstanding debts"},
			}},
			reason: "Outstanding debts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := calc.CalculateMetrics(tt.name, tt.outcome)
			if !result.Blocked {
				t.Error("Expected blocked result")
			}
			if result.BlockReason != tt.reason {
				t.Errorf("Expected reason %q, got %q", tt.reason, result.BlockReason)
			}
		})
	}
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	calc := NewMetricsCalculator()

	base := ComparisonResult{
		ScenarioName:       "Base",
		MainApplicantYears: 10,
		PartnerYears:       intPtr(10),
		ILRDate:            datePtr(2030, 1, 1),
		HouseholdCost:      decPtr(15000),
	}

	scenario := ComparisonResult{
		ScenarioName:       "Alternative",
		MainApplicantYears: 9,
		PartnerYears:       intPtr(10),
		ChildrenYears:      intPtr(10),
		ILRDate:            datePtr(2029, 1, 1),
		HouseholdCost:      decPtr(12000),
	}

	result := calc.CalculateComparison(scenario, base)

	if result.MainYearsDiff != -1 {
		t.Errorf("Expected main years diff -1, got %d", result.MainYearsDiff)
	}
	if result.PartnerYearsDiff == nil || *result.PartnerYearsDiff != 0 {
		t.Errorf("Expected partner years diff 0, got %v", result.PartnerYearsDiff)
	}
	if result.ChildrenYearsDiff != nil {
		t.Error("Expected no children diff when the base has no children timeline")
	}
	if result.ILRDateDiffDays == nil || *result.ILRDateDiffDays != -365 {
		t.Errorf("Expected date diff -365, got %v", result.ILRDateDiffDays)
	}
	if result.CostDiffFromBase == nil || !result.CostDiffFromBase.Equal(decimal.NewFromInt(-3000)) {
		t.Errorf("Expected cost diff -3000, got %v", result.CostDiffFromBase)
	}
}

func TestMetricsCalculator_CalculateComparison_MissingDates(t *testing.T) {
	calc := NewMetricsCalculator()

	base := ComparisonResult{MainApplicantYears: 10}
	scenario := ComparisonResult{MainApplicantYears: 12, ILRDate: datePtr(2030, 1, 1), HouseholdCost: decPtr(100)}

	result := calc.CalculateComparison(scenario, base)

	if result.MainYearsDiff != 2 {
		t.Errorf("Expected main years diff 2, got %d", result.MainYearsDiff)
	}
	if result.ILRDateDiffDays != nil || result.CostDiffFromBase != nil {
		t.Error("Expected no date or cost diff without base values")
	}
}

func TestGenerateRecommendations(t *testing.T) {
	compSet := &ComparisonSet{
		BaseScenarioName: "Base",
		BaseResult:       &ComparisonResult{ScenarioName: "Base", MainApplicantYears: 10},
		AlternativeResults: []ComparisonResult{
			{ScenarioName: "English", MainApplicantYears: 9, MainYearsDiff: -1, CostDiffFromBase: decPtr(-1035)},
			{ScenarioName: "Income", MainApplicantYears: 5, MainYearsDiff: -5, CostDiffFromBase: decPtr(-6000)},
			{ScenarioName: "Blocked", MainApplicantYears: 3, MainYearsDiff: -7, Blocked: true},
		},
	}

	recs := GenerateRecommendations(compSet)

	if len(recs) != 2 {
		t.Fatalf("Expected 2 recommendations, got %d: %v", len(recs), recs)
	}
	if !strings.Contains(recs[0], "Fastest: Income settles 5 years sooner") {
		t.Errorf("Unexpected fastest recommendation: %s", recs[0])
	}
	if !strings.Contains(recs[1], "Lowest cost: Income saves £6000") {
		t.Errorf("Unexpected cost recommendation: %s", recs[1])
	}
}

func TestGenerateRecommendations_Unblocks(t *testing.T) {
	compSet := &ComparisonSet{
		BaseResult: &ComparisonResult{ScenarioName: "Base", Blocked: true, BlockReason: "student route has no settlement path"},
		AlternativeResults: []ComparisonResult{
			{ScenarioName: "Switch", MainApplicantYears: 10},
		},
	}

	recs := GenerateRecommendations(compSet)

	if len(recs) != 1 || !strings.Contains(recs[0], "Unblocks: Switch") {
		t.Errorf("Expected unblock recommendation, got %v", recs)
	}
}

func TestGenerateRecommendations_Empty(t *testing.T) {
	recs := GenerateRecommendations(&ComparisonSet{BaseResult: &ComparisonResult{}})

	if recs == nil || len(recs) != 0 {
		t.Errorf("Expected empty non-nil recommendations, got %v", recs)
	}
}
