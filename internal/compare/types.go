package compare

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
)

// ComparisonResult represents a single evaluated profile with its comparison metrics
type ComparisonResult struct {
	ScenarioName string          `json:"scenarioName"`
	Description  string          `json:"description"`
	Outcome      *domain.Outcome `json:"-"`

	// Key Metrics
	MainApplicantYears int              `json:"mainApplicantYears"`
	PartnerYears       *int             `json:"partnerYears,omitempty"`
	ChildrenYears      *int             `json:"childrenYears,omitempty"`
	ILRDate            *time.Time       `json:"ilrDate,omitempty"`
	HouseholdCost      *decimal.Decimal `json:"householdCost,omitempty"` // nil without a base date
	Blocked            bool             `json:"blocked"`
	BlockReason        string           `json:"blockReason,omitempty"`

	// Comparison to Base
	MainYearsDiff     int              `json:"mainYearsDiff"`
	PartnerYearsDiff  *int             `json:"partnerYearsDiff,omitempty"`
	ChildrenYearsDiff *int             `json:"childrenYearsDiff,omitempty"`
	ILRDateDiffDays   *int             `json:"ilrDateDiffDays,omitempty"`
	CostDiffFromBase  *decimal.Decimal `json:"costDiffFromBase,omitempty"`
}

// ComparisonSet represents a collection of profile comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ProfilePath        string             `json:"profilePath"`
}

// MetricsCalculator extracts key metrics from outcomes
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for one outcome
func (mc *MetricsCalculator) CalculateMetrics(name string, outcome *domain.Outcome) ComparisonResult {
	result := ComparisonResult{
		ScenarioName:       name,
		Outcome:            outcome,
		MainApplicantYears: outcome.MainApplicantYears,
		PartnerYears:       copyInt(outcome.PartnerYears),
		ChildrenYears:      copyInt(outcome.ChildrenYears),
		Blocked:            outcome.IsBlocked(),
		BlockReason:        blockReason(outcome),
	}
	if outcome.ILRDate != nil {
		d := *outcome.ILRDate
		result.ILRDate = &d
	}
	if outcome.Fees != nil {
		cost := outcome.Fees.GrandTotal
		result.HouseholdCost = &cost
	}
	return result
}

// CalculateComparison computes the deltas between an alternative and the base.
// Optional deltas stay nil unless both sides carry the value.
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.MainYearsDiff = scenario.MainApplicantYears - base.MainApplicantYears
	scenario.PartnerYearsDiff = intDiff(scenario.PartnerYears, base.PartnerYears)
	scenario.ChildrenYearsDiff = intDiff(scenario.ChildrenYears, base.ChildrenYears)

	if scenario.ILRDate != nil && base.ILRDate != nil {
		days := int(scenario.ILRDate.Sub(*base.ILRDate).Hours() / 24)
		scenario.ILRDateDiffDays = &days
	}
	if scenario.HouseholdCost != nil && base.HouseholdCost != nil {
		diff := scenario.HouseholdCost.Sub(*base.HouseholdCost)
		scenario.CostDiffFromBase = &diff
	}

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Fastest route among unblocked alternatives
	var fastest *ComparisonResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Blocked || alt.MainYearsDiff >= 0 {
			continue
		}
		if fastest == nil || alt.MainApplicantYears < fastest.MainApplicantYears {
			fastest = alt
		}
	}
	if fastest != nil {
		recommendations = append(recommendations,
			fmt.Sprintf("Fastest: %s settles %d years sooner than the base profile (%d years)",
				fastest.ScenarioName, -fastest.MainYearsDiff, fastest.MainApplicantYears))
	}

	// Lowest remaining household cost
	var cheapest *ComparisonResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.CostDiffFromBase == nil || !alt.CostDiffFromBase.IsNegative() {
			continue
		}
		if cheapest == nil || alt.CostDiffFromBase.LessThan(*cheapest.CostDiffFromBase) {
			cheapest = alt
		}
	}
	if cheapest != nil {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest cost: %s saves £%s in remaining fees",
				cheapest.ScenarioName, cheapest.CostDiffFromBase.Neg().StringFixed(0)))
	}

	// Alternatives that clear a block on the base profile
	if base.Blocked {
		for _, alt := range compSet.AlternativeResults {
			if !alt.Blocked {
				recommendations = append(recommendations,
					fmt.Sprintf("Unblocks: %s clears the base profile's block (%s)", alt.ScenarioName, base.BlockReason))
			}
		}
	}

	return recommendations
}

func blockReason(o *domain.Outcome) string {
	switch kind, text := o.PrimaryBlock(); kind {
	case domain.BlockRoute:
		return fmt.Sprintf("%s route has no settlement path", o.VisaCategory)
	case domain.BlockCriminal:
		return "criminal record"
	case domain.BlockRequirement:
		return text
	}
	return ""
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func intDiff(a, b *int) *int {
	if a == nil || b == nil {
		return nil
	}
	d := *a - *b
	return &d
}
