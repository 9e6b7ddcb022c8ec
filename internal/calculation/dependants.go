package calculation

import (
	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
)

// DependantResult holds the partner and children timelines.
// Nil years mean the household has no such dependant timeline.
type DependantResult struct {
	PartnerYears       *int
	ChildrenYears      *int
	PartnerAdjustments []domain.Adjustment
}

// DependentTimelineResolver derives dependant timelines from the main applicant's
type DependentTimelineResolver struct {
	Rules     domain.SettlementRules
	translate Translator
}

// NewDependentTimelineResolver creates a resolver over the given rules
func NewDependentTimelineResolver(rules domain.SettlementRules, translate Translator) *DependentTimelineResolver {
	if translate == nil {
		translate = DefaultTranslator
	}
	return &DependentTimelineResolver{Rules: rules, translate: translate}
}

// Resolve computes partner and children years. Dependants never finish before the main applicant.
func (dr *DependentTimelineResolver) Resolve(p *domain.ApplicantProfile, mainYears int) DependantResult {
	result := DependantResult{PartnerAdjustments: []domain.Adjustment{}}

	if p.HasNonNationalPartner() {
		years := dr.partnerYears(p, mainYears, &result.PartnerAdjustments)
		result.PartnerYears = &years
	}

	if p.HasChildren {
		children := mainYears
		if result.PartnerYears != nil {
			children = max(*result.PartnerYears, mainYears)
		}
		result.ChildrenYears = &children
	}

	return result
}

func (dr *DependentTimelineResolver) partnerYears(p *domain.ApplicantProfile, mainYears int, adjustments *[]domain.Adjustment) int {
	rules := dr.Rules.Dependants
	years := rules.PartnerBaselineYears

	if dr.partnerClearsHigherIncome(p) {
		years -= rules.PartnerIncomeDiscount
		*adjustments = append(*adjustments, domain.Adjustment{
			Type:   domain.AdjustmentReduction,
			Reason: dr.translate(MsgPartnerHigherIncome, map[string]any{"threshold": domain.FormatWholeAmount(dr.Rules.Income.HigherThreshold)}),
			Years:  rules.PartnerIncomeDiscount,
		})
	} else if p.PartnerWorkStatus == domain.PartnerNotWorking {
		*adjustments = append(*adjustments, domain.Adjustment{
			Type:   domain.AdjustmentInfo,
			Reason: dr.translate(MsgPartnerNotWorking, map[string]any{"years": rules.PartnerBaselineYears}),
		})
	}

	if years < mainYears {
		*adjustments = append(*adjustments, domain.Adjustment{
			Type:   domain.AdjustmentInfo,
			Reason: dr.translate(MsgPartnerRaised, map[string]any{"years": mainYears}),
			Years:  mainYears - years,
		})
		years = mainYears
	}

	return years
}

func (dr *DependentTimelineResolver) partnerClearsHigherIncome(p *domain.ApplicantProfile) bool {
	if p.PartnerWorkStatus == domain.PartnerWorkingHigh {
		return true
	}
	return p.PartnerIncome != nil && p.PartnerIncome.GreaterThanOrEqual(dr.Rules.Income.HigherThreshold)
}
