package calculation

import (
	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
)

// RequirementResult holds the pass/fail checks and the hard blocks for one profile.
type RequirementResult struct {
	Requirements         []domain.Requirement
	AllMet               bool
	BlockingRequirements []domain.Requirement
	Warnings             []string

	HasRouteBlock    bool
	HasCriminalBlock bool
}

// RequirementEvaluator evaluates requirements independently of the numeric timeline
type RequirementEvaluator struct {
	Rules     domain.SettlementRules
	translate Translator
}

// NewRequirementEvaluator creates an evaluator over the given rules
func NewRequirementEvaluator(rules domain.SettlementRules, translate Translator) *RequirementEvaluator {
	if translate == nil {
		translate = DefaultTranslator
	}
	return &RequirementEvaluator{Rules: rules, translate: translate}
}

// Evaluate returns the ordered requirement list, the separate blocking list and the block flags.
// A route without a settlement path sets HasRouteBlock but adds nothing to BlockingRequirements.
func (re *RequirementEvaluator) Evaluate(p *domain.ApplicantProfile) RequirementResult {
	income := re.Rules.Income
	incomeParams := map[string]any{
		"threshold": domain.FormatWholeAmount(income.MinimumThreshold),
		"years":     income.RequiredYears,
	}

	requirements := []domain.Requirement{
		{Code: domain.RequirementNoCriminalRecord, Text: re.translate(MsgReqNoCriminalRecord, nil), Met: !p.HasCriminalRecord},
		{Code: domain.RequirementEnglish, Text: re.translate(MsgReqEnglish, nil), Met: p.EnglishLevel.Qualifies()},
		{Code: domain.RequirementLifeInUK, Text: re.translate(MsgReqLifeInUK, nil), Met: p.PassedLifeInUK},
		{Code: domain.RequirementNoDebts, Text: re.translate(MsgReqNoDebts, nil), Met: !p.HasDebts},
	}

	var warnings []string
	incomeMet := re.meetsIncome(p)
	if p.IsRefugeeRoute() {
		requirements = append(requirements, domain.Requirement{
			Code: domain.RequirementIncomeWaived,
			Text: re.translate(MsgReqIncomeWaived, nil),
			Met:  true,
		})
	} else {
		requirements = append(requirements, domain.Requirement{
			Code: domain.RequirementIncome,
			Text: re.translate(MsgReqIncome, incomeParams),
			Met:  incomeMet,
		})
		if incomeMet && p.IncomeYears < income.ReviewUpperYears {
			warnings = append(warnings, re.translate(MsgWarnIncomeReview, map[string]any{
				"min": income.RequiredYears,
				"max": income.ReviewUpperYears,
			}))
		}
	}

	allMet := true
	for _, r := range requirements {
		allMet = allMet && r.Met
	}

	blocking := []domain.Requirement{}
	if p.HasCriminalRecord {
		blocking = append(blocking, domain.Requirement{Code: domain.BlockCriminalRecord, Text: re.translate(MsgBlockCriminal, nil)})
	}
	if p.HasDebts {
		blocking = append(blocking, domain.Requirement{Code: domain.BlockDebts, Text: re.translate(MsgBlockDebts, nil)})
	}
	if !p.IsRefugeeRoute() && !incomeMet {
		blocking = append(blocking, domain.Requirement{Code: domain.BlockIncome, Text: re.translate(MsgBlockIncome, incomeParams)})
	}

	return RequirementResult{
		Requirements:         requirements,
		AllMet:               allMet,
		BlockingRequirements: blocking,
		Warnings:             warnings,
		HasRouteBlock:        re.Rules.HasNoSettlementPath(p.VisaCategory),
		HasCriminalBlock:     p.HasCriminalRecord,
	}
}

func (re *RequirementEvaluator) meetsIncome(p *domain.ApplicantProfile) bool {
	return p.Income.GreaterThanOrEqual(re.Rules.Income.MinimumThreshold) && p.IncomeYears >= re.Rules.Income.RequiredYears
}
