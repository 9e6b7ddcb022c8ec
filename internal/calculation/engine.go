package calculation

import (
	"time"

	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
)

// SettlementEngine orchestrates one settlement evaluation.
// It holds no per-evaluation state and is safe for repeated calls.
type SettlementEngine struct {
	Rules        domain.SettlementRules
	Adjustments  *AdjustmentResolver
	Timeline     *TimelineCalculator
	Requirements *RequirementEvaluator
	Dependants   *DependentTimelineResolver
	Fees         *FeeEstimator
	Logger       Logger

	translate Translator
}

// NewSettlementEngine creates an engine with the default rules
func NewSettlementEngine() *SettlementEngine {
	return NewSettlementEngineWithRules(domain.DefaultSettlementRules())
}

// NewSettlementEngineWithRules creates an engine with a custom rules table
func NewSettlementEngineWithRules(rules domain.SettlementRules) *SettlementEngine {
	se := &SettlementEngine{
		Rules:     rules,
		Logger:    NopLogger{},
		translate: DefaultTranslator,
	}
	se.build()
	return se
}

// SetLogger sets the logger used by the engine and its components. Nil restores the no-op logger.
func (se *SettlementEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	se.Logger = l
	se.build()
}

// SetTranslator sets the function that renders reasons, requirements and warnings.
// Nil restores DefaultTranslator.
func (se *SettlementEngine) SetTranslator(t Translator) {
	if t == nil {
		t = DefaultTranslator
	}
	se.translate = t
	se.build()
}

func (se *SettlementEngine) build() {
	se.Adjustments = NewAdjustmentResolver(se.Rules, se.Logger, se.translate)
	se.Timeline = NewTimelineCalculatorWithRules(se.Rules.Timeline)
	se.Requirements = NewRequirementEvaluator(se.Rules, se.translate)
	se.Dependants = NewDependentTimelineResolver(se.Rules, se.translate)
	se.Fees = NewFeeEstimatorWithRules(se.Rules.Fees)
}

// Evaluate computes the full outcome for a profile. now is used only for fee elapsed time.
// The result shares no memory with the profile.
func (se *SettlementEngine) Evaluate(profile *domain.ApplicantProfile, now time.Time) *domain.Outcome {
	p := profile.Clone()
	if p == nil {
		p = &domain.ApplicantProfile{}
	}

	if p.VisaCategory != "" && !p.VisaCategory.IsKnown() {
		se.Logger.Warnf("unknown visa category %q, using default rules", p.VisaCategory)
	}

	adjusted := se.Adjustments.Resolve(p)
	timeline := se.Timeline.Calculate(p, adjusted.Years)
	reqs := se.Requirements.Evaluate(p)
	deps := se.Dependants.Resolve(p, adjusted.Years)

	warnings := make([]string, 0, len(adjusted.Warnings)+len(reqs.Warnings)+1)
	warnings = append(warnings, adjusted.Warnings...)
	warnings = append(warnings, reqs.Warnings...)
	warnings = append(warnings, se.translate(MsgWarnConsultation, nil))

	outcome := &domain.Outcome{
		VisaCategory:            p.VisaCategory,
		MainApplicantYears:      adjusted.Years,
		BaseDate:                timeline.BaseDate,
		ILRDate:                 timeline.ILRDate,
		EarliestApplicationDate: timeline.EarliestApplicationDate,
		InsufficientInput:       timeline.Insufficient(),
		Adjustments:             adjusted.Adjustments(),
		PartnerAdjustments:      deps.PartnerAdjustments,
		Requirements:            reqs.Requirements,
		AllRequirementsMet:      reqs.AllMet,
		BlockingRequirements:    reqs.BlockingRequirements,
		Warnings:                warnings,
		PartnerYears:            deps.PartnerYears,
		ChildrenYears:           deps.ChildrenYears,
		HasRouteBlock:           reqs.HasRouteBlock,
		HasCriminalBlock:        reqs.HasCriminalBlock,
	}

	if !outcome.InsufficientInput {
		fees := se.Fees.Estimate(FeeInput{
			VisaCategory:  p.VisaCategory,
			MainYears:     adjusted.Years,
			PartnerYears:  deps.PartnerYears,
			ChildrenCount: p.ChildrenCount(),
			BaseDate:      timeline.BaseDate,
			Now:           now,
		})
		if fees.DefaultTableUsed {
			se.Logger.Warnf("no fee table for visa category %q, using default entry", p.VisaCategory)
		}
		outcome.Fees = &fees
	} else {
		se.Logger.Debugf("no base date supplied, dates and fees omitted")
	}

	se.Logger.Infof("evaluated %s: %d years (%d adjustments, %d blocking)",
		displayCategory(p.VisaCategory), outcome.MainApplicantYears, len(outcome.Adjustments), len(outcome.BlockingRequirements))

	return outcome
}

func displayCategory(c domain.VisaCategory) string {
	if c == "" {
		return "unset category"
	}
	return string(c)
}
