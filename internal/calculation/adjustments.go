package calculation

import (
	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
)

// Candidate is one competing reduction or penalty before selection.
type Candidate struct {
	Years  int
	Reason string
}

// SelectWinner returns the candidate with the greatest Years.
// Ties keep the earliest candidate, so callers control precedence by list order.
func SelectWinner(candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Years > best.Years {
			best = c
		}
	}
	return best, true
}

// AdjustmentResult is the resolved main-applicant timeline before dates are applied.
type AdjustmentResult struct {
	Years            int
	Floor            int
	HasFloorOverride bool
	Floors           []domain.Adjustment
	Reduction        *domain.Adjustment
	Penalty          *domain.Adjustment
	Warnings         []string
}

// Adjustments returns the applied adjustments in output order: floors, penalty, reduction.
func (r AdjustmentResult) Adjustments() []domain.Adjustment {
	out := make([]domain.Adjustment, 0, len(r.Floors)+2)
	out = append(out, r.Floors...)
	if r.Penalty != nil {
		out = append(out, *r.Penalty)
	}
	if r.Reduction != nil {
		out = append(out, *r.Reduction)
	}
	return out
}

// AdjustmentResolver computes floors and picks the single winning reduction and penalty.
type AdjustmentResolver struct {
	Rules     domain.SettlementRules
	Logger    Logger
	translate Translator
}

// NewAdjustmentResolver creates a resolver over the given rules
func NewAdjustmentResolver(rules domain.SettlementRules, logger Logger, translate Translator) *AdjustmentResolver {
	if logger == nil {
		logger = NopLogger{}
	}
	if translate == nil {
		translate = DefaultTranslator
	}
	return &AdjustmentResolver{Rules: rules, Logger: logger, translate: translate}
}

// Resolve combines the baseline, floor overrides, and the winning penalty and reduction.
func (ar *AdjustmentResolver) Resolve(p *domain.ApplicantProfile) AdjustmentResult {
	timeline := ar.Rules.Timeline

	reductions, warnings := ar.ReductionCandidates(p)
	floor, floors, floorWarnings := ar.BaselineFloor(p)
	warnings = append(warnings, floorWarnings...)
	penalties := ar.PenaltyCandidates(p)

	result := AdjustmentResult{
		Floor:            floor,
		HasFloorOverride: len(floors) > 0,
		Floors:           floors,
	}

	reductionYears := 0
	if c, ok := SelectWinner(reductions); ok {
		result.Reduction = &domain.Adjustment{Type: domain.AdjustmentReduction, Reason: c.Reason, Years: c.Years}
		reductionYears = c.Years
		ar.Logger.Debugf("winning reduction: %s (%d years) out of %d candidates", c.Reason, c.Years, len(reductions))
	}

	penaltyYears := 0
	if c, ok := SelectWinner(penalties); ok {
		result.Penalty = &domain.Adjustment{Type: domain.AdjustmentPenalty, Reason: c.Reason, Years: c.Years}
		penaltyYears = c.Years
		ar.Logger.Debugf("winning penalty: %s (%d years) out of %d candidates", c.Reason, c.Years, len(penalties))
	}

	base := max(floor, timeline.BaselineYears)
	years := base + penaltyYears - reductionYears
	if result.HasFloorOverride {
		years = max(floor, max(timeline.MinimumYears, years))
	} else {
		years = max(timeline.MinimumYears, years)
	}

	if p.IsRefugeeRoute() {
		refugeeFloor := ar.Rules.Floors.RefugeeYears
		if p.RefugeeType == domain.RefugeeInCountry {
			refugeeFloor = ar.Rules.Floors.RefugeeInCountryYears
		}
		refugeeFloor = max(refugeeFloor, timeline.BaselineYears)
		if years < refugeeFloor {
			warnings = append(warnings, ar.translate(MsgWarnRefugeeMinimum, map[string]any{"years": refugeeFloor}))
			years = refugeeFloor
		}
	}

	result.Years = years
	result.Warnings = warnings
	return result
}

// ReductionCandidates builds every qualifying reduction in precedence order,
// plus the warnings the reduction checks emit regardless of which candidate wins.
func (ar *AdjustmentResolver) ReductionCandidates(p *domain.ApplicantProfile) ([]Candidate, []string) {
	rules := ar.Rules.Reductions
	income := ar.Rules.Income

	var candidates []Candidate
	var warnings []string
	add := func(years int, key string, params map[string]any) {
		candidates = append(candidates, Candidate{Years: years, Reason: ar.translate(key, params)})
	}

	switch p.VisaCategory {
	case domain.VisaBNO:
		add(rules.BNOYears, MsgReasonBNO, nil)
	case domain.VisaGlobalTalent, domain.VisaInnovator:
		add(rules.TalentYears, MsgReasonTalent, nil)
	}

	// The British-partner answer only counts alongside a declared partner
	if p.HasPartner && p.IsBritishPartner {
		add(rules.BritishPartnerYears, MsgReasonBritishPartner, nil)
	}

	sustained := p.IncomeYears >= income.RequiredYears
	switch {
	case p.Income.GreaterThanOrEqual(income.TopThreshold) && !sustained:
		warnings = append(warnings, ar.translate(MsgWarnTopIncomeDuration, map[string]any{
			"threshold": domain.FormatWholeAmount(income.TopThreshold),
			"years":     income.RequiredYears,
		}))
	case p.Income.GreaterThanOrEqual(income.TopThreshold):
		add(rules.TopIncomeYears, MsgReasonTopIncome, map[string]any{"threshold": domain.FormatWholeAmount(income.TopThreshold)})
	case p.Income.GreaterThanOrEqual(income.HigherThreshold) && !sustained:
		warnings = append(warnings, ar.translate(MsgWarnHigherIncomeDuration, map[string]any{"years": income.RequiredYears}))
	case p.Income.GreaterThanOrEqual(income.HigherThreshold):
		add(rules.HigherIncomeYears, MsgReasonHigherIncome, map[string]any{
			"lower": domain.FormatWholeAmount(income.HigherThreshold),
			"upper": domain.FormatWholeAmount(income.TopThreshold),
		})
	}

	if p.IsPublicService && p.PublicServiceYears >= rules.PublicServiceMinimum && p.OccupationLevel == domain.OccupationRQF6Plus {
		add(rules.PublicServiceYears, MsgReasonPublicService, map[string]any{"years": rules.PublicServiceMinimum})
	}

	if p.EnglishLevel.Advanced() {
		add(rules.AdvancedEnglishYears, MsgReasonEnglish, nil)
	}

	if p.HasVolunteering {
		years := rules.Volunteering.Clamp(p.VolunteeringReductionYears)
		add(years, MsgReasonVolunteering, map[string]any{"min": rules.Volunteering.Min, "max": rules.Volunteering.Max})
		warnings = append(warnings, ar.translate(MsgWarnVolunteering, nil))
	}

	return candidates, warnings
}

// BaselineFloor returns the effective floor and one baseline adjustment per floor that raised it.
// Floors never lower the route's own baseline; multiple triggers keep the maximum.
func (ar *AdjustmentResolver) BaselineFloor(p *domain.ApplicantProfile) (int, []domain.Adjustment, []string) {
	floors := ar.Rules.Floors
	floor := ar.Rules.Timeline.BaselineYears

	var adjustments []domain.Adjustment
	var warnings []string
	register := func(years int, reason string) {
		if years > floor {
			floor = years
			adjustments = append(adjustments, domain.Adjustment{Type: domain.AdjustmentBaseline, Reason: reason, Years: years})
			ar.Logger.Debugf("baseline floor raised to %d years: %s", years, reason)
		}
	}

	lowerSkilledRoute := p.VisaCategory == domain.VisaSkilledWorker || p.VisaCategory == domain.VisaSkilledWorkerCare
	if lowerSkilledRoute && p.OccupationLevel == domain.OccupationRQF3To5 {
		register(floors.LowerSkilledYears, ar.translate(MsgFloorLowerSkilled, map[string]any{"years": floors.LowerSkilledYears}))
		warnings = append(warnings, ar.translate(MsgWarnLowerSkilled, map[string]any{"years": floors.LowerSkilledYears}))
	}

	if p.IsRefugeeRoute() {
		if p.RefugeeType == domain.RefugeeInCountry {
			register(floors.RefugeeInCountryYears, ar.translate(MsgFloorRefugeeInCountry, nil))
		} else {
			register(floors.RefugeeYears, ar.translate(MsgFloorRefugeeResettled, nil))
		}
	}

	return floor, adjustments, warnings
}

// PenaltyCandidates builds every qualifying penalty.
func (ar *AdjustmentResolver) PenaltyCandidates(p *domain.ApplicantProfile) []Candidate {
	rules := ar.Rules.Penalties

	var candidates []Candidate
	add := func(years int, key string, params map[string]any) {
		candidates = append(candidates, Candidate{Years: years, Reason: ar.translate(key, params)})
	}

	switch p.EffectiveEntryMethod() {
	case domain.EntryIllegal:
		add(rules.IllegalEntry.Clamp(p.IllegalPenaltyYears), MsgPenaltyIllegal, map[string]any{"max": rules.IllegalEntry.Max})
	case domain.EntryVisitor:
		add(rules.VisitorEntry.Clamp(p.VisitorPenaltyYears), MsgPenaltyVisitor, map[string]any{"max": rules.VisitorEntry.Max})
	}

	if p.HasOverstayed && p.OverstayMonths >= rules.OverstayMinMonths {
		add(rules.Overstay.Clamp(p.OverstayPenaltyYears), MsgPenaltyOverstay, map[string]any{
			"months": rules.OverstayMinMonths,
			"max":    rules.Overstay.Max,
		})
	}

	if p.ClaimedBenefits {
		params := map[string]any{"months": rules.PublicFundsLongMonths}
		if p.BenefitsMonths >= rules.PublicFundsLongMonths {
			add(rules.PublicFundsLongYears, MsgPenaltyBenefitsLong, params)
		} else {
			add(rules.PublicFundsShortYears, MsgPenaltyBenefitsShort, params)
		}
	}

	return candidates
}
