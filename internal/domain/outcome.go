package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentType tags an applied effect on a timeline.
type AdjustmentType string

const (
	AdjustmentReduction AdjustmentType = "reduction"
	AdjustmentPenalty   AdjustmentType = "penalty"
	AdjustmentBaseline  AdjustmentType = "baseline"
	AdjustmentInfo      AdjustmentType = "info" // Non-numeric note, dependant timelines only
)

// Adjustment is one applied effect. Outcomes record winners only, never the candidate list.
type Adjustment struct {
	Type   AdjustmentType `json:"type"`
	Reason string         `json:"reason"`
	Years  int            `json:"years"`
}

// RequirementCode identifies a requirement independently of its (translated) text.
type RequirementCode string

const (
	RequirementNoCriminalRecord RequirementCode = "no_criminal_record"
	RequirementEnglish          RequirementCode = "english_b2"
	RequirementLifeInUK         RequirementCode = "life_in_uk_test"
	RequirementNoDebts          RequirementCode = "no_debts"
	RequirementIncome           RequirementCode = "sustained_income"
	RequirementIncomeWaived     RequirementCode = "sustained_income_waived"

	BlockCriminalRecord RequirementCode = "block_criminal_record"
	BlockDebts          RequirementCode = "block_debts"
	BlockIncome         RequirementCode = "block_income"
)

// Requirement is a pass/fail check, independent of the numeric timeline.
type Requirement struct {
	Code RequirementCode `json:"code"`
	Text string          `json:"text"`
	Met  bool            `json:"met"`
}

// BlockKind names the condition a caller should lead with when an outcome is blocked.
type BlockKind string

const (
	BlockNone        BlockKind = ""
	BlockRoute       BlockKind = "route"
	BlockCriminal    BlockKind = "criminal"
	BlockRequirement BlockKind = "requirement"
)

// FeeEstimate projects remaining costs for the household. All amounts are GBP.
type FeeEstimate struct {
	Currency string `json:"currency"`

	ApplicationFeePerPerson decimal.Decimal `json:"applicationFeePerPerson"`
	Headcount               int             `json:"headcount"`
	ApplicationFeeTotal     decimal.Decimal `json:"applicationFeeTotal"`

	SurchargePerYear   decimal.Decimal `json:"surchargePerYear"`
	ElapsedYears       decimal.Decimal `json:"elapsedYears"`
	MainRemainingYears decimal.Decimal `json:"mainRemainingYears"`

	PerPersonVisaRemaining      decimal.Decimal `json:"perPersonVisaRemaining"`
	PerPersonSurchargeRemaining decimal.Decimal `json:"perPersonSurchargeRemaining"`
	PartnerVisaRemaining        decimal.Decimal `json:"partnerVisaRemaining"`
	PartnerSurchargeRemaining   decimal.Decimal `json:"partnerSurchargeRemaining"`
	ChildrenVisaRemaining       decimal.Decimal `json:"childrenVisaRemaining"`
	ChildrenSurchargeRemaining  decimal.Decimal `json:"childrenSurchargeRemaining"`

	HouseholdVisaRemaining      decimal.Decimal `json:"householdVisaRemaining"`
	HouseholdSurchargeRemaining decimal.Decimal `json:"householdSurchargeRemaining"`
	GrandTotal                  decimal.Decimal `json:"grandTotal"`

	UnderOneYear     bool `json:"underOneYear"`     // No further renewals expected before applying
	DefaultTableUsed bool `json:"defaultTableUsed"` // Category had no fee entry
}

// Outcome is the full, derived result of one evaluation.
// Every slice is freshly allocated per evaluation.
type Outcome struct {
	VisaCategory       VisaCategory `json:"visaCategory"`
	MainApplicantYears int          `json:"mainApplicantYears"`

	BaseDate                *time.Time `json:"baseDate,omitempty"`
	ILRDate                 *time.Time `json:"ilrDate,omitempty"`
	EarliestApplicationDate *time.Time `json:"earliestApplicationDate,omitempty"`
	InsufficientInput       bool       `json:"insufficientInput"` // No base date supplied

	Adjustments        []Adjustment `json:"adjustments"`
	PartnerAdjustments []Adjustment `json:"partnerAdjustments"`

	Requirements         []Requirement `json:"requirements"`
	AllRequirementsMet   bool          `json:"allRequirementsMet"`
	BlockingRequirements []Requirement `json:"blockingRequirements"`

	Warnings []string `json:"warnings"`

	PartnerYears  *int `json:"partnerYears,omitempty"`
	ChildrenYears *int `json:"childrenYears,omitempty"`

	HasRouteBlock    bool `json:"hasRouteBlock"`
	HasCriminalBlock bool `json:"hasCriminalBlock"`

	Fees *FeeEstimate `json:"fees,omitempty"`
}

// HasDates reports whether the outcome carries concrete calendar dates.
func (o *Outcome) HasDates() bool {
	return o.ILRDate != nil && o.EarliestApplicationDate != nil
}

// IsBlocked reports whether any hard block applies.
func (o *Outcome) IsBlocked() bool {
	return o.HasRouteBlock || o.HasCriminalBlock || len(o.BlockingRequirements) > 0
}

// PrimaryBlock returns the block a caller should report first, and the blocking
// requirement text when the block comes from the list.
// Order: route without settlement path, criminal record, first blocking requirement.
// BlockRoute covers every route without a settlement path (ukraine, student); callers
// showing route-specific text branch on VisaCategory.
func (o *Outcome) PrimaryBlock() (BlockKind, string) {
	switch {
	case o.HasRouteBlock:
		return BlockRoute, ""
	case o.HasCriminalBlock:
		return BlockCriminal, ""
	case len(o.BlockingRequirements) > 0:
		return BlockRequirement, o.BlockingRequirements[0].Text
	default:
		return BlockNone, ""
	}
}

// AdjustmentsOfType returns the applied adjustments with the given type.
func (o *Outcome) AdjustmentsOfType(t AdjustmentType) []Adjustment {
	var out []Adjustment
	for _, a := range o.Adjustments {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}
