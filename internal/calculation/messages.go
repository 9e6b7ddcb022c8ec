package calculation

import (
	"fmt"
	"strings"
)

// Translator renders a message key with named {placeholder} parameters.
// Engine branching never depends on the rendered text.
type Translator func(key string, params map[string]any) string

// DefaultTranslator substitutes parameters into the English message key.
func DefaultTranslator(key string, params map[string]any) string {
	out := key
	for name, value := range params {
		out = strings.ReplaceAll(out, "{"+name+"}", fmt.Sprint(value))
	}
	return out
}

// Message keys. The key is also the English text.
const (
	MsgReasonBNO            = "British National (Overseas) status"
	MsgReasonTalent         = "Global Talent/Innovator Founder route"
	MsgReasonBritishPartner = "Partner of British citizen"
	MsgReasonTopIncome      = "Annual income £{threshold}+"
	MsgReasonHigherIncome   = "Annual income £{lower}-£{upper}"
	MsgReasonPublicService  = "Public service employment ({years}+ years at RQF6+)"
	MsgReasonEnglish        = "Advanced English (C1/C2 level)"
	MsgReasonVolunteering   = "Community volunteering (minus {min}-{max} years)"

	MsgFloorLowerSkilled     = "Skilled Worker/Health & Care role below RQF6 (fixed {years}-year baseline)"
	MsgFloorRefugeeInCountry = "In-country asylum seeker (core protection route)"
	MsgFloorRefugeeResettled = "Resettled refugee route"

	MsgPenaltyIllegal       = "Illegal entry to UK (up to {max} years)"
	MsgPenaltyVisitor       = "Original entry on visitor visa (up to {max} years)"
	MsgPenaltyOverstay      = "Overstayed visa by {months}+ months (up to {max} years)"
	MsgPenaltyBenefitsLong  = "Claimed public funds for {months}+ months"
	MsgPenaltyBenefitsShort = "Claimed public funds for <{months} months"

	MsgWarnTopIncomeDuration    = "Income £{threshold}+ reductions require at least {years} years at that level. Reduction not applied."
	MsgWarnHigherIncomeDuration = "High income reductions require at least {years} years at that level. Reduction not applied."
	MsgWarnVolunteering         = "Volunteering reduction is consultative and subject to how contribution is measured"
	MsgWarnLowerSkilled         = "The {years}-year baseline for roles below RQF6 is a consultation option (not final policy). Check for updates."
	MsgWarnRefugeeMinimum       = "Refugee routes have a minimum baseline of {years} years regardless of reductions."
	MsgWarnIncomeReview         = "Income threshold duration is under consultation ({min}-{max} years). Requirement may tighten to {max} years."
	MsgWarnConsultation         = "Consultation runs till 12 February 2026. Timelines and requirements may change once final policy is set."

	MsgReqNoCriminalRecord = "No criminal record"
	MsgReqEnglish          = "English language at least B2"
	MsgReqLifeInUK         = "Passed Life in the UK test"
	MsgReqNoDebts          = "No outstanding debts"
	MsgReqIncomeWaived     = "Income requirement waived for refugee routes"
	MsgReqIncome           = "Income of £{threshold}+ for at least {years} years"

	MsgBlockCriminal = "Criminal record blocks settlement eligibility"
	MsgBlockDebts    = "Outstanding government debts block settlement eligibility"
	MsgBlockIncome   = "Income below £{threshold} or under {years} years at that level fails the contribution requirement"

	MsgPartnerHigherIncome = "Partner earns £{threshold}+ (own contribution)"
	MsgPartnerNotWorking   = "Partner not working - may need {years}-year route or own contribution (work or volunteering)."
	MsgPartnerRaised       = "Dependant timelines cannot be shorter than the main applicant's ({years} years)"
)
