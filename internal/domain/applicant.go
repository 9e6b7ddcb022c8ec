package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VisaCategory identifies the immigration route the applicant is on.
// Unknown values are allowed; they fall back to default rule entries.
type VisaCategory string

const (
	VisaBNO               VisaCategory = "bno"
	VisaFamily            VisaCategory = "family"
	VisaGlobalTalent      VisaCategory = "global-talent"
	VisaInnovator         VisaCategory = "innovator"
	VisaOther             VisaCategory = "other"
	VisaRefugee           VisaCategory = "refugee"
	VisaSkilledWorker     VisaCategory = "skilled-worker"
	VisaSkilledWorkerCare VisaCategory = "skilled-worker-care"
	VisaStudent           VisaCategory = "student"
	VisaUkraine           VisaCategory = "ukraine"
)

// KnownVisaCategories lists the categories the default rules table covers, in display order.
var KnownVisaCategories = []VisaCategory{
	VisaUkraine,
	VisaStudent,
	VisaSkilledWorker,
	VisaFamily,
	VisaSkilledWorkerCare,
	VisaRefugee,
	VisaGlobalTalent,
	VisaInnovator,
	VisaBNO,
	VisaOther,
}

// IsKnown reports whether the category is one of KnownVisaCategories.
func (v VisaCategory) IsKnown() bool {
	for _, c := range KnownVisaCategories {
		if c == v {
			return true
		}
	}
	return false
}

// EntryMethod describes how the applicant first entered the country.
type EntryMethod string

const (
	EntryLegal   EntryMethod = "legal"
	EntryVisitor EntryMethod = "visitor"
	EntryIllegal EntryMethod = "illegal"
)

// EnglishLevel is a CEFR level as chosen by the applicant.
type EnglishLevel string

const (
	EnglishBelowB2 EnglishLevel = "below-B2"
	EnglishB2      EnglishLevel = "B2"
	EnglishC1      EnglishLevel = "C1"
	EnglishC2      EnglishLevel = "C2"
)

// Qualifies reports whether the level meets the minimum language requirement (B2+).
func (l EnglishLevel) Qualifies() bool {
	return l == EnglishB2 || l == EnglishC1 || l == EnglishC2
}

// Advanced reports whether the level earns the language reduction (C1/C2).
func (l EnglishLevel) Advanced() bool {
	return l == EnglishC1 || l == EnglishC2
}

// OccupationLevel is the RQF skill tier of the applicant's role.
type OccupationLevel string

const (
	OccupationRQF6Plus OccupationLevel = "RQF6+"
	OccupationRQF3To5  OccupationLevel = "RQF3-5"
)

// PartnerWorkStatus describes the partner's employment situation.
type PartnerWorkStatus string

const (
	PartnerWorkingHigh PartnerWorkStatus = "working-high"
	PartnerWorkingLow  PartnerWorkStatus = "working-low"
	PartnerNotWorking  PartnerWorkStatus = "not-working"
)

// RefugeeType distinguishes the refugee route variants.
type RefugeeType string

const (
	RefugeeUnspecified RefugeeType = ""
	RefugeeInCountry   RefugeeType = "in-country"
	RefugeeResettled   RefugeeType = "resettled"
)

// ApplicantProfile is the typed, validated set of answers one evaluation runs on.
// It is built fresh for every evaluation and never mutated by the engine.
type ApplicantProfile struct {
	VisaCategory    VisaCategory    `yaml:"visa_category" json:"visaCategory"`
	EntryMethod     EntryMethod     `yaml:"entry_method" json:"entryMethod"`
	OccupationLevel OccupationLevel `yaml:"occupation_level" json:"occupationLevel"`
	RefugeeType     RefugeeType     `yaml:"refugee_type" json:"refugeeType"`

	Income      decimal.Decimal `yaml:"income" json:"income"`
	IncomeYears int             `yaml:"income_years" json:"incomeYears"` // Years sustained at Income

	EnglishLevel   EnglishLevel `yaml:"english_level" json:"englishLevel"`
	PassedLifeInUK bool         `yaml:"passed_life_in_uk" json:"passedLifeInUK"`

	IsPublicService    bool `yaml:"is_public_service" json:"isPublicService"`
	PublicServiceYears int  `yaml:"public_service_years" json:"publicServiceYears"`
	HasVolunteering    bool `yaml:"has_volunteering" json:"hasVolunteering"`

	HasCriminalRecord bool `yaml:"has_criminal_record" json:"hasCriminalRecord"`
	HasDebts          bool `yaml:"has_debts" json:"hasDebts"`
	HasOverstayed     bool `yaml:"has_overstayed" json:"hasOverstayed"`
	OverstayMonths    int  `yaml:"overstay_months" json:"overstayMonths"`
	ClaimedBenefits   bool `yaml:"claimed_benefits" json:"claimedBenefits"`
	BenefitsMonths    int  `yaml:"benefits_months" json:"benefitsMonths"`

	HasPartner        bool              `yaml:"has_partner" json:"hasPartner"`
	IsBritishPartner  bool              `yaml:"is_british_partner" json:"isBritishPartner"`
	PartnerWorkStatus PartnerWorkStatus `yaml:"partner_work_status" json:"partnerWorkStatus"`
	PartnerIncome     *decimal.Decimal  `yaml:"partner_income,omitempty" json:"partnerIncome,omitempty"`
	HasChildren       bool              `yaml:"has_children" json:"hasChildren"`
	NumberOfChildren  int               `yaml:"number_of_children" json:"numberOfChildren"`

	VisaStartDate *time.Time `yaml:"visa_start_date,omitempty" json:"visaStartDate,omitempty"`
	ArrivalDate   *time.Time `yaml:"arrival_date,omitempty" json:"arrivalDate,omitempty"`

	// Operator-chosen magnitudes; nil means "use the rule default".
	IllegalPenaltyYears        *int `yaml:"illegal_penalty_years,omitempty" json:"illegalPenaltyYears,omitempty"`
	VisitorPenaltyYears        *int `yaml:"visitor_penalty_years,omitempty" json:"visitorPenaltyYears,omitempty"`
	OverstayPenaltyYears       *int `yaml:"overstay_penalty_years,omitempty" json:"overstayPenaltyYears,omitempty"`
	VolunteeringReductionYears *int `yaml:"volunteering_reduction_years,omitempty" json:"volunteeringReductionYears,omitempty"`
}

// BaseDate returns the visa start date if set, otherwise the arrival date.
// The second result is false when neither is known.
func (p *ApplicantProfile) BaseDate() (time.Time, bool) {
	if p.VisaStartDate != nil && !p.VisaStartDate.IsZero() {
		return *p.VisaStartDate, true
	}
	if p.ArrivalDate != nil && !p.ArrivalDate.IsZero() {
		return *p.ArrivalDate, true
	}
	return time.Time{}, false
}

// IsRefugeeRoute reports whether the applicant is on the refugee route.
func (p *ApplicantProfile) IsRefugeeRoute() bool {
	return p.VisaCategory == VisaRefugee
}

// EffectiveEntryMethod returns the entry method used for penalties.
// Refugee and Ukraine routes are always treated as legal entry.
func (p *ApplicantProfile) EffectiveEntryMethod() EntryMethod {
	if p.VisaCategory == VisaRefugee || p.VisaCategory == VisaUkraine {
		return EntryLegal
	}
	return p.EntryMethod
}

// HasNonNationalPartner reports whether a partner exists who needs their own timeline.
func (p *ApplicantProfile) HasNonNationalPartner() bool {
	return p.HasPartner && !p.IsBritishPartner
}

// ChildrenCount returns the number of children counted for the household.
func (p *ApplicantProfile) ChildrenCount() int {
	if !p.HasChildren || p.NumberOfChildren < 0 {
		return 0
	}
	return p.NumberOfChildren
}

// Clone returns a deep copy of the profile so callers can derive variants safely.
func (p *ApplicantProfile) Clone() *ApplicantProfile {
	if p == nil {
		return nil
	}
	c := *p
	if p.PartnerIncome != nil {
		v := *p.PartnerIncome
		c.PartnerIncome = &v
	}
	if p.VisaStartDate != nil {
		v := *p.VisaStartDate
		c.VisaStartDate = &v
	}
	if p.ArrivalDate != nil {
		v := *p.ArrivalDate
		c.ArrivalDate = &v
	}
	c.IllegalPenaltyYears = cloneInt(p.IllegalPenaltyYears)
	c.VisitorPenaltyYears = cloneInt(p.VisitorPenaltyYears)
	c.OverstayPenaltyYears = cloneInt(p.OverstayPenaltyYears)
	c.VolunteeringReductionYears = cloneInt(p.VolunteeringReductionYears)
	return &c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
