package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
)

// RawAnswers is the answer set as it arrives from a form, file or request body.
// Numbers, flags and dates may be given as native values or as text.
type RawAnswers struct {
	VisaCategory    any `yaml:"visa_category" json:"visaCategory"`
	EntryMethod     any `yaml:"entry_method" json:"entryMethod"`
	OccupationLevel any `yaml:"occupation_level" json:"occupationLevel"`
	RefugeeType     any `yaml:"refugee_type" json:"refugeeType"`

	CurrentIncome any `yaml:"current_income" json:"currentIncome"`
	IncomeYears   any `yaml:"income_years" json:"incomeYears"`

	EnglishLevel   any `yaml:"english_level" json:"englishLevel"`
	PassedLifeInUK any `yaml:"passed_life_in_uk" json:"passedLifeInUK"`

	IsPublicService            any `yaml:"is_public_service" json:"isPublicService"`
	PublicServiceYears         any `yaml:"public_service_years" json:"publicServiceYears"`
	HasVolunteering            any `yaml:"has_volunteering" json:"hasVolunteering"`
	VolunteeringReductionYears any `yaml:"volunteering_reduction_years" json:"volunteeringReductionYears"`

	HasCriminalRecord    any `yaml:"has_criminal_record" json:"hasCriminalRecord"`
	HasDebts             any `yaml:"has_debts" json:"hasDebts"`
	HasOverstayed        any `yaml:"has_overstayed" json:"hasOverstayed"`
	OverstayMonths       any `yaml:"overstay_months" json:"overstayMonths"`
	OverstayPenaltyYears any `yaml:"overstay_penalty_years" json:"overstayPenaltyYears"`
	ClaimedBenefits      any `yaml:"claimed_benefits" json:"claimedBenefits"`
	BenefitsMonths       any `yaml:"benefits_months" json:"benefitsMonths"`
	IllegalPenaltyYears  any `yaml:"illegal_penalty_years" json:"illegalPenaltyYears"`
	VisitorPenaltyYears  any `yaml:"visitor_penalty_years" json:"visitorPenaltyYears"`

	HasPartner        any `yaml:"has_partner" json:"hasPartner"`
	IsBritishPartner  any `yaml:"is_british_partner" json:"isBritishPartner"`
	PartnerWorkStatus any `yaml:"partner_work_status" json:"partnerWorkStatus"`
	PartnerIncome     any `yaml:"partner_income" json:"partnerIncome"`
	HasChildren       any `yaml:"has_children" json:"hasChildren"`
	NumberOfChildren  any `yaml:"number_of_children" json:"numberOfChildren"`

	VisaStartDate any `yaml:"visa_start_date" json:"visaStartDate"`
	ArrivalDate   any `yaml:"arrival_date" json:"arrivalDate"`
}

// ValidationError reports an answer that cannot be coerced or is out of range.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Normalizer coerces raw answers into a typed applicant profile
type Normalizer struct{}

// NewNormalizer creates a new normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize coerces and validates every answer. The first invalid answer is
// returned as a *ValidationError. Missing answers take their zero value.
func (n *Normalizer) Normalize(raw RawAnswers) (*domain.ApplicantProfile, error) {
	c := coercer{}
	p := &domain.ApplicantProfile{
		VisaCategory:    domain.VisaCategory(strings.ToLower(c.text("visaCategory", raw.VisaCategory))),
		EntryMethod:     domain.EntryMethod(strings.ToLower(c.text("entryMethod", raw.EntryMethod))),
		OccupationLevel: domain.OccupationLevel(strings.ToUpper(c.text("occupationLevel", raw.OccupationLevel))),
		RefugeeType:     domain.RefugeeType(strings.ToLower(c.text("refugeeType", raw.RefugeeType))),

		Income:      c.amount("currentIncome", raw.CurrentIncome),
		IncomeYears: c.count("incomeYears", raw.IncomeYears),

		EnglishLevel:   c.english("englishLevel", raw.EnglishLevel),
		PassedLifeInUK: c.flag("passedLifeInUK", raw.PassedLifeInUK),

		IsPublicService:            c.flag("isPublicService", raw.IsPublicService),
		PublicServiceYears:         c.count("publicServiceYears", raw.PublicServiceYears),
		HasVolunteering:            c.flag("hasVolunteering", raw.HasVolunteering),
		VolunteeringReductionYears: c.optionalCount("volunteeringReductionYears", raw.VolunteeringReductionYears),

		HasCriminalRecord:    c.flag("hasCriminalRecord", raw.HasCriminalRecord),
		HasDebts:             c.flag("hasDebts", raw.HasDebts),
		HasOverstayed:        c.flag("hasOverstayed", raw.HasOverstayed),
		OverstayMonths:       c.count("overstayMonths", raw.OverstayMonths),
		OverstayPenaltyYears: c.optionalCount("overstayPenaltyYears", raw.OverstayPenaltyYears),
		ClaimedBenefits:      c.flag("claimedBenefits", raw.ClaimedBenefits),
		BenefitsMonths:       c.count("benefitsMonths", raw.BenefitsMonths),
		IllegalPenaltyYears:  c.optionalCount("illegalPenaltyYears", raw.IllegalPenaltyYears),
		VisitorPenaltyYears:  c.optionalCount("visitorPenaltyYears", raw.VisitorPenaltyYears),

		HasPartner:        c.flag("hasPartner", raw.HasPartner),
		IsBritishPartner:  c.flag("isBritishPartner", raw.IsBritishPartner),
		PartnerWorkStatus: domain.PartnerWorkStatus(strings.ToLower(c.text("partnerWorkStatus", raw.PartnerWorkStatus))),
		PartnerIncome:     c.optionalAmount("partnerIncome", raw.PartnerIncome),
		HasChildren:       c.flag("hasChildren", raw.HasChildren),
		NumberOfChildren:  c.count("numberOfChildren", raw.NumberOfChildren),

		VisaStartDate: c.date("visaStartDate", raw.VisaStartDate),
		ArrivalDate:   c.date("arrivalDate", raw.ArrivalDate),
	}
	if c.err != nil {
		return nil, c.err
	}

	if p.EntryMethod == "" {
		p.EntryMethod = domain.EntryLegal
	}
	if err := n.ValidateProfile(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ValidateProfile checks enumerations and ranges of an already typed profile
func (n *Normalizer) ValidateProfile(p *domain.ApplicantProfile) error {
	switch p.EntryMethod {
	case "", domain.EntryLegal, domain.EntryVisitor, domain.EntryIllegal:
	default:
		return invalid("entryMethod", "unknown entry method %q", p.EntryMethod)
	}
	switch p.OccupationLevel {
	case "", domain.OccupationRQF6Plus, domain.OccupationRQF3To5:
	default:
		return invalid("occupationLevel", "unknown occupation level %q", p.OccupationLevel)
	}
	switch p.RefugeeType {
	case domain.RefugeeUnspecified, domain.RefugeeInCountry, domain.RefugeeResettled:
	default:
		return invalid("refugeeType", "unknown refugee type %q", p.RefugeeType)
	}
	switch p.PartnerWorkStatus {
	case "", domain.PartnerWorkingHigh, domain.PartnerWorkingLow, domain.PartnerNotWorking:
	default:
		return invalid("partnerWorkStatus", "unknown partner work status %q", p.PartnerWorkStatus)
	}
	switch p.EnglishLevel {
	case "", domain.EnglishBelowB2, domain.EnglishB2, domain.EnglishC1, domain.EnglishC2:
	default:
		return invalid("englishLevel", "unknown English level %q", p.EnglishLevel)
	}

	if p.Income.IsNegative() {
		return invalid("currentIncome", "must not be negative")
	}
	if p.PartnerIncome != nil && p.PartnerIncome.IsNegative() {
		return invalid("partnerIncome", "must not be negative")
	}
	counts := []struct {
		field string
		value int
	}{
		{"incomeYears", p.IncomeYears},
		{"publicServiceYears", p.PublicServiceYears},
		{"overstayMonths", p.OverstayMonths},
		{"benefitsMonths", p.BenefitsMonths},
		{"numberOfChildren", p.NumberOfChildren},
	}
	for _, c := range counts {
		if c.value < 0 {
			return invalid(c.field, "must not be negative, got %d", c.value)
		}
	}
	return nil
}

// coercer records the first failure so Normalize reads as a single expression
type coercer struct {
	err error
}

func (c *coercer) fail(err *ValidationError) {
	if c.err == nil {
		c.err = err
	}
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func (c *coercer) text(field string, v any) string {
	if isBlank(v) {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		c.fail(invalid(field, "expected text, got %T", v))
		return ""
	}
	return strings.TrimSpace(s)
}

func (c *coercer) english(field string, v any) domain.EnglishLevel {
	s := c.text(field, v)
	switch strings.ToUpper(s) {
	case "":
		return ""
	case "BELOW-B2":
		return domain.EnglishBelowB2
	default:
		return domain.EnglishLevel(strings.ToUpper(s))
	}
}

func (c *coercer) amount(field string, v any) decimal.Decimal {
	if isBlank(v) {
		return decimal.Zero
	}
	if s, ok := v.(string); ok {
		cleaned := strings.NewReplacer("£", "", ",", "", " ", "").Replace(s)
		d, err := decimal.NewFromString(cleaned)
		if err != nil {
			c.fail(invalid(field, "%q is not a number", s))
			return decimal.Zero
		}
		return d
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		c.fail(invalid(field, "expected a number, got %T", v))
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func (c *coercer) optionalAmount(field string, v any) *decimal.Decimal {
	if isBlank(v) {
		return nil
	}
	d := c.amount(field, v)
	return &d
}

func (c *coercer) count(field string, v any) int {
	if isBlank(v) {
		return 0
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		c.fail(invalid(field, "expected a whole number, got %v", v))
		return 0
	}
	if f != math.Trunc(f) {
		c.fail(invalid(field, "expected a whole number, got %v", v))
		return 0
	}
	return int(f)
}

func (c *coercer) optionalCount(field string, v any) *int {
	if isBlank(v) {
		return nil
	}
	n := c.count(field, v)
	return &n
}

func (c *coercer) flag(field string, v any) bool {
	if isBlank(v) {
		return false
	}
	if s, ok := v.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "yes", "y", "on":
			return true
		case "no", "n", "off":
			return false
		}
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		c.fail(invalid(field, "expected true or false, got %v", v))
		return false
	}
	return b
}

// date accepts a time value or any layout cast understands and keeps the calendar date only
func (c *coercer) date(field string, v any) *time.Time {
	if isBlank(v) {
		return nil
	}
	t, err := cast.ToTimeE(v)
	if err != nil {
		c.fail(invalid(field, "%v is not a date", v))
		return nil
	}
	if t.IsZero() {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
