package transform

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
)

// SetIncome replaces the applicant's annual income.
type SetIncome struct {
	Amount decimal.Decimal
}

func (t *SetIncome) Name() string { return "set_income" }

func (t *SetIncome) Description() string {
	return fmt.Sprintf("Set annual income to £%s", t.Amount.StringFixed(0))
}

func (t *SetIncome) Validate(base *domain.ApplicantProfile) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("income must be non-negative, got %s", t.Amount), nil)
	}
	return nil
}

func (t *SetIncome) Apply(base *domain.ApplicantProfile) (*domain.ApplicantProfile, error) {
	modified := base.Clone()
	modified.Income = t.Amount
	return modified, nil
}

// SetIncomeYears sets how long the current income has been sustained.
type SetIncomeYears struct {
	Years int
}

func (t *SetIncomeYears) Name() string { return "set_income_years" }

func (t *SetIncomeYears) Description() string {
	return fmt.Sprintf("Sustain the current income for %d years", t.Years)
}

func (t *SetIncomeYears) Validate(base *domain.ApplicantProfile) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.Years < 0 {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("years must be non-negative, got %d", t.Years), nil)
	}
	return nil
}

func (t *SetIncomeYears) Apply(base *domain.ApplicantProfile) (*domain.ApplicantProfile, error) {
	modified := base.Clone()
	modified.IncomeYears = t.Years
	return modified, nil
}

// SetEnglish changes the applicant's English level.
type SetEnglish struct {
	Level domain.EnglishLevel
}

func (t *SetEnglish) Name() string { return "set_english" }

func (t *SetEnglish) Description() string {
	return fmt.Sprintf("Reach English level %s", t.Level)
}

func (t *SetEnglish) Validate(base *domain.ApplicantProfile) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	switch t.Level {
	case domain.EnglishBelowB2, domain.EnglishB2, domain.EnglishC1, domain.EnglishC2:
		return nil
	}
	return NewTransformError(t.Name(), "validate", fmt.Sprintf("unknown English level %q", t.Level), nil)
}

func (t *SetEnglish) Apply(base *domain.ApplicantProfile) (*domain.ApplicantProfile, error) {
	modified := base.Clone()
	modified.EnglishLevel = t.Level
	return modified, nil
}

// SetCategory moves the applicant to another visa category.
// Unknown categories are accepted; the engine falls back to default rule entries.
type SetCategory struct {
	Category domain.VisaCategory
}

func (t *SetCategory) Name() string { return "set_category" }

func (t *SetCategory) Description() string {
	return fmt.Sprintf("Switch to the %s route", t.Category)
}

func (t *SetCategory) Validate(base *domain.ApplicantProfile) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.Category == "" {
		return NewTransformError(t.Name(), "validate", "category cannot be empty", nil)
	}
	return nil
}

func (t *SetCategory) Apply(base *domain.ApplicantProfile) (*domain.ApplicantProfile, error) {
	modified := base.Clone()
	modified.VisaCategory = t.Category
	return modified, nil
}

// SetOccupation changes the RQF level of the applicant's role.
type SetOccupation struct {
	Level domain.OccupationLevel
}

func (t *SetOccupation) Name() string { return "set_occupation" }

func (t *SetOccupation) Description() string {
	return fmt.Sprintf("Move to a %s role", t.Level)
}

func (t *SetOccupation) Validate(base *domain.ApplicantProfile) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.Level != domain.OccupationRQF6Plus && t.Level != domain.OccupationRQF3To5 {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("unknown occupation level %q", t.Level), nil)
	}
	return nil
}

func (t *SetOccupation) Apply(base *domain.ApplicantProfile) (*domain.ApplicantProfile, error) {
	modified := base.Clone()
	modified.OccupationLevel = t.Level
	return modified, nil
}

// SetVolunteering toggles community volunteering and optionally its chosen reduction.
type SetVolunteering struct {
	Enabled bool
	Years   *int // nil keeps the profile's current choice
}

func (t *SetVolunteering) Name() string { return "set_volunteering" }

func (t *SetVolunteering) Description() string {
	if !t.Enabled {
		return "Stop volunteering"
	}
	if t.Years != nil {
		return fmt.Sprintf("Volunteer for a %d-year reduction", *t.Years)
	}
	return "Start volunteering"
}

func (t *SetVolunteering) Validate(base *domain.ApplicantProfile) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.Years != nil && *t.Years < 0 {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("years must be non-negative, got %d", *t.Years), nil)
	}
	return nil
}

func (t *SetVolunteering) Apply(base *domain.ApplicantProfile) (*domain.ApplicantProfile, error) {
	modified := base.Clone()
	modified.HasVolunteering = t.Enabled
	if t.Years != nil {
		years := *t.Years
		modified.VolunteeringReductionYears = &years
	}
	return modified, nil
}

// SetEntry changes how the applicant first entered the country.
type SetEntry struct {
	Method domain.EntryMethod
}

func (t *SetEntry) Name() string { return "set_entry" }

func (t *SetEntry) Description() string {
	return fmt.Sprintf("Treat original entry as %s", t.Method)
}

func (t *SetEntry) Validate(base *domain.ApplicantProfile) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	switch t.Method {
	case domain.EntryLegal, domain.EntryVisitor, domain.EntryIllegal:
		return nil
	}
	return NewTransformError(t.Name(), "validate", fmt.Sprintf("unknown entry method %q", t.Method), nil)
}

func (t *SetEntry) Apply(base *domain.ApplicantProfile) (*domain.ApplicantProfile, error) {
	modified := base.Clone()
	modified.EntryMethod = t.Method
	return modified, nil
}

// ClearPenalties removes every penalty trigger from the profile.
type ClearPenalties struct{}

func (t *ClearPenalties) Name() string { return "clear_penalties" }

func (t *ClearPenalties) Description() string {
	return "Remove entry, overstay and public funds penalties"
}

func (t *ClearPenalties) Validate(base *domain.ApplicantProfile) error {
	return requireBase(t.Name(), base)
}

func (t *ClearPenalties) Apply(base *domain.ApplicantProfile) (*domain.ApplicantProfile, error) {
	modified := base.Clone()
	modified.EntryMethod = domain.EntryLegal
	modified.HasOverstayed = false
	modified.OverstayMonths = 0
	modified.ClaimedBenefits = false
	modified.BenefitsMonths = 0
	modified.IllegalPenaltyYears = nil
	modified.VisitorPenaltyYears = nil
	modified.OverstayPenaltyYears = nil
	return modified, nil
}

// SetPartnerWork changes the partner's work status and, optionally, their income.
type SetPartnerWork struct {
	Status domain.PartnerWorkStatus
	Income *decimal.Decimal
}

func (t *SetPartnerWork) Name() string { return "set_partner_work" }

func (t *SetPartnerWork) Description() string {
	if t.Income != nil {
		return fmt.Sprintf("Partner %s earning £%s", t.Status, t.Income.StringFixed(0))
	}
	return fmt.Sprintf("Partner %s", t.Status)
}

func (t *SetPartnerWork) Validate(base *domain.ApplicantProfile) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	switch t.Status {
	case domain.PartnerWorkingHigh, domain.PartnerWorkingLow, domain.PartnerNotWorking:
	default:
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("unknown partner work status %q", t.Status), nil)
	}
	if t.Income != nil && t.Income.IsNegative() {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("partner income must be non-negative, got %s", t.Income), nil)
	}
	if !base.HasPartner {
		return NewTransformError(t.Name(), "validate", "profile has no partner", nil)
	}
	return nil
}

func (t *SetPartnerWork) Apply(base *domain.ApplicantProfile) (*domain.ApplicantProfile, error) {
	modified := base.Clone()
	modified.PartnerWorkStatus = t.Status
	if t.Income != nil {
		income := *t.Income
		modified.PartnerIncome = &income
	}
	return modified, nil
}
