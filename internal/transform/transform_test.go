package transform

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
)

// Helper function to create a basic test profile
func createTestProfile() *domain.ApplicantProfile {
	start := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)
	visitorPenalty := 6

	return &domain.ApplicantProfile{
		VisaCategory:        domain.VisaSkilledWorker,
		EntryMethod:         domain.EntryVisitor,
		OccupationLevel:     domain.OccupationRQF6Plus,
		Income:              decimal.NewFromInt(32000),
		IncomeYears:         2,
		EnglishLevel:        domain.EnglishB2,
		PassedLifeInUK:      true,
		HasOverstayed:       true,
		OverstayMonths:      8,
		ClaimedBenefits:     true,
		BenefitsMonths:      4,
		HasPartner:          true,
		PartnerWorkStatus:   domain.PartnerWorkingLow,
		VisaStartDate:       &start,
		VisitorPenaltyYears: &visitorPenalty,
	}
}

func TestApplyTransforms_NilProfile(t *testing.T) {
	transforms := []ProfileTransform{
		&SetIncomeYears{Years: 3},
	}

	_, err := ApplyTransforms(nil, transforms)
	if err == nil {
		t.Error("Expected error for nil profile, got nil")
	}
}

func TestApplyTransforms_EmptyTransforms(t *testing.T) {
	base := createTestProfile()

	result, err := ApplyTransforms(base, []ProfileTransform{})
	if err != nil {
		t.Fatalf("Expected no error for empty transforms, got: %v", err)
	}

	if result == nil {
		t.Fatal("Expected non-nil result")
	}

	if result == base {
		t.Error("Expected a copy, got same instance")
	}

	if result.VisaCategory != base.VisaCategory {
		t.Errorf("Expected category %s, got %s", base.VisaCategory, result.VisaCategory)
	}
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	base := createTestProfile()
	transforms := []ProfileTransform{
		&SetIncomeYears{Years: 3},
		nil,
	}

	_, err := ApplyTransforms(base, transforms)
	if err == nil {
		t.Error("Expected error for nil transform, got nil")
	}
}

func TestApplyTransforms_Sequence(t *testing.T) {
	base := createTestProfile()
	transforms := []ProfileTransform{
		&SetIncome{Amount: decimal.NewFromInt(55000)},
		&SetIncomeYears{Years: 3},
		&SetEnglish{Level: domain.EnglishC1},
	}

	result, err := ApplyTransforms(base, transforms)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !result.Income.Equal(decimal.NewFromInt(55000)) {
		t.Errorf("Expected income 55000, got %s", result.Income)
	}
	if result.IncomeYears != 3 {
		t.Errorf("Expected 3 income years, got %d", result.IncomeYears)
	}
	if result.EnglishLevel != domain.EnglishC1 {
		t.Errorf("Expected English C1, got %s", result.EnglishLevel)
	}

	// Base must be untouched
	if !base.Income.Equal(decimal.NewFromInt(32000)) || base.IncomeYears != 2 || base.EnglishLevel != domain.EnglishB2 {
		t.Error("Base profile was modified")
	}
}

func TestApplyTransforms_ValidationFailure(t *testing.T) {
	base := createTestProfile()
	transforms := []ProfileTransform{
		&SetIncomeYears{Years: 3},
		&SetIncomeYears{Years: -1},
	}

	_, err := ApplyTransforms(base, transforms)
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}

	var te *TransformError
	if !errors.As(err, &te) {
		t.Fatalf("Expected TransformError in chain, got %T", err)
	}
	if te.TransformName != "set_income_years" {
		t.Errorf("Expected transform name set_income_years, got %s", te.TransformName)
	}
}

func TestClearPenalties(t *testing.T) {
	base := createTestProfile()
	transform := &ClearPenalties{}

	result, err := transform.Apply(base)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if result.EntryMethod != domain.EntryLegal {
		t.Errorf("Expected legal entry, got %s", result.EntryMethod)
	}
	if result.HasOverstayed || result.OverstayMonths != 0 {
		t.Error("Expected overstay to be cleared")
	}
	if result.ClaimedBenefits || result.BenefitsMonths != 0 {
		t.Error("Expected public funds claim to be cleared")
	}
	if result.VisitorPenaltyYears != nil {
		t.Error("Expected chosen visitor penalty to be cleared")
	}

	if base.EntryMethod != domain.EntryVisitor || base.VisitorPenaltyYears == nil {
		t.Error("Base profile was modified")
	}
}

func TestSetVolunteering(t *testing.T) {
	base := createTestProfile()
	years := 5
	transform := &SetVolunteering{Enabled: true, Years: &years}

	result, err := transform.Apply(base)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !result.HasVolunteering {
		t.Error("Expected volunteering to be enabled")
	}
	if result.VolunteeringReductionYears == nil || *result.VolunteeringReductionYears != 5 {
		t.Errorf("Expected volunteering reduction 5, got %v", result.VolunteeringReductionYears)
	}

	years = 1
	if *result.VolunteeringReductionYears != 5 {
		t.Error("Result shares storage with the transform")
	}
}

func TestSetPartnerWork_NoPartner(t *testing.T) {
	base := createTestProfile()
	base.HasPartner = false
	transform := &SetPartnerWork{Status: domain.PartnerWorkingHigh}

	if err := transform.Validate(base); err == nil {
		t.Error("Expected error for profile without partner")
	}
}

func TestSetPartnerWork_WithIncome(t *testing.T) {
	base := createTestProfile()
	income := decimal.NewFromInt(51000)
	transform := &SetPartnerWork{Status: domain.PartnerWorkingHigh, Income: &income}

	result, err := ApplyTransforms(base, []ProfileTransform{transform})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if result.PartnerWorkStatus != domain.PartnerWorkingHigh {
		t.Errorf("Expected working-high, got %s", result.PartnerWorkStatus)
	}
	if result.PartnerIncome == nil || !result.PartnerIncome.Equal(income) {
		t.Errorf("Expected partner income 51000, got %v", result.PartnerIncome)
	}
}

func TestTransformValidation(t *testing.T) {
	base := createTestProfile()
	negative := decimal.NewFromInt(-1)
	negativeYears := -2

	tests := []struct {
		name      string
		transform ProfileTransform
		wantErr   bool
	}{
		{"valid income", &SetIncome{Amount: decimal.NewFromInt(40000)}, false},
		{"negative income", &SetIncome{Amount: negative}, true},
		{"valid english", &SetEnglish{Level: domain.EnglishC2}, false},
		{"unknown english", &SetEnglish{Level: "A1"}, true},
		{"valid category", &SetCategory{Category: domain.VisaFamily}, false},
		{"unlisted category", &SetCategory{Category: "seasonal-worker"}, false},
		{"empty category", &SetCategory{}, true},
		{"valid occupation", &SetOccupation{Level: domain.OccupationRQF3To5}, false},
		{"unknown occupation", &SetOccupation{Level: "RQF1"}, true},
		{"negative volunteering", &SetVolunteering{Enabled: true, Years: &negativeYears}, true},
		{"valid entry", &SetEntry{Method: domain.EntryIllegal}, false},
		{"unknown entry", &SetEntry{Method: "boat"}, true},
		{"unknown partner status", &SetPartnerWork{Status: "retired"}, true},
		{"negative partner income", &SetPartnerWork{Status: domain.PartnerWorkingLow, Income: &negative}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.transform.Validate(base)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTransformValidation_NilBase(t *testing.T) {
	transforms := []ProfileTransform{
		&SetIncome{},
		&SetIncomeYears{},
		&SetEnglish{Level: domain.EnglishB2},
		&SetCategory{Category: domain.VisaBNO},
		&SetOccupation{Level: domain.OccupationRQF6Plus},
		&SetVolunteering{},
		&SetEntry{Method: domain.EntryLegal},
		&ClearPenalties{},
		&SetPartnerWork{Status: domain.PartnerNotWorking},
	}

	for _, transform := range transforms {
		if err := transform.Validate(nil); err == nil {
			t.Errorf("%s: expected error for nil base", transform.Name())
		}
	}
}

func TestTransformError(t *testing.T) {
	inner := errors.New("inner")
	err := NewTransformError("set_income", "validate", "bad amount", inner)

	if err.Error() != "transform set_income (validate): bad amount: inner" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("Expected wrapped error to unwrap")
	}

	plain := NewTransformError("set_income", "validate", "bad amount", nil)
	if plain.Error() != "transform set_income (validate): bad amount" {
		t.Errorf("Unexpected message: %s", plain.Error())
	}
}
