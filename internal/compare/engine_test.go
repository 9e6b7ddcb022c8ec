package compare

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrii-maglovanyi/mandrii-sub001/internal/calculation"
	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
)

var compareTime = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func baseProfile() *domain.ApplicantProfile {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.ApplicantProfile{
		VisaCategory:    domain.VisaSkilledWorker,
		EntryMethod:     domain.EntryLegal,
		OccupationLevel: domain.OccupationRQF6Plus,
		Income:          decimal.NewFromInt(30000),
		IncomeYears:     3,
		EnglishLevel:    domain.EnglishB2,
		PassedLifeInUK:  true,
		VisaStartDate:   &start,
	}
}

func TestCompareEngine_Compare_Templates(t *testing.T) {
	ce := NewCompareEngine(calculation.NewSettlementEngine())

	compSet, err := ce.Compare(context.Background(), baseProfile(), CompareOptions{
		Templates: []string{"improve_english", "reach_higher_income"},
		Now:       compareTime,
	})
	require.NoError(t, err)

	assert.Equal(t, "base", compSet.BaseScenarioName)
	require.NotNil(t, compSet.BaseResult)
	assert.Equal(t, 10, compSet.BaseResult.MainApplicantYears)
	require.Len(t, compSet.AlternativeResults, 2)

	english := compSet.AlternativeResults[0]
	assert.Equal(t, "base_improve_english", english.ScenarioName)
	assert.Equal(t, "Reach C1 English for the language reduction", english.Description)
	assert.Equal(t, 9, english.MainApplicantYears)
	assert.Equal(t, -1, english.MainYearsDiff)
	require.NotNil(t, english.ILRDateDiffDays)
	assert.Equal(t, -365, *english.ILRDateDiffDays)

	income := compSet.AlternativeResults[1]
	assert.Equal(t, 5, income.MainApplicantYears)
	assert.Equal(t, -5, income.MainYearsDiff)
	require.NotNil(t, income.CostDiffFromBase)
	assert.True(t, income.CostDiffFromBase.IsNegative(), "Shorter route should cost less")

	require.NotEmpty(t, compSet.Recommendations)
	assert.Contains(t, compSet.Recommendations[0], "Fastest: base_reach_higher_income")
}

func TestCompareEngine_Compare_BaseUnchanged(t *testing.T) {
	ce := NewCompareEngine(calculation.NewSettlementEngine())
	base := baseProfile()

	_, err := ce.Compare(context.Background(), base, CompareOptions{
		Templates:  []string{"reach_top_income"},
		Transforms: []string{"set_english:level=C2"},
		Now:        compareTime,
	})
	require.NoError(t, err)

	assert.True(t, base.Income.Equal(decimal.NewFromInt(30000)))
	assert.Equal(t, domain.EnglishB2, base.EnglishLevel)
}

func TestCompareEngine_Compare_CustomTransforms(t *testing.T) {
	ce := NewCompareEngine(calculation.NewSettlementEngine())
	base := baseProfile()
	base.VisaCategory = domain.VisaStudent

	compSet, err := ce.Compare(context.Background(), base, CompareOptions{
		BaseScenarioName: "student",
		Transforms:       []string{"set_category:category=skilled-worker", "set_english:level=C1"},
		Now:              compareTime,
	})
	require.NoError(t, err)

	assert.True(t, compSet.BaseResult.Blocked)
	require.Len(t, compSet.AlternativeResults, 1)

	custom := compSet.AlternativeResults[0]
	assert.Equal(t, "student_custom", custom.ScenarioName)
	assert.Equal(t, "Switch to the skilled-worker route; Reach English level C1", custom.Description)
	assert.False(t, custom.Blocked)
	assert.Equal(t, 9, custom.MainApplicantYears)
	assert.Contains(t, compSet.Recommendations, "Unblocks: student_custom clears the base profile's block (student route has no settlement path)")
}

func TestCompareEngine_Compare_Errors(t *testing.T) {
	ce := NewCompareEngine(calculation.NewSettlementEngine())

	tests := []struct {
		name    string
		base    *domain.ApplicantProfile
		options CompareOptions
		errText string
	}{
		{"nil base", nil, CompareOptions{}, "base profile cannot be nil"},
		{"unknown template", baseProfile(), CompareOptions{Templates: []string{"postpone_1yr"}}, "template postpone_1yr not found"},
		{"partner template without partner", baseProfile(), CompareOptions{Templates: []string{"partner_works_high"}}, "failed to apply template partner_works_high"},
		{"bad transform spec", baseProfile(), CompareOptions{Transforms: []string{"set_income:amount=lots"}}, "failed to parse transform"},
		{"invalid transform value", baseProfile(), CompareOptions{Transforms: []string{"set_english:level=A2"}}, "failed to apply transforms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compSet, err := ce.Compare(context.Background(), tt.base, tt.options)
			require.Error(t, err)
			assert.Nil(t, compSet)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestCompareEngine_CompareProfiles(t *testing.T) {
	ce := NewCompareEngine(calculation.NewSettlementEngine())

	bno := baseProfile()
	bno.VisaCategory = domain.VisaBNO

	compSet, err := ce.CompareProfiles(context.Background(),
		NamedProfile{Name: "current", Profile: baseProfile()},
		[]NamedProfile{{Name: "bno", Profile: bno}},
		compareTime,
	)
	require.NoError(t, err)

	assert.Equal(t, "current", compSet.BaseScenarioName)
	require.Len(t, compSet.AlternativeResults, 1)
	assert.Equal(t, 5, compSet.AlternativeResults[0].MainApplicantYears)
	assert.Equal(t, -5, compSet.AlternativeResults[0].MainYearsDiff)
}

func TestCompareEngine_CompareProfiles_Cancelled(t *testing.T) {
	ce := NewCompareEngine(calculation.NewSettlementEngine())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ce.CompareProfiles(ctx, NamedProfile{Name: "base", Profile: baseProfile()}, nil, compareTime)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompareEngine_CompareProfiles_NilAlternative(t *testing.T) {
	ce := NewCompareEngine(calculation.NewSettlementEngine())

	_, err := ce.CompareProfiles(context.Background(),
		NamedProfile{Name: "base", Profile: baseProfile()},
		[]NamedProfile{{Name: "missing"}},
		compareTime,
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "alternative profile missing cannot be nil")
}

func TestNewCompareEngine_TemplatesFollowRules(t *testing.T) {
	rules := domain.DefaultSettlementRules()
	rules.Income.HigherThreshold = decimal.NewFromInt(45000)

	ce := NewCompareEngine(calculation.NewSettlementEngineWithRules(rules))
	template, ok := ce.TemplateRegistry.Get("reach_higher_income")

	require.True(t, ok)
	assert.Contains(t, template.Description, "£45000+")
}
