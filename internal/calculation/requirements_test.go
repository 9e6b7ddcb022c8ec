package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
)

func requirementCodes(reqs []domain.Requirement) []domain.RequirementCode {
	codes := make([]domain.RequirementCode, 0, len(reqs))
	for _, r := range reqs {
		codes = append(codes, r.Code)
	}
	return codes
}

func TestRequirementEvaluator_Order(t *testing.T) {
	re := NewRequirementEvaluator(domain.DefaultSettlementRules(), nil)

	result := re.Evaluate(eligibleProfile())

	assert.Equal(t, []domain.RequirementCode{
		domain.RequirementNoCriminalRecord,
		domain.RequirementEnglish,
		domain.RequirementLifeInUK,
		domain.RequirementNoDebts,
		domain.RequirementIncome,
	}, requirementCodes(result.Requirements))
	assert.True(t, result.AllMet)
	assert.Empty(t, result.BlockingRequirements)
	assert.NotNil(t, result.BlockingRequirements, "Blocking list is never nil")
}

func TestRequirementEvaluator_Cases(t *testing.T) {
	tests := []struct {
		name             string
		modify           func(p *domain.ApplicantProfile)
		allMet           bool
		blocking         []domain.RequirementCode
		incomeWarning    bool
		routeBlock       bool
		criminalBlock    bool
		lastRequirement  domain.RequirementCode
		lastRequirementM bool
	}{
		{
			name:             "Eligible with income under review",
			modify:           func(p *domain.ApplicantProfile) {},
			allMet:           true,
			blocking:         []domain.RequirementCode{},
			incomeWarning:    true,
			lastRequirement:  domain.RequirementIncome,
			lastRequirementM: true,
		},
		{
			name:             "Five income years is not under review",
			modify:           func(p *domain.ApplicantProfile) { p.IncomeYears = 5 },
			allMet:           true,
			blocking:         []domain.RequirementCode{},
			lastRequirement:  domain.RequirementIncome,
			lastRequirementM: true,
		},
		{
			name:             "English below B2 is unmet but not blocking",
			modify:           func(p *domain.ApplicantProfile) { p.EnglishLevel = domain.EnglishBelowB2 },
			allMet:           false,
			blocking:         []domain.RequirementCode{},
			incomeWarning:    true,
			lastRequirement:  domain.RequirementIncome,
			lastRequirementM: true,
		},
		{
			name: "Short income duration blocks",
			modify: func(p *domain.ApplicantProfile) {
				p.IncomeYears = 2
			},
			allMet:           false,
			blocking:         []domain.RequirementCode{domain.BlockIncome},
			lastRequirement:  domain.RequirementIncome,
			lastRequirementM: false,
		},
		{
			name: "Low income under review window does not warn",
			modify: func(p *domain.ApplicantProfile) {
				p.Income = decimal.NewFromInt(5000)
				p.IncomeYears = 3
			},
			allMet:           false,
			blocking:         []domain.RequirementCode{domain.BlockIncome},
			incomeWarning:    false,
			lastRequirement:  domain.RequirementIncome,
			lastRequirementM: false,
		},
		{
			name: "Refugee income is waived",
			modify: func(p *domain.ApplicantProfile) {
				p.VisaCategory = domain.VisaRefugee
				p.Income = decimal.Zero
				p.IncomeYears = 0
			},
			allMet:           true,
			blocking:         []domain.RequirementCode{},
			lastRequirement:  domain.RequirementIncomeWaived,
			lastRequirementM: true,
		},
		{
			name: "Every block at once",
			modify: func(p *domain.ApplicantProfile) {
				p.HasCriminalRecord = true
				p.HasDebts = true
				p.Income = decimal.NewFromInt(1000)
			},
			allMet:           false,
			blocking:         []domain.RequirementCode{domain.BlockCriminalRecord, domain.BlockDebts, domain.BlockIncome},
			criminalBlock:    true,
			lastRequirement:  domain.RequirementIncome,
			lastRequirementM: false,
		},
		{
			name:             "Student route sets only the flag",
			modify:           func(p *domain.ApplicantProfile) { p.VisaCategory = domain.VisaStudent },
			allMet:           true,
			blocking:         []domain.RequirementCode{},
			incomeWarning:    true,
			routeBlock:       true,
			lastRequirement:  domain.RequirementIncome,
			lastRequirementM: true,
		},
	}

	re := NewRequirementEvaluator(domain.DefaultSettlementRules(), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := eligibleProfile()
			tt.modify(p)

			result := re.Evaluate(p)

			assert.Equal(t, tt.allMet, result.AllMet)
			assert.Equal(t, tt.blocking, requirementCodes(result.BlockingRequirements))
			assert.Equal(t, tt.routeBlock, result.HasRouteBlock)
			assert.Equal(t, tt.criminalBlock, result.HasCriminalBlock)
			if tt.incomeWarning {
				require.Len(t, result.Warnings, 1)
			} else {
				assert.Empty(t, result.Warnings)
			}

			require.Len(t, result.Requirements, 5)
			last := result.Requirements[4]
			assert.Equal(t, tt.lastRequirement, last.Code)
			assert.Equal(t, tt.lastRequirementM, last.Met)
		})
	}
}
