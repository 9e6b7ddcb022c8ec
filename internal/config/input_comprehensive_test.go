package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
)

func TestInputParser_LoadRulesFromFile_Defaults(t *testing.T) {
	rules, err := NewInputParser().LoadRulesFromFile("")

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettlementRules(), rules)
}

func TestInputParser_LoadRulesFromFile_Overlay(t *testing.T) {
	rulesFile := writeFile(t, "rules.yaml", `
metadata:
  last_updated: "2026-03-01"
income:
  top_threshold: 130000
reductions:
  volunteering:
    min: 2
    max: 6
    default: 2
fees:
  application_fee: 3200
  categories:
    innovator:
      surcharge_per_year: 1100
      bands:
        - fee: 1300
          duration_years: 3
`)

	rules, err := NewInputParser().LoadRulesFromFile(rulesFile)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-01", rules.Metadata.LastUpdated)
	assert.True(t, decimal.NewFromInt(130000).Equal(rules.Income.TopThreshold))
	assert.True(t, decimal.NewFromInt(50270).Equal(rules.Income.HigherThreshold), "Unset values keep defaults")
	assert.Equal(t, domain.YearRange{Min: 2, Max: 6, Default: 2}, rules.Reductions.Volunteering)
	assert.True(t, decimal.NewFromInt(3200).Equal(rules.Fees.ApplicationFee))

	innovator, ok := rules.Fees.Lookup(domain.VisaInnovator)
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(1100).Equal(innovator.SurchargePerYear))

	_, ok = rules.Fees.Lookup(domain.VisaBNO)
	assert.True(t, ok, "Other categories are kept")
	assert.Equal(t, 10, rules.Timeline.BaselineYears)
}

func TestInputParser_LoadRulesFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		contains string
	}{
		{
			name:     "Not YAML",
			content:  "income: [unclosed",
			contains: "failed to parse YAML",
		},
		{
			name:     "Thresholds out of order",
			content:  "income:\n  higher_threshold: 200000\n",
			contains: "thresholds must be ascending",
		},
		{
			name:     "Baseline below minimum",
			content:  "timeline:\n  baseline_years: 2\n",
			contains: "baseline years (2) cannot be below minimum years (3)",
		},
		{
			name:     "Default outside range",
			content:  "penalties:\n  overstay:\n    min: 0\n    max: 10\n    default: 20\n",
			contains: "penalties.overstay",
		},
		{
			name:     "Zero duration band",
			content:  "fees:\n  default:\n    surcharge_per_year: 1035\n    bands:\n      - fee: 625\n        duration_years: 0\n",
			contains: "duration must be positive",
		},
		{
			name:     "Category without bands",
			content:  "fees:\n  categories:\n    family:\n      surcharge_per_year: 1035\n",
			contains: "category family: at least one fee band is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "rules.yaml", tt.content)

			_, err := NewInputParser().LoadRulesFromFile(path)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestInputParser_ValidateRules_Defaults(t *testing.T) {
	rules := domain.DefaultSettlementRules()
	assert.NoError(t, NewInputParser().ValidateRules(&rules))
}
