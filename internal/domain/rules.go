package domain

import (
	"github.com/shopspring/decimal"
)

// SettlementRules contains every threshold, magnitude, and fee table the engine reads.
// It is loaded from rules.yaml (optional) and overlaid on DefaultSettlementRules.
type SettlementRules struct {
	Metadata   RulesMetadata  `yaml:"metadata" json:"metadata"`
	Timeline   TimelineRules  `yaml:"timeline" json:"timeline"`
	Income     IncomeRules    `yaml:"income" json:"income"`
	Reductions ReductionRules `yaml:"reductions" json:"reductions"`
	Floors     FloorRules     `yaml:"floors" json:"floors"`
	Penalties  PenaltyRules   `yaml:"penalties" json:"penalties"`
	Dependants DependantRules `yaml:"dependants" json:"dependants"`
	Fees       FeeRules       `yaml:"fees" json:"fees"`

	// Routes that do not lead to settlement at all.
	NoSettlementRoutes []VisaCategory `yaml:"no_settlement_routes" json:"noSettlementRoutes"`
}

// RulesMetadata describes where the rule data came from
type RulesMetadata struct {
	PolicyBasis string `yaml:"policy_basis" json:"policyBasis"`
	LastUpdated string `yaml:"last_updated" json:"lastUpdated"`
	FeeYear     int    `yaml:"fee_year" json:"feeYear"`
}

// TimelineRules contains the baseline and calendar constants
type TimelineRules struct {
	BaselineYears        int `yaml:"baseline_years" json:"baselineYears"`
	MinimumYears         int `yaml:"minimum_years" json:"minimumYears"`
	EarlyApplicationDays int `yaml:"early_application_days" json:"earlyApplicationDays"`
}

// IncomeRules contains the income thresholds (GBP per year)
type IncomeRules struct {
	MinimumThreshold decimal.Decimal `yaml:"minimum_threshold" json:"minimumThreshold"`
	HigherThreshold  decimal.Decimal `yaml:"higher_threshold" json:"higherThreshold"`
	TopThreshold     decimal.Decimal `yaml:"top_threshold" json:"topThreshold"`
	RequiredYears    int             `yaml:"required_years" json:"requiredYears"`       // Sustained years for reductions and the requirement
	ReviewUpperYears int             `yaml:"review_upper_years" json:"reviewUpperYears"` // Durations in [RequiredYears, ReviewUpperYears) warn
}

// YearRange is an operator-configurable magnitude clamped to [Min, Max].
type YearRange struct {
	Min     int `yaml:"min" json:"min"`
	Max     int `yaml:"max" json:"max"`
	Default int `yaml:"default" json:"default"`
}

// Clamp returns the chosen value (or Default when nil) bounded to [Min, Max].
func (r YearRange) Clamp(chosen *int) int {
	v := r.Default
	if chosen != nil {
		v = *chosen
	}
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// ReductionRules contains the size of every reduction candidate
type ReductionRules struct {
	BNOYears             int       `yaml:"bno_years" json:"bnoYears"`
	TalentYears          int       `yaml:"talent_years" json:"talentYears"` // Global Talent / Innovator Founder
	BritishPartnerYears  int       `yaml:"british_partner_years" json:"britishPartnerYears"`
	TopIncomeYears       int       `yaml:"top_income_years" json:"topIncomeYears"`
	HigherIncomeYears    int       `yaml:"higher_income_years" json:"higherIncomeYears"`
	PublicServiceYears   int       `yaml:"public_service_years" json:"publicServiceYears"`
	PublicServiceMinimum int       `yaml:"public_service_minimum" json:"publicServiceMinimum"`
	AdvancedEnglishYears int       `yaml:"advanced_english_years" json:"advancedEnglishYears"`
	Volunteering         YearRange `yaml:"volunteering" json:"volunteering"`
}

// FloorRules contains route-specific minimum baselines
type FloorRules struct {
	LowerSkilledYears     int `yaml:"lower_skilled_years" json:"lowerSkilledYears"`
	RefugeeInCountryYears int `yaml:"refugee_in_country_years" json:"refugeeInCountryYears"`
	RefugeeYears          int `yaml:"refugee_years" json:"refugeeYears"`
}

// PenaltyRules contains the size of every penalty candidate
type PenaltyRules struct {
	IllegalEntry          YearRange `yaml:"illegal_entry" json:"illegalEntry"`
	VisitorEntry          YearRange `yaml:"visitor_entry" json:"visitorEntry"`
	Overstay              YearRange `yaml:"overstay" json:"overstay"`
	OverstayMinMonths     int       `yaml:"overstay_min_months" json:"overstayMinMonths"`
	PublicFundsLongYears  int       `yaml:"public_funds_long_years" json:"publicFundsLongYears"`
	PublicFundsShortYears int       `yaml:"public_funds_short_years" json:"publicFundsShortYears"`
	PublicFundsLongMonths int       `yaml:"public_funds_long_months" json:"publicFundsLongMonths"`
}

// DependantRules contains the partner timeline constants
type DependantRules struct {
	PartnerBaselineYears  int `yaml:"partner_baseline_years" json:"partnerBaselineYears"`
	PartnerIncomeDiscount int `yaml:"partner_income_discount" json:"partnerIncomeDiscount"`
}

// FeeBand is one renewal band of a visa category.
// MaxYears is the largest remaining period the band applies to; 0 means unbounded.
type FeeBand struct {
	Fee           decimal.Decimal `yaml:"fee" json:"fee"`
	DurationYears decimal.Decimal `yaml:"duration_years" json:"durationYears"`
	MaxYears      int             `yaml:"max_years" json:"maxYears"`
}

// AppliesTo reports whether the band covers the given (whole) remaining years.
func (b FeeBand) AppliesTo(remainingYears int) bool {
	return b.MaxYears == 0 || remainingYears <= b.MaxYears
}

// CategoryFees is the fee entry for one visa category
type CategoryFees struct {
	SurchargePerYear decimal.Decimal `yaml:"surcharge_per_year" json:"surchargePerYear"`
	Bands            []FeeBand       `yaml:"bands" json:"bands"`
}

// FeeRules contains the settlement fee and the per-category fee lookup
type FeeRules struct {
	Currency       string                        `yaml:"currency" json:"currency"`
	ApplicationFee decimal.Decimal               `yaml:"application_fee" json:"applicationFee"`
	Categories     map[VisaCategory]CategoryFees `yaml:"categories" json:"categories"`
	Default        CategoryFees                  `yaml:"default" json:"default"`
}

// Lookup returns the fee entry for a category, or the default entry and false.
// The returned bands are a copy.
func (f FeeRules) Lookup(category VisaCategory) (CategoryFees, bool) {
	entry, ok := f.Categories[category]
	if !ok || len(entry.Bands) == 0 {
		entry, ok = f.Default, false
	}
	return CategoryFees{
		SurchargePerYear: entry.SurchargePerYear,
		Bands:            append([]FeeBand(nil), entry.Bands...),
	}, ok
}

// HasNoSettlementPath reports whether a category cannot lead to settlement.
func (r SettlementRules) HasNoSettlementPath(category VisaCategory) bool {
	for _, c := range r.NoSettlementRoutes {
		if c == category {
			return true
		}
	}
	return false
}

// DefaultSettlementRules returns the rules of the 2025 earned-settlement consultation
func DefaultSettlementRules() SettlementRules {
	return SettlementRules{
		Metadata: RulesMetadata{
			PolicyBasis: "Earned settlement consultation (closes 12 February 2026)",
			LastUpdated: "2025-11-20",
			FeeYear:     2025,
		},
		Timeline: TimelineRules{
			BaselineYears:        10,
			MinimumYears:         3,
			EarlyApplicationDays: 28,
		},
		Income: IncomeRules{
			MinimumThreshold: decimal.NewFromInt(12570),
			HigherThreshold:  decimal.NewFromInt(50270),
			TopThreshold:     decimal.NewFromInt(125140),
			RequiredYears:    3,
			ReviewUpperYears: 5,
		},
		Reductions: ReductionRules{
			BNOYears:             5,
			TalentYears:          7,
			BritishPartnerYears:  5,
			TopIncomeYears:       7,
			HigherIncomeYears:    5,
			PublicServiceYears:   5,
			PublicServiceMinimum: 5,
			AdvancedEnglishYears: 1,
			Volunteering:         YearRange{Min: 3, Max: 5, Default: 3},
		},
		Floors: FloorRules{
			LowerSkilledYears:     15,
			RefugeeInCountryYears: 20,
			RefugeeYears:          10,
		},
		Penalties: PenaltyRules{
			IllegalEntry:          YearRange{Min: 0, Max: 20, Default: 20},
			VisitorEntry:          YearRange{Min: 0, Max: 20, Default: 20},
			Overstay:              YearRange{Min: 0, Max: 20, Default: 20},
			OverstayMinMonths:     6,
			PublicFundsLongYears:  10,
			PublicFundsShortYears: 5,
			PublicFundsLongMonths: 12,
		},
		Dependants: DependantRules{
			PartnerBaselineYears:  10,
			PartnerIncomeDiscount: 5,
		},
		Fees:               DefaultFeeRules(),
		NoSettlementRoutes: []VisaCategory{VisaUkraine, VisaStudent},
	}
}

// DefaultFeeRules returns the 2025 fee tables
func DefaultFeeRules() FeeRules {
	surcharge := decimal.NewFromInt(1035)
	single := func(fee int64, duration float64) []FeeBand {
		return []FeeBand{{Fee: decimal.NewFromInt(fee), DurationYears: decimal.NewFromFloat(duration)}}
	}

	return FeeRules{
		Currency:       "GBP",
		ApplicationFee: decimal.NewFromInt(3029),
		Categories: map[VisaCategory]CategoryFees{
			VisaBNO:          {SurchargePerYear: surcharge, Bands: single(180, 5)},
			VisaFamily:       {SurchargePerYear: surcharge, Bands: single(1938, 2.5)},
			VisaGlobalTalent: {SurchargePerYear: surcharge, Bands: single(766, 5)},
			VisaInnovator:    {SurchargePerYear: surcharge, Bands: single(1274, 3)},
			VisaOther:        {SurchargePerYear: surcharge, Bands: single(625, 3)},
			VisaRefugee:      {SurchargePerYear: decimal.Zero, Bands: single(0, 5)},
			VisaSkilledWorker: {
				SurchargePerYear: surcharge,
				Bands: []FeeBand{
					{Fee: decimal.NewFromInt(769), DurationYears: decimal.NewFromInt(3), MaxYears: 3},
					{Fee: decimal.NewFromInt(1751), DurationYears: decimal.NewFromInt(5)},
				},
			},
			VisaSkilledWorkerCare: {
				SurchargePerYear: decimal.Zero, // Health and care workers are exempt
				Bands: []FeeBand{
					{Fee: decimal.NewFromInt(304), DurationYears: decimal.NewFromInt(3), MaxYears: 3},
					{Fee: decimal.NewFromInt(590), DurationYears: decimal.NewFromInt(5)},
				},
			},
			VisaStudent: {SurchargePerYear: surcharge, Bands: single(880, 3)},
			VisaUkraine: {SurchargePerYear: decimal.Zero, Bands: single(0, 5)},
		},
		Default: CategoryFees{SurchargePerYear: surcharge, Bands: single(625, 3)},
	}
}
