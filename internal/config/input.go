package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
)

// InputParser handles parsing of answer and rules files
type InputParser struct {
	normalizer *Normalizer
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{normalizer: NewNormalizer()}
}

// LoadFromFile loads applicant answers from a YAML or JSON file and normalizes them
func (ip *InputParser) LoadFromFile(filename string) (*domain.ApplicantProfile, error) {
	raw, err := ip.LoadAnswersFromFile(filename)
	if err != nil {
		return nil, err
	}

	profile, err := ip.normalizer.Normalize(*raw)
	if err != nil {
		return nil, fmt.Errorf("answers validation failed: %w", err)
	}
	return profile, nil
}

// LoadAnswersFromFile loads raw answers without normalizing them
func (ip *InputParser) LoadAnswersFromFile(filename string) (*RawAnswers, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var raw RawAnswers
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &raw, nil
}

// LoadRulesFromFile overlays a YAML rules file on the default rules and validates the result.
// An empty filename returns the defaults.
func (ip *InputParser) LoadRulesFromFile(filename string) (domain.SettlementRules, error) {
	rules := domain.DefaultSettlementRules()
	if filename == "" {
		return rules, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.SettlementRules{}, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return domain.SettlementRules{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateRules(&rules); err != nil {
		return domain.SettlementRules{}, fmt.Errorf("rules validation failed: %w", err)
	}
	return rules, nil
}

// ValidateRules validates a rules table
func (ip *InputParser) ValidateRules(rules *domain.SettlementRules) error {
	if err := ip.validateTimeline(rules.Timeline); err != nil {
		return fmt.Errorf("timeline: %w", err)
	}
	if err := ip.validateIncome(rules.Income); err != nil {
		return fmt.Errorf("income: %w", err)
	}

	ranges := map[string]domain.YearRange{
		"reductions.volunteering": rules.Reductions.Volunteering,
		"penalties.illegal_entry": rules.Penalties.IllegalEntry,
		"penalties.visitor_entry": rules.Penalties.VisitorEntry,
		"penalties.overstay":      rules.Penalties.Overstay,
	}
	for name, r := range ranges {
		if err := validateRange(r); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	if rules.Dependants.PartnerIncomeDiscount > rules.Dependants.PartnerBaselineYears {
		return fmt.Errorf("dependants: partner income discount cannot exceed partner baseline")
	}

	if err := ip.validateFees(rules.Fees); err != nil {
		return fmt.Errorf("fees: %w", err)
	}
	return nil
}

func (ip *InputParser) validateTimeline(t domain.TimelineRules) error {
	if t.MinimumYears <= 0 {
		return fmt.Errorf("minimum years must be positive")
	}
	if t.BaselineYears < t.MinimumYears {
		return fmt.Errorf("baseline years (%d) cannot be below minimum years (%d)", t.BaselineYears, t.MinimumYears)
	}
	if t.EarlyApplicationDays < 0 {
		return fmt.Errorf("early application days cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateIncome(i domain.IncomeRules) error {
	if !i.MinimumThreshold.IsPositive() {
		return fmt.Errorf("minimum threshold must be positive")
	}
	if !i.MinimumThreshold.LessThan(i.HigherThreshold) || !i.HigherThreshold.LessThan(i.TopThreshold) {
		return fmt.Errorf("thresholds must be ascending (minimum %s, higher %s, top %s)",
			i.MinimumThreshold, i.HigherThreshold, i.TopThreshold)
	}
	if i.RequiredYears < 0 || i.ReviewUpperYears < i.RequiredYears {
		return fmt.Errorf("review window [%d, %d) is invalid", i.RequiredYears, i.ReviewUpperYears)
	}
	return nil
}

func validateRange(r domain.YearRange) error {
	if r.Min < 0 {
		return fmt.Errorf("min cannot be negative")
	}
	if r.Min > r.Max {
		return fmt.Errorf("min (%d) cannot exceed max (%d)", r.Min, r.Max)
	}
	if r.Default < r.Min || r.Default > r.Max {
		return fmt.Errorf("default (%d) must be within [%d, %d]", r.Default, r.Min, r.Max)
	}
	return nil
}

func (ip *InputParser) validateFees(f domain.FeeRules) error {
	if f.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	if f.ApplicationFee.IsNegative() {
		return fmt.Errorf("application fee cannot be negative")
	}
	if err := validateCategoryFees(f.Default); err != nil {
		return fmt.Errorf("default: %w", err)
	}
	for category, entry := range f.Categories {
		if err := validateCategoryFees(entry); err != nil {
			return fmt.Errorf("category %s: %w", category, err)
		}
	}
	return nil
}

func validateCategoryFees(c domain.CategoryFees) error {
	if c.SurchargePerYear.IsNegative() {
		return fmt.Errorf("surcharge per year cannot be negative")
	}
	if len(c.Bands) == 0 {
		return fmt.Errorf("at least one fee band is required")
	}
	for i, b := range c.Bands {
		if b.Fee.IsNegative() {
			return fmt.Errorf("band %d: fee cannot be negative", i)
		}
		if b.DurationYears.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("band %d: duration must be positive", i)
		}
		if b.MaxYears < 0 {
			return fmt.Errorf("band %d: max years cannot be negative", i)
		}
	}
	return nil
}
