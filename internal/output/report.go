package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
)

// Report is everything a formatter renders for one evaluation
type Report struct {
	Profile     *domain.ApplicantProfile `json:"profile"`
	Outcome     *domain.Outcome          `json:"outcome"`
	Rules       domain.RulesMetadata     `json:"rules"`
	Assumptions []string                 `json:"assumptions"`
	GeneratedAt time.Time                `json:"generatedAt"`
}

// NewReport bundles a profile and its outcome for rendering
func NewReport(profile *domain.ApplicantProfile, outcome *domain.Outcome, rules domain.RulesMetadata, now time.Time) *Report {
	return &Report{
		Profile:     profile,
		Outcome:     outcome,
		Rules:       rules,
		Assumptions: DefaultAssumptions,
		GeneratedAt: now,
	}
}

// Headline returns the one-line verdict shown at the top of every report
func (r *Report) Headline() string {
	o := r.Outcome
	switch kind, text := o.PrimaryBlock(); kind {
	case domain.BlockRoute:
		return fmt.Sprintf("The %s route does not lead to settlement", o.VisaCategory)
	case domain.BlockCriminal:
		return "A criminal record blocks settlement eligibility"
	case domain.BlockRequirement:
		return text
	}
	if o.InsufficientInput {
		return fmt.Sprintf("Estimated %d years; add a visa start or arrival date to see dates and fees", o.MainApplicantYears)
	}
	return fmt.Sprintf("Estimated %d years, settlement from %s", o.MainApplicantYears, FormatDate(o.ILRDate))
}

// SaveProfile saves a profile to a YAML file
func SaveProfile(profile *domain.ApplicantProfile, filename string) error {
	data, err := yaml.Marshal(profile)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}

// FormatCurrency formats a whole-pound amount with thousands separators
func FormatCurrency(amount decimal.Decimal) string {
	s := domain.FormatWholeAmount(amount)
	if strings.HasPrefix(s, "-") {
		return "-£" + s[1:]
	}
	return "£" + s
}

// FormatDate formats an optional date for display
func FormatDate(t *time.Time) string {
	if t == nil {
		return "n/a"
	}
	return t.Format("2 Jan 2006")
}

// FormatYears formats an optional year count
func FormatYears(years *int) string {
	if years == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d years", *years)
}

func checkmark(met bool) string {
	if met {
		return "✓"
	}
	return "✗"
}
