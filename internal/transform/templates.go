package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ProfileTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with the common what-if
// questions, sized from the given rules
func CreateBuiltInTemplates(rules domain.SettlementRules) *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "improve_english",
		Description: "Reach C1 English for the language reduction",
		Transforms: []ProfileTransform{
			&SetEnglish{Level: domain.EnglishC1},
		},
	})

	registry.Register(Template{
		Name: "reach_higher_income",
		Description: fmt.Sprintf("Earn £%s+ for %d years",
			rules.Income.HigherThreshold.StringFixed(0), rules.Income.RequiredYears),
		Transforms: []ProfileTransform{
			&SetIncome{Amount: rules.Income.HigherThreshold},
			&SetIncomeYears{Years: rules.Income.RequiredYears},
		},
	})

	registry.Register(Template{
		Name: "reach_top_income",
		Description: fmt.Sprintf("Earn £%s+ for %d years",
			rules.Income.TopThreshold.StringFixed(0), rules.Income.RequiredYears),
		Transforms: []ProfileTransform{
			&SetIncome{Amount: rules.Income.TopThreshold},
			&SetIncomeYears{Years: rules.Income.RequiredYears},
		},
	})

	maxVolunteering := rules.Reductions.Volunteering.Max
	registry.Register(Template{
		Name:        "volunteer_max",
		Description: fmt.Sprintf("Volunteer for the maximum %d-year reduction", maxVolunteering),
		Transforms: []ProfileTransform{
			&SetVolunteering{Enabled: true, Years: &maxVolunteering},
		},
	})

	partnerIncome := rules.Income.HigherThreshold
	registry.Register(Template{
		Name:        "partner_works_high",
		Description: fmt.Sprintf("Partner earns £%s+", partnerIncome.StringFixed(0)),
		Transforms: []ProfileTransform{
			&SetPartnerWork{Status: domain.PartnerWorkingHigh, Income: &partnerIncome},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base profile
func ApplyTemplate(base *domain.ApplicantProfile, template Template) (*domain.ApplicantProfile, error) {
	if len(template.Transforms) == 0 {
		if base == nil {
			return nil, fmt.Errorf("base profile cannot be nil")
		}
		return base.Clone(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{}
	order := []string{"Contribution", "Language", "Household"}
	for _, name := range registry.List() {
		template := registry.templates[name]
		switch {
		case strings.Contains(name, "english"):
			categories["Language"] = append(categories["Language"], template)
		case strings.HasPrefix(name, "partner_"):
			categories["Household"] = append(categories["Household"], template)
		default:
			categories["Contribution"] = append(categories["Contribution"], template)
		}
	}

	for _, category := range order {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-22s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  ilrcalc compare answers.yaml --with improve_english,reach_higher_income\n")
	sb.WriteString("  ilrcalc compare answers.yaml --transform set_income:amount=60000 --transform clear_penalties\n")

	return sb.String()
}
