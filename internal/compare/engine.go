package compare

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andrii-maglovanyi/mandrii-sub001/internal/calculation"
	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
	"github.com/andrii-maglovanyi/mandrii-sub001/internal/transform"
)

// CompareEngine orchestrates what-if comparison of applicant profiles
type CompareEngine struct {
	Engine            *calculation.SettlementEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine.
// Templates are sized from the engine's rules.
func NewCompareEngine(engine *calculation.SettlementEngine) *CompareEngine {
	return &CompareEngine{
		Engine:            engine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(engine.Rules),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string    // Label for the unmodified profile
	Templates        []string  // Template names, one alternative each
	Transforms       []string  // Transform specs combined into one "custom" alternative
	Now              time.Time // Evaluation date
}

// NamedProfile pairs a profile with a display name
type NamedProfile struct {
	Name    string
	Profile *domain.ApplicantProfile
}

// Compare evaluates the base profile and one alternative per template (plus one
// for the combined transform specs) and computes deltas against the base
func (ce *CompareEngine) Compare(
	ctx context.Context,
	base *domain.ApplicantProfile,
	options CompareOptions,
) (*ComparisonSet, error) {
	if base == nil {
		return nil, fmt.Errorf("base profile cannot be nil")
	}

	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = "base"
	}

	alternatives := make([]NamedProfile, 0, len(options.Templates)+1)
	descriptions := make(map[string]string)

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(base, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		name := baseName + "_" + template.Name
		alternatives = append(alternatives, NamedProfile{Name: name, Profile: modified})
		descriptions[name] = template.Description
	}

	if len(options.Transforms) > 0 {
		transforms := make([]transform.ProfileTransform, 0, len(options.Transforms))
		var desc []string
		for _, spec := range options.Transforms {
			t, err := ce.TransformRegistry.ParseTransformSpec(spec)
			if err != nil {
				return nil, fmt.Errorf("failed to parse transform %q: %w", spec, err)
			}
			transforms = append(transforms, t)
			desc = append(desc, t.Description())
		}

		modified, err := transform.ApplyTransforms(base, transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply transforms: %w", err)
		}

		name := baseName + "_custom"
		alternatives = append(alternatives, NamedProfile{Name: name, Profile: modified})
		descriptions[name] = strings.Join(desc, "; ")
	}

	compSet, err := ce.CompareProfiles(ctx, NamedProfile{Name: baseName, Profile: base}, alternatives, options.Now)
	if err != nil {
		return nil, err
	}
	for i := range compSet.AlternativeResults {
		compSet.AlternativeResults[i].Description = descriptions[compSet.AlternativeResults[i].ScenarioName]
	}
	return compSet, nil
}

// CompareProfiles compares explicit profiles (not using templates)
func (ce *CompareEngine) CompareProfiles(
	ctx context.Context,
	base NamedProfile,
	alternatives []NamedProfile,
	now time.Time,
) (*ComparisonSet, error) {
	if base.Profile == nil {
		return nil, fmt.Errorf("base profile %s cannot be nil", base.Name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(base.Name, ce.Engine.Evaluate(base.Profile, now))

	results := make([]ComparisonResult, 0, len(alternatives))
	for _, alt := range alternatives {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if alt.Profile == nil {
			return nil, fmt.Errorf("alternative profile %s cannot be nil", alt.Name)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(alt.Name, ce.Engine.Evaluate(alt.Profile, now))
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		results = append(results, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: results,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
