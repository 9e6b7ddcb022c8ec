package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ProfileTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_income", createSetIncome)
	registry.Register("set_income_years", createSetIncomeYears)
	registry.Register("set_english", createSetEnglish)
	registry.Register("set_category", createSetCategory)
	registry.Register("set_occupation", createSetOccupation)
	registry.Register("set_volunteering", createSetVolunteering)
	registry.Register("set_entry", createSetEntry)
	registry.Register("clear_penalties", createClearPenalties)
	registry.Register("set_partner_work", createSetPartnerWork)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ProfileTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_income:amount=52000"
// Transforms without parameters may omit the colon ("clear_penalties").
func (r *TransformRegistry) ParseTransformSpec(spec string) (ProfileTransform, error) {
	name, paramsStr, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	paramsStr = strings.TrimSpace(paramsStr)
	if name == "" {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			key, value, ok := strings.Cut(paramPair, "=")
			if !ok {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func createSetIncome(params map[string]string) (ProfileTransform, error) {
	amount, err := requiredAmount("set_income", "amount", params)
	if err != nil {
		return nil, err
	}
	return &SetIncome{Amount: amount}, nil
}

func createSetIncomeYears(params map[string]string) (ProfileTransform, error) {
	years, err := requiredInt("set_income_years", "years", params)
	if err != nil {
		return nil, err
	}
	return &SetIncomeYears{Years: years}, nil
}

func createSetEnglish(params map[string]string) (ProfileTransform, error) {
	level, ok := params["level"]
	if !ok {
		return nil, fmt.Errorf("set_english requires 'level' parameter")
	}
	if strings.EqualFold(level, string(domain.EnglishBelowB2)) {
		return &SetEnglish{Level: domain.EnglishBelowB2}, nil
	}
	return &SetEnglish{Level: domain.EnglishLevel(strings.ToUpper(level))}, nil
}

func createSetCategory(params map[string]string) (ProfileTransform, error) {
	category, ok := params["category"]
	if !ok {
		return nil, fmt.Errorf("set_category requires 'category' parameter")
	}
	return &SetCategory{Category: domain.VisaCategory(strings.ToLower(category))}, nil
}

func createSetOccupation(params map[string]string) (ProfileTransform, error) {
	level, ok := params["level"]
	if !ok {
		return nil, fmt.Errorf("set_occupation requires 'level' parameter")
	}
	return &SetOccupation{Level: domain.OccupationLevel(strings.ToUpper(level))}, nil
}

func createSetVolunteering(params map[string]string) (ProfileTransform, error) {
	t := &SetVolunteering{Enabled: true}
	if enabledStr, ok := params["enabled"]; ok {
		enabled, err := cast.ToBoolE(enabledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid enabled value: %w", err)
		}
		t.Enabled = enabled
	}
	if _, ok := params["years"]; ok {
		years, err := requiredInt("set_volunteering", "years", params)
		if err != nil {
			return nil, err
		}
		t.Years = &years
	}
	return t, nil
}

func createSetEntry(params map[string]string) (ProfileTransform, error) {
	method, ok := params["method"]
	if !ok {
		return nil, fmt.Errorf("set_entry requires 'method' parameter")
	}
	return &SetEntry{Method: domain.EntryMethod(strings.ToLower(method))}, nil
}

func createClearPenalties(params map[string]string) (ProfileTransform, error) {
	return &ClearPenalties{}, nil
}

func createSetPartnerWork(params map[string]string) (ProfileTransform, error) {
	status, ok := params["status"]
	if !ok {
		return nil, fmt.Errorf("set_partner_work requires 'status' parameter")
	}
	t := &SetPartnerWork{Status: domain.PartnerWorkStatus(strings.ToLower(status))}
	if _, ok := params["income"]; ok {
		income, err := requiredAmount("set_partner_work", "income", params)
		if err != nil {
			return nil, err
		}
		t.Income = &income
	}
	return t, nil
}

func requiredInt(transform, key string, params map[string]string) (int, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func requiredAmount(transform, key string, params map[string]string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimPrefix(raw, "£"), "_", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}
