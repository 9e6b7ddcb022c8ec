package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/andrii-maglovanyi/mandrii-sub001/internal/calculation"
	"github.com/andrii-maglovanyi/mandrii-sub001/internal/compare"
	"github.com/andrii-maglovanyi/mandrii-sub001/internal/config"
	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
	"github.com/andrii-maglovanyi/mandrii-sub001/internal/transform"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Answers
	profilePath string
	base        *domain.ApplicantProfile // As loaded
	profile     *domain.ApplicantProfile // With interactive edits applied

	// Engines
	engine        *calculation.SettlementEngine
	compareEngine *compare.CompareEngine
	now           time.Time

	// Results
	baseOutcome *domain.Outcome
	outcome     *domain.Outcome
	comparison  *compare.ComparisonSet

	// Widgets
	viewport viewport.Model
	keys     keyMap
	help     help.Model

	err            error
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model for the answers file at profilePath
func NewModel(profilePath string, engine *calculation.SettlementEngine, now time.Time) Model {
	if engine == nil {
		engine = calculation.NewSettlementEngine()
	}
	return Model{
		currentScene:   SceneOutcome,
		profilePath:    profilePath,
		engine:         engine,
		compareEngine:  compare.NewCompareEngine(engine),
		now:            now,
		viewport:       viewport.New(80, 20),
		keys:           defaultKeyMap(),
		help:           help.New(),
		width:          80,
		height:         24,
		loading:        true,
		loadingMessage: "Loading answers...",
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadProfileCmd(m.profilePath)
}

// loadProfileCmd returns a command that loads the answers file
func loadProfileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		profile, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ProfileLoadedMsg{Profile: profile}
	}
}

// compareCmd returns a command that runs every built-in template against the current profile.
// Templates that do not apply to the profile (e.g. partner templates for a single applicant) are skipped.
func compareCmd(ce *compare.CompareEngine, profile *domain.ApplicantProfile, now time.Time) tea.Cmd {
	return func() tea.Msg {
		var templates []string
		for _, name := range ce.TemplateRegistry.List() {
			t, _ := ce.TemplateRegistry.Get(name)
			if _, err := transform.ApplyTemplate(profile, t); err == nil {
				templates = append(templates, name)
			}
		}
		set, err := ce.Compare(context.Background(), profile, compare.CompareOptions{
			BaseScenarioName: "current",
			Templates:        templates,
			Now:              now,
		})
		return ComparisonCompleteMsg{Comparison: set, Err: err}
	}
}

// recalculate evaluates the current profile and refreshes the viewport
func (m *Model) recalculate() {
	if m.profile == nil {
		return
	}
	m.outcome = m.engine.Evaluate(m.profile, m.now)
	m.comparison = nil
	m.refreshContent()
}

// apply runs a transform on the current profile and recalculates.
// Transform failures are shown in place of the outcome.
func (m *Model) apply(t transform.ProfileTransform) {
	if m.profile == nil {
		return
	}
	next, err := transform.ApplyTransforms(m.profile, []transform.ProfileTransform{t})
	if err != nil {
		m.err = err
		return
	}
	m.profile = next
	m.recalculate()
}

var englishCycle = []domain.EnglishLevel{
	domain.EnglishBelowB2,
	domain.EnglishB2,
	domain.EnglishC1,
	domain.EnglishC2,
}

// nextEnglish returns the level after current, wrapping around.
func nextEnglish(current domain.EnglishLevel) domain.EnglishLevel {
	for i, l := range englishCycle {
		if l == current {
			return englishCycle[(i+1)%len(englishCycle)]
		}
	}
	return domain.EnglishB2
}

// incomeBands returns the income steps the income key cycles through.
func incomeBands(rules domain.IncomeRules) []decimal.Decimal {
	return []decimal.Decimal{
		decimal.Zero,
		rules.MinimumThreshold,
		rules.HigherThreshold,
		rules.TopThreshold,
	}
}

// nextIncomeBand returns the first band above the band that contains current, wrapping to zero.
func nextIncomeBand(rules domain.IncomeRules, current decimal.Decimal) decimal.Decimal {
	bands := incomeBands(rules)
	idx := 0
	for i, b := range bands {
		if current.GreaterThanOrEqual(b) {
			idx = i
		}
	}
	return bands[(idx+1)%len(bands)]
}

// nextVolunteering steps off -> min..max -> off.
func nextVolunteering(r domain.YearRange, enabled bool, chosen *int) (bool, int) {
	if !enabled {
		return true, r.Min
	}
	current := r.Clamp(chosen)
	if current >= r.Max {
		return false, r.Min
	}
	return true, current + 1
}

// keyMap defines the key bindings of the application
type keyMap struct {
	English      key.Binding
	Income       key.Binding
	Volunteering key.Binding
	Reset        key.Binding
	WhatIf       key.Binding
	Outcome      key.Binding
	Help         key.Binding
	Back         key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		English:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "english")),
		Income:       key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "income band")),
		Volunteering: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "volunteering")),
		Reset:        key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset")),
		WhatIf:       key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "what-if")),
		Outcome:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "outcome")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.English, k.Income, k.Volunteering, k.Reset, k.WhatIf, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.English, k.Income, k.Volunteering, k.Reset},
		{k.WhatIf, k.Outcome, k.Help, k.Back, k.Quit},
	}
}

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneOutcome:
		return "Outcome"
	case SceneWhatIf:
		return "What-if"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
