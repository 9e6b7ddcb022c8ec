package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andrii-maglovanyi/mandrii-sub001/internal/transform"
)

// chromeHeight is the number of lines taken by the title and status bars
const chromeHeight = 5

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-chromeHeight)
		m.help.Width = msg.Width
		m.refreshContent()
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		m.refreshContent()
		m.viewport.GotoTop()
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ProfileLoadedMsg:
		m.loading = false
		m.err = nil
		m.base = msg.Profile
		m.profile = msg.Profile.Clone()
		m.baseOutcome = m.engine.Evaluate(m.base, m.now)
		m.recalculate()
		return m, nil

	case ComparisonCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.comparison = msg.Comparison
		m.refreshContent()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// An error screen only accepts dismissal
	if m.err != nil {
		if key.Matches(msg, m.keys.Back) {
			m.err = nil
			m.refreshContent()
		}
		return m, nil
	}
	if m.loading || m.profile == nil {
		return m, nil
	}

	rules := m.engine.Rules

	switch {
	case key.Matches(msg, m.keys.Help):
		return m, navigate(SceneHelp)

	case key.Matches(msg, m.keys.Back):
		if m.currentScene != SceneOutcome {
			return m, navigate(SceneOutcome)
		}
		return m, nil

	case key.Matches(msg, m.keys.Outcome):
		return m, navigate(SceneOutcome)

	case key.Matches(msg, m.keys.WhatIf):
		m.loading = true
		m.loadingMessage = "Comparing what-if templates..."
		return m, tea.Batch(navigate(SceneWhatIf), compareCmd(m.compareEngine, m.profile, m.now))

	case key.Matches(msg, m.keys.English):
		m.apply(&transform.SetEnglish{Level: nextEnglish(m.profile.EnglishLevel)})
		return m, nil

	case key.Matches(msg, m.keys.Income):
		m.apply(&transform.SetIncome{Amount: nextIncomeBand(rules.Income, m.profile.Income)})
		return m, nil

	case key.Matches(msg, m.keys.Volunteering):
		enabled, years := nextVolunteering(rules.Reductions.Volunteering, m.profile.HasVolunteering, m.profile.VolunteeringReductionYears)
		m.apply(&transform.SetVolunteering{Enabled: enabled, Years: &years})
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.profile = m.base.Clone()
		m.recalculate()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}
