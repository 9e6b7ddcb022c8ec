package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
	"github.com/andrii-maglovanyi/mandrii-sub001/internal/output"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.err != nil {
		return m.renderError()
	}

	return m.renderApp(m.viewport.View())
}

// refreshContent re-renders the current scene into the viewport
func (m *Model) refreshContent() {
	var content string
	switch m.currentScene {
	case SceneOutcome:
		content = m.renderOutcome()
	case SceneWhatIf:
		content = m.renderWhatIf()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}
	m.viewport.SetContent(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("Settlement (ILR) Timeline Estimator")

	breadcrumb := m.currentScene.String()
	if m.profile != nil {
		breadcrumb = fmt.Sprintf("%s / %s", breadcrumb, m.profile.VisaCategory)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		SubtitleStyle.Render(breadcrumb),
	)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	return StatusBarStyle.Width(m.width).Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

// renderLoading renders a loading message
func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, SubtitleStyle.Render(message))
}

// renderError renders an error message
func (m Model) renderError() string {
	return ErrorStyle.Render(fmt.Sprintf("Error: %v\n\nPress ESC to dismiss, q to quit.", m.err))
}

// renderOutcome renders the current profile's outcome
func (m Model) renderOutcome() string {
	if m.outcome == nil || m.profile == nil {
		return "No answers loaded."
	}
	o := m.outcome
	p := m.profile
	var sb strings.Builder

	report := output.NewReport(p, o, m.engine.Rules.Metadata, m.now)
	headline := MetricValueStyle.Render(report.Headline())
	if o.IsBlocked() {
		headline = BlockStyle.Render(report.Headline())
	}
	sb.WriteString(headline + "\n")

	sb.WriteString(SectionStyle.Render("Answers") + "\n")
	sb.WriteString(metric("English", string(p.EnglishLevel)))
	sb.WriteString(metric("Income", fmt.Sprintf("%s for %d years", output.FormatCurrency(p.Income), p.IncomeYears)))
	volunteering := "no"
	if p.HasVolunteering {
		volunteering = fmt.Sprintf("yes (%d years)", m.engine.Rules.Reductions.Volunteering.Clamp(p.VolunteeringReductionYears))
	}
	sb.WriteString(metric("Volunteering", volunteering))

	sb.WriteString(SectionStyle.Render("Timeline") + "\n")
	main := fmt.Sprintf("%d years", o.MainApplicantYears)
	if m.baseOutcome != nil {
		if delta := o.MainApplicantYears - m.baseOutcome.MainApplicantYears; delta != 0 {
			main += TrendStyle(delta).Render(fmt.Sprintf(" (%+d vs loaded answers)", delta))
		}
	}
	sb.WriteString(metric("Main applicant", main))
	if o.PartnerYears != nil {
		sb.WriteString(metric("Partner", output.FormatYears(o.PartnerYears)))
	}
	if o.ChildrenYears != nil {
		sb.WriteString(metric("Children", output.FormatYears(o.ChildrenYears)))
	}
	if o.HasDates() {
		sb.WriteString(metric("Settlement date", output.FormatDate(o.ILRDate)))
		sb.WriteString(metric("Apply from", output.FormatDate(o.EarliestApplicationDate)))
	}

	if len(o.Adjustments) > 0 || len(o.PartnerAdjustments) > 0 {
		sb.WriteString(SectionStyle.Render("Adjustments") + "\n")
		for _, a := range o.Adjustments {
			sb.WriteString(adjustmentLine(a))
		}
		for _, a := range o.PartnerAdjustments {
			sb.WriteString(adjustmentLine(a))
		}
	}

	sb.WriteString(SectionStyle.Render("Requirements") + "\n")
	for _, r := range o.Requirements {
		mark := MetricPositiveStyle.Render("✓")
		if !r.Met {
			mark = MetricNegativeStyle.Render("✗")
		}
		sb.WriteString(fmt.Sprintf("  %s %s\n", mark, r.Text))
	}

	if o.Fees != nil {
		sb.WriteString(SectionStyle.Render("Fees") + "\n")
		sb.WriteString(metric("Applicants", fmt.Sprintf("%d", o.Fees.Headcount)))
		sb.WriteString(metric("Settlement fees", output.FormatCurrency(o.Fees.ApplicationFeeTotal)))
		sb.WriteString(metric("Visa renewals", output.FormatCurrency(o.Fees.HouseholdVisaRemaining)))
		sb.WriteString(metric("Health surcharge", output.FormatCurrency(o.Fees.HouseholdSurchargeRemaining)))
		sb.WriteString(metric("Total", HighlightStyle.Render(output.FormatCurrency(o.Fees.GrandTotal))))
	}

	if len(o.Warnings) > 0 {
		sb.WriteString(SectionStyle.Render("Warnings") + "\n")
		for _, w := range o.Warnings {
			sb.WriteString(fmt.Sprintf("  • %s\n", w))
		}
	}

	return sb.String()
}

// renderWhatIf renders the template comparison for the current profile
func (m Model) renderWhatIf() string {
	if m.comparison == nil {
		return "Press w to compare the built-in what-if templates."
	}
	set := m.comparison
	var sb strings.Builder

	sb.WriteString(SectionStyle.Render("What-if templates") + "\n")
	if set.BaseResult != nil {
		sb.WriteString(metric("Current answers", fmt.Sprintf("%d years", set.BaseResult.MainApplicantYears)))
	}
	for _, alt := range set.AlternativeResults {
		name := strings.TrimPrefix(alt.ScenarioName, set.BaseScenarioName+"_")
		line := fmt.Sprintf("%d years", alt.MainApplicantYears)
		if alt.MainYearsDiff != 0 {
			line += TrendStyle(alt.MainYearsDiff).Render(fmt.Sprintf(" (%+d)", alt.MainYearsDiff))
		}
		if alt.Blocked {
			line += MetricNegativeStyle.Render(" blocked: " + alt.BlockReason)
		}
		sb.WriteString(metric(name, line))
		if alt.Description != "" {
			sb.WriteString("    " + SubtitleStyle.Render(alt.Description) + "\n")
		}
	}

	if len(set.Recommendations) > 0 {
		sb.WriteString(SectionStyle.Render("Recommendations") + "\n")
		for _, r := range set.Recommendations {
			sb.WriteString(fmt.Sprintf("  • %s\n", r))
		}
	}

	return sb.String()
}

// renderHelp renders the full key reference
func (m Model) renderHelp() string {
	var sb strings.Builder
	sb.WriteString(SectionStyle.Render("Keys") + "\n")
	sb.WriteString(m.help.FullHelpView(m.keys.FullHelp()) + "\n\n")
	sb.WriteString("Edits apply to this session only; the answers file is never changed.\n")
	sb.WriteString("Use arrow keys or PgUp/PgDn to scroll.\n")
	return sb.String()
}

func metric(label, value string) string {
	return fmt.Sprintf("  %s %s\n", MetricLabelStyle.Render(fmt.Sprintf("%-18s", label+":")), value)
}

func adjustmentLine(a domain.Adjustment) string {
	sign := ""
	style := MetricValueStyle
	switch a.Type {
	case domain.AdjustmentReduction:
		sign, style = "-", MetricPositiveStyle
	case domain.AdjustmentPenalty:
		sign, style = "+", MetricNegativeStyle
	}
	years := ""
	if a.Years != 0 {
		years = style.Render(fmt.Sprintf("%s%d", sign, a.Years)) + " "
	}
	return fmt.Sprintf("  %s%s\n", years, a.Reason)
}
