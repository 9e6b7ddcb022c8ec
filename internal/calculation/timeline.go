package calculation

import (
	"time"

	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
)

// TimelineResult holds the concrete calendar dates for a resolved timeline.
// All dates are nil when the profile has no base date.
type TimelineResult struct {
	BaseDate                *time.Time
	ILRDate                 *time.Time
	EarliestApplicationDate *time.Time
}

// Insufficient reports whether dates could not be computed.
func (r TimelineResult) Insufficient() bool {
	return r.BaseDate == nil
}

// TimelineCalculator turns resolved years and a base date into calendar dates
type TimelineCalculator struct {
	EarlyApplicationDays int
}

// NewTimelineCalculator creates a calculator with the default application window
func NewTimelineCalculator() *TimelineCalculator {
	return NewTimelineCalculatorWithRules(domain.DefaultSettlementRules().Timeline)
}

// NewTimelineCalculatorWithRules creates a calculator from a timeline rules table
func NewTimelineCalculatorWithRules(rules domain.TimelineRules) *TimelineCalculator {
	return &TimelineCalculator{EarlyApplicationDays: rules.EarlyApplicationDays}
}

// Calculate adds whole calendar years to the base date and steps back the early application window.
// A 29 February base date in a non-leap target year normalizes to 1 March.
func (tc *TimelineCalculator) Calculate(p *domain.ApplicantProfile, years int) TimelineResult {
	base, ok := p.BaseDate()
	if !ok {
		return TimelineResult{}
	}

	ilr := base.AddDate(years, 0, 0)
	earliest := ilr.AddDate(0, 0, -tc.EarlyApplicationDays)

	return TimelineResult{
		BaseDate:                &base,
		ILRDate:                 &ilr,
		EarliestApplicationDate: &earliest,
	}
}

// YearsElapsed returns the fractional years between base and now, never negative.
func YearsElapsed(base, now time.Time) float64 {
	if !now.After(base) {
		return 0
	}
	return now.Sub(base).Hours() / 24 / 365.25
}
