package tui

import (
	"github.com/andrii-maglovanyi/mandrii-sub001/internal/compare"
	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneOutcome Scene = iota
	SceneWhatIf
	SceneHelp
)

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ProfileLoadedMsg signals the answers file has been loaded
type ProfileLoadedMsg struct {
	Profile *domain.ApplicantProfile
}

// ComparisonCompleteMsg signals the what-if comparison has finished
type ComparisonCompleteMsg struct {
	Comparison *compare.ComparisonSet
	Err        error
}
