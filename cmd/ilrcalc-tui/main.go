package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andrii-maglovanyi/mandrii-sub001/internal/calculation"
	"github.com/andrii-maglovanyi/mandrii-sub001/internal/config"
	"github.com/andrii-maglovanyi/mandrii-sub001/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: ilrcalc-tui <answers-file> [rules-file]")
		os.Exit(1)
	}
	answersPath := os.Args[1]

	if _, err := os.Stat(answersPath); os.IsNotExist(err) {
		fmt.Printf("Error: Answers file not found: %s\n", answersPath)
		os.Exit(1)
	}

	engine := calculation.NewSettlementEngine()
	if len(os.Args) > 2 {
		rules, err := config.NewInputParser().LoadRulesFromFile(os.Args[2])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		engine = calculation.NewSettlementEngineWithRules(rules)
	}

	model := tui.NewModel(answersPath, engine, time.Now())

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
