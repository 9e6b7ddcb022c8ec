package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrii-maglovanyi/mandrii-sub001/internal/compare"
	"github.com/andrii-maglovanyi/mandrii-sub001/internal/config"
	"github.com/andrii-maglovanyi/mandrii-sub001/internal/transform"
)

var compareCmd = &cobra.Command{
	Use:   "compare [answers-file]",
	Short: "Compare the answers against what-if templates and transforms",
	Long: `Compare a base answers file against alternative profiles.

Examples:
  ilrcalc compare answers.yaml --with improve_english,reach_higher_income
  ilrcalc compare answers.yaml --transform set_income:amount=60000 --transform set_english:level=C1
  ilrcalc compare answers.yaml --with volunteer_max --format csv
  ilrcalc compare --list-templates
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}

		listTemplates, _ := cmd.Flags().GetBool("list-templates")
		if listTemplates {
			fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates(engine.Rules)))
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("answers file required for comparison (use --list-templates to see available templates)")
		}
		inputFile := args[0]

		baseName, _ := cmd.Flags().GetString("base")
		templatesStr, _ := cmd.Flags().GetString("with")
		transforms, _ := cmd.Flags().GetStringArray("transform")
		outputFormat, _ := cmd.Flags().GetString("format")

		templateNames := transform.ParseTemplateList(templatesStr)
		if len(templateNames) == 0 && len(transforms) == 0 {
			return fmt.Errorf("--with or --transform is required (use --list-templates to see available templates)")
		}

		now, err := evaluationTime()
		if err != nil {
			return err
		}
		profile, err := config.NewInputParser().LoadFromFile(inputFile)
		if err != nil {
			return err
		}

		compareEngine := compare.NewCompareEngine(engine)
		comparisonSet, err := compareEngine.Compare(context.Background(), profile, compare.CompareOptions{
			BaseScenarioName: baseName,
			Templates:        templateNames,
			Transforms:       transforms,
			Now:              now,
		})
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}
		comparisonSet.ProfilePath = inputFile

		var out string
		switch strings.ToLower(outputFormat) {
		case "csv":
			formatter := &compare.CSVFormatter{}
			if out, err = formatter.Format(comparisonSet); err != nil {
				return fmt.Errorf("failed to format CSV: %w", err)
			}
		case "json":
			formatter := &compare.JSONFormatter{Pretty: true}
			if out, err = formatter.Format(comparisonSet); err != nil {
				return fmt.Errorf("failed to format JSON: %w", err)
			}
		case "compact":
			formatter := &compare.TableFormatter{}
			out = formatter.FormatCompact(comparisonSet) + "\n"
		case "table", "console", "":
			formatter := &compare.TableFormatter{}
			out = formatter.Format(comparisonSet)
		default:
			return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", outputFormat)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	compareCmd.Flags().String("base", "base", "Label for the unmodified answers")
	compareCmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	compareCmd.Flags().StringArray("transform", nil, "Transform spec name:key=value,... (repeatable, combined into one alternative)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	compareCmd.Flags().Bool("list-templates", false, "List all available what-if templates")
}
