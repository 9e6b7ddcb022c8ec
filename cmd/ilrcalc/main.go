package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/andrii-maglovanyi/mandrii-sub001/internal/calculation"
	"github.com/andrii-maglovanyi/mandrii-sub001/internal/config"
	"github.com/andrii-maglovanyi/mandrii-sub001/internal/domain"
	"github.com/andrii-maglovanyi/mandrii-sub001/internal/output"
)

// slogLogger implements calculation.Logger on top of log/slog
type slogLogger struct {
	l *slog.Logger
}

func newSlogLogger(w io.Writer) slogLogger {
	return slogLogger{l: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))}
}

func (s slogLogger) Debugf(format string, args ...any) { s.l.Debug(fmt.Sprintf(format, args...)) }
func (s slogLogger) Infof(format string, args ...any)  { s.l.Info(fmt.Sprintf(format, args...)) }
func (s slogLogger) Warnf(format string, args ...any)  { s.l.Warn(fmt.Sprintf(format, args...)) }
func (s slogLogger) Errorf(format string, args ...any) { s.l.Error(fmt.Sprintf(format, args...)) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ilrcalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "ilrcalc",
	Short: "Settlement (ILR) timeline estimator",
	Long: `Estimate when an applicant and their dependants can apply for settlement
(indefinite leave to remain) under the earned settlement rules, which
requirements block the application, and what the remaining route costs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// newEngine builds an engine from the configured rules file, with slog output when --debug is set
func newEngine() (*calculation.SettlementEngine, error) {
	parser := config.NewInputParser()
	rules, err := parser.LoadRulesFromFile(viper.GetString("rules"))
	if err != nil {
		return nil, err
	}

	engine := calculation.NewSettlementEngineWithRules(rules)
	if viper.GetBool("debug") {
		engine.SetLogger(newSlogLogger(os.Stderr))
	}
	return engine, nil
}

// evaluationTime returns --now as a date, or today
func evaluationTime() (time.Time, error) {
	s := viper.GetString("now")
	if s == "" {
		n := time.Now()
		return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now value %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// evaluate loads the answers file and evaluates it with the configured engine
func evaluate(inputFile string) (*calculation.SettlementEngine, *domain.ApplicantProfile, *domain.Outcome, time.Time, error) {
	engine, err := newEngine()
	if err != nil {
		return nil, nil, nil, time.Time{}, err
	}
	now, err := evaluationTime()
	if err != nil {
		return nil, nil, nil, time.Time{}, err
	}

	parser := config.NewInputParser()
	profile, err := parser.LoadFromFile(inputFile)
	if err != nil {
		return nil, nil, nil, time.Time{}, err
	}
	return engine, profile, engine.Evaluate(profile, now), now, nil
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [answers-file]",
	Short: "Calculate the settlement timeline for an answers file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, profile, outcome, now, err := evaluate(args[0])
		if err != nil {
			return err
		}

		outputFormat := viper.GetString("format")
		f := output.GetFormatterByName(outputFormat)
		if f == nil {
			return fmt.Errorf("unknown output format: %s (valid: %s)", outputFormat, strings.Join(output.AvailableFormatterNames(), ", "))
		}

		report := output.NewReport(profile, outcome, engine.Rules.Metadata, now)

		save, _ := cmd.Flags().GetBool("save")
		if save {
			filename, err := output.WriteFormatted(f, report, fileExtension(f.Name()))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
			return nil
		}

		data, err := f.Format(report)
		if err != nil {
			return fmt.Errorf("failed to format report: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func fileExtension(formatter string) string {
	switch formatter {
	case "json", "csv", "html":
		return formatter
	default:
		return "txt"
	}
}

var validateCmd = &cobra.Command{
	Use:   "validate [answers-file]",
	Short: "Validate an answers file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		if _, err := parser.LoadFromFile(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Answers file %s is valid\n", args[0])
		return nil
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective rules table as YAML",
	Long:  "Print the default rules, overlaid with --rules when given. The output is a valid rules file.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(engine.Rules); err != nil {
			return fmt.Errorf("failed to encode rules: %w", err)
		}
		return enc.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().String("rules", "", "Path to a rules file overlaid on the default rules (env ILRCALC_RULES)")
	rootCmd.PersistentFlags().String("now", "", "Evaluation date YYYY-MM-DD for elapsed fee time (default today)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output for rule decisions")

	calculateCmd.Flags().StringP("format", "f", "console", "Output format (console, console-lite, json, csv, html) (env ILRCALC_FORMAT)")
	calculateCmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")

	serveCmd.Flags().String("addr", ":8080", "Listen address (env ILRCALC_ADDR)")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(feesCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd())

	initConfig()
}

// initConfig binds flags and ILRCALC_* environment variables; flags win over the environment
func initConfig() {
	viper.SetEnvPrefix("ILRCALC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	_ = viper.BindPFlag("rules", rootCmd.PersistentFlags().Lookup("rules"))
	_ = viper.BindPFlag("now", rootCmd.PersistentFlags().Lookup("now"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("format", calculateCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
}

func main() {
	// A missing .env is fine; the environment and flags still apply
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
