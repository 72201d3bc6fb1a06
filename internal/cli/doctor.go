package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/healthdigest/internal/config"
	"github.com/rileyhilliard/healthdigest/internal/doctor"
	"github.com/rileyhilliard/healthdigest/internal/errors"
	"github.com/rileyhilliard/healthdigest/internal/ui"
	"github.com/rileyhilliard/healthdigest/internal/util"
	"github.com/spf13/cobra"
)

var (
	doctorJSON bool
	doctorFix  bool
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the config, results store and captures",
	Long: `Run diagnostic checks on the healthdigest setup: the config file, the
results directory and this month's results file, leftover locks, and the
captured command output record reads.

Exits non-zero when a check fails.

Examples:
  healthdigest doctor
  healthdigest doctor --fix
  healthdigest doctor --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := config.LoadOrDefault(cfgFile)
		if err != nil {
			// The config checks report what is wrong with it.
			cfg = config.DefaultConfig()
		}
		return doctorCommand(doctor.NewChecks(path, cfg, now()), doctorFix, doctorJSON, cmd.OutOrStdout())
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "attempt automatic fixes where possible")
	rootCmd.AddCommand(doctorCmd)
}

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	doctor.Tally
	AllClear bool `json:"all_clear"`
}

// doctorCommand implements the doctor command logic.
func doctorCommand(checks []doctor.Check, fix, asJSON bool, out io.Writer) error {
	results := doctor.RunAll(checks)
	if fix {
		results = doctor.Fix(checks, results)
	}

	var err error
	if asJSON {
		err = outputDoctorJSON(checks, results, out)
	} else {
		outputDoctorText(checks, results, fix, out)
	}
	if err != nil {
		return err
	}

	if doctor.Count(results).Fail > 0 {
		return errors.NewExitError(1)
	}
	return nil
}

// groupResults returns the results of each category, in report order.
func groupResults(checks []doctor.Check, results []doctor.CheckResult) []CategoryOutput {
	grouped := make(map[string][]doctor.CheckResult)
	for i, check := range checks {
		grouped[check.Category()] = append(grouped[check.Category()], results[i])
	}

	var out []CategoryOutput
	for _, cat := range doctor.Categories {
		if len(grouped[cat]) > 0 {
			out = append(out, CategoryOutput{Name: cat, Results: grouped[cat]})
		}
	}
	return out
}

// outputDoctorJSON outputs results in JSON format.
func outputDoctorJSON(checks []doctor.Check, results []doctor.CheckResult, out io.Writer) error {
	tally := doctor.Count(results)
	output := DoctorOutput{
		Categories: groupResults(checks, results),
		Summary:    SummaryOutput{Tally: tally, AllClear: tally.Issues() == 0},
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// outputDoctorText outputs results in human-readable format.
func outputDoctorText(checks []doctor.Check, results []doctor.CheckResult, fixed bool, out io.Writer) {
	successStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorError)
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	headerStyle := lipgloss.NewStyle().Bold(true)

	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render("healthdigest Diagnostic Report"))
	fmt.Fprintln(out)

	for _, category := range groupResults(checks, results) {
		fmt.Fprintln(out, headerStyle.Render(category.Name))
		for _, result := range category.Results {
			renderCheckResult(result, out)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, strings.Repeat("━", ui.HeaderWidth))
	fmt.Fprintln(out)

	tally := doctor.Count(results)
	if tally.Issues() == 0 {
		fmt.Fprintf(out, "%s %s\n", successStyle.Render(ui.SymbolSuccess), tally.Summary())
	} else {
		fmt.Fprintf(out, "%s %s\n", errorStyle.Render(ui.SymbolFail), tally.Summary())

		if tally.Fixable > 0 && !fixed {
			fmt.Fprintln(out)
			fmt.Fprintf(out, "  Run with %s to fix %s automatically.\n",
				mutedStyle.Render("--fix"), util.Count(tally.Fixable, "issue", "issues"))
		}
	}
	fmt.Fprintln(out)
}

// renderCheckResult renders a single check result.
func renderCheckResult(result doctor.CheckResult, out io.Writer) {
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)

	var symbol string
	var style lipgloss.Style
	switch result.Status {
	case doctor.StatusPass:
		symbol = ui.SymbolSuccess
		style = lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	case doctor.StatusWarn:
		symbol = ui.SymbolWarn
		style = lipgloss.NewStyle().Foreground(ui.ColorWarning)
	default:
		symbol = ui.SymbolFail
		style = lipgloss.NewStyle().Foreground(ui.ColorError)
	}

	fmt.Fprintf(out, "  %s %s\n", style.Render(symbol), result.Message)

	if result.Suggestion != "" && result.Status != doctor.StatusPass {
		for _, line := range strings.Split(result.Suggestion, "\n") {
			fmt.Fprintf(out, "    %s\n", mutedStyle.Render(line))
		}
	}
}
