package cli

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kazushi-tech/specforge/internal/infrastructure/watch"
	"github.com/kazushi-tech/specforge/pkg/application"
	"github.com/kazushi-tech/specforge/pkg/domain/review"
	"github.com/kazushi-tech/specforge/pkg/engine"
)

var (
	reviewDryRun bool
	reviewDir    string
)

var severityStyles = map[review.Severity]lipgloss.Style{
	review.SeverityCritical: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	review.SeverityHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	review.SeverityMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
	review.SeverityLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

var scoreStyle = lipgloss.NewStyle().Bold(true)

var reviewCmd = &cobra.Command{
	Use:   "review [file]",
	Short: "Review a requirements document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && reviewDir == "" {
			return fmt.Errorf("provide a file argument or --dir")
		}

		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		var result *review.Result
		if reviewDir != "" {
			result, err = reviewDirectory(cmd, services, reviewDir)
		} else {
			result, err = services.Reviews.Run(cmd.Context(), application.ReviewOptions{
				Source:   review.SourceFile,
				FilePath: args[0],
			})
		}
		if err != nil {
			return err
		}

		printResult(cmd, result)

		if reviewDryRun {
			return nil
		}
		saved, err := services.Store.Save(result)
		if err != nil {
			return fmt.Errorf("save report: %w", err)
		}
		cmd.Printf("\nReport saved: %s\n", saved.MarkdownPath)
		return nil
	},
}

// reviewDirectory reviews every requirements document under dir and merges
// the per-file results into one aggregated result.
func reviewDirectory(cmd *cobra.Command, services *Services, dir string) (*review.Result, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && watch.IsRequirementsDoc(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no requirements documents found under %s", dir)
	}
	sort.Strings(paths)

	results := make([]*review.Result, 0, len(paths))
	for _, path := range paths {
		result, err := services.Reviews.Run(cmd.Context(), application.ReviewOptions{
			Source:   review.SourceFile,
			FilePath: path,
		})
		if err != nil {
			return nil, fmt.Errorf("review %s: %w", path, err)
		}
		results = append(results, result)
	}
	return engine.AggregateResults(results)
}

func printResult(cmd *cobra.Command, result *review.Result) {
	cmd.Printf("Review %s\n", result.Metadata.ReviewID)
	if pm := result.Metadata.ReviewProvider; pm != nil {
		cmd.Printf("Provider: %s\n", pm.EffectiveProvider)
		if pm.FallbackUsed {
			cmd.Printf("AI unavailable, fell back to rules: %s\n", pm.FallbackReason)
		}
	}
	cmd.Println(scoreStyle.Render(fmt.Sprintf("Quality score: %.1f / 10", result.Summary.QualityScore)))
	cmd.Printf("Findings: %d\n\n", result.Summary.TotalFindings)

	for _, sev := range review.Severities {
		style := severityStyles[sev]
		for _, f := range result.Findings {
			if f.Severity != sev {
				continue
			}
			loc := ""
			if f.Line > 0 {
				loc = fmt.Sprintf(" (line %d)", f.Line)
			}
			cmd.Printf("%s %s [%s]%s %s\n", style.Render(string(sev)), f.ID, f.Rule, loc, f.Message)
			if f.Suggestion != "" {
				cmd.Printf("    → %s\n", f.Suggestion)
			}
		}
	}
}

func init() {
	reviewCmd.Flags().BoolVar(&reviewDryRun, "dry-run", false, "Print findings without saving a report")
	reviewCmd.Flags().StringVar(&reviewDir, "dir", "", "Review every requirements document under a directory")
	RootCmd.AddCommand(reviewCmd)
}
