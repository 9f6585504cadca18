package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	prNumber int
	prDryRun bool
	prSHA    string
)

var prCmd = &cobra.Command{
	Use:   "pr",
	Short: "Review the requirements files changed by a pull request",
	RunE: func(cmd *cobra.Command, args []string) error {
		if prNumber <= 0 {
			return fmt.Errorf("--pr must be a positive pull request number")
		}

		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}
		prReviews, err := services.prReviewService(cmd.Context())
		if err != nil {
			return err
		}

		outcome, err := prReviews.ReviewPR(cmd.Context(), prNumber, prSHA, prDryRun)
		if err != nil {
			return err
		}

		if outcome.Skipped != "" {
			cmd.Printf("Skipped: %s\n", outcome.Skipped)
			return nil
		}

		printResult(cmd, outcome.Result)

		if prDryRun {
			cmd.Println("\nDry run: nothing was posted to GitHub.")
			return nil
		}
		if outcome.Comment != nil {
			cmd.Printf("\nComment %s (id %d)\n", outcome.Comment.Action, outcome.Comment.CommentID)
		}
		if outcome.CheckRunID != 0 {
			cmd.Printf("Check run created: %d\n", outcome.CheckRunID)
		}
		if outcome.Saved != nil {
			cmd.Printf("Report saved: %s\n", outcome.Saved.MarkdownPath)
		}
		return nil
	},
}

func init() {
	prCmd.Flags().IntVar(&prNumber, "pr", 0, "Pull request number to review")
	prCmd.Flags().StringVar(&prSHA, "sha", "", "Head SHA for the check run (optional)")
	prCmd.Flags().BoolVar(&prDryRun, "dry-run", false, "Render the report without posting to GitHub")
	RootCmd.AddCommand(prCmd)
}
