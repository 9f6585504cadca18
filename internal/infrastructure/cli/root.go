// Package cli defines the specforge command tree.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "specforge",
	Version: Version,
	Short:   "Requirements review for markdown specification documents",
	Long: `SpecForge reviews requirements documents written in markdown.
It parses FR-/NFR- requirement blocks, applies structural quality rules,
optionally asks Gemini for a deeper pass, and publishes the findings as
reports, PR comments and check runs.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}
