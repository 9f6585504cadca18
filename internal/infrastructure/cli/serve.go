package cli

import (
	"github.com/spf13/cobra"

	intapp "github.com/kazushi-tech/specforge/internal/application"
	"github.com/kazushi-tech/specforge/internal/infrastructure/server"
)

var serveUIDir string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the review HTTP server (API, webhook receiver, admin UI)",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		var prReviews *intapp.PRReviewService
		if services.Env.GithubToken != "" {
			prReviews, err = services.prReviewService(cmd.Context())
			if err != nil {
				return err
			}
		} else {
			cmd.PrintErrln("GITHUB_TOKEN not set: PR endpoints will answer 503")
		}

		srv := server.New(services.Env, services.Cfg, services.Reviews, prReviews, services.Store, services.Audit, serveUIDir)
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveUIDir, "ui-dir", "ui", "Directory holding the admin UI static files")
	RootCmd.AddCommand(serveCmd)
}
