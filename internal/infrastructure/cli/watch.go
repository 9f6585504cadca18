package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/kazushi-tech/specforge/internal/infrastructure/watch"
	"github.com/kazushi-tech/specforge/pkg/application"
	"github.com/kazushi-tech/specforge/pkg/domain/review"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a requirements directory and re-review documents on change",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "requirements"
		if len(args) > 0 {
			dir = args[0]
		}

		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		onChange := func(ev watch.ChangeEvent) {
			if ev.ChangeType == "remove" || ev.ChangeType == "rename" {
				cmd.Printf("%s %s, skipping review\n", ev.Path, ev.ChangeType)
				return
			}
			cmd.Printf("\nChange detected at %s: %s\n", time.Now().Format("15:04:05"), ev.Path)

			result, err := services.Reviews.Run(cmd.Context(), application.ReviewOptions{
				Source:   review.SourceFile,
				FilePath: ev.Path,
			})
			if err != nil {
				cmd.PrintErrf("review failed: %v\n", err)
				return
			}
			printResult(cmd, result)

			if _, err := services.Store.Save(result); err != nil {
				cmd.PrintErrf("save report: %v\n", err)
			}
		}

		watcher, err := watch.NewDocumentWatcher(watchDebounce, onChange)
		if err != nil {
			return err
		}
		if err := watcher.WatchRecursive(dir); err != nil {
			return err
		}

		cmd.Printf("Watching %s for requirements changes...\n", dir)
		return watcher.Run(cmd.Context())
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "Quiet window before a change triggers a review")
	RootCmd.AddCommand(watchCmd)
}
