package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aegooby/goat/internal/common"
	"github.com/aegooby/goat/internal/updater"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		version, gitCommit, ok := common.GetModuleBuildInfo()

		if !ok {
			fmt.Fprintln(out, "Failed to get version information")
			return
		}

		fmt.Fprintf(out, "goat %s", version)
		if gitCommit != "unknown" && len(gitCommit) > 0 {
			if len(gitCommit) > 8 {
				fmt.Fprintf(out, " (git: %s)", gitCommit[:8])
			} else {
				fmt.Fprintf(out, " (git: %s)", gitCommit)
			}
		}
		fmt.Fprintln(out)

		check, _ := cmd.Flags().GetBool("check")
		if !check {
			return
		}

		u := updater.NewUpdater(cfg.Update.Owner, cfg.Update.Repo, common.GetVersion())

		// Short timeout so an offline machine does not hang the version command
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()

		release, err := u.CheckForUpdate(ctx)
		if err != nil {
			fmt.Fprintln(out, dimStyle.Render("(failed to check for updates)"))
			return
		}

		if release == nil {
			fmt.Fprintln(out, successStyle.Render("You're running the latest version!"))
		} else {
			fmt.Fprintf(out, "New version available: %s\n", release.GetTagName())
			fmt.Fprintln(out, "   Run 'goat update' to upgrade")
		}
	},
}

func init() {
	versionCmd.Flags().Bool("check", true, "Check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)
}
