package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aegooby/goat/internal/common"
	"github.com/aegooby/goat/internal/updater"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Replace goat with the latest release",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeouts.Update)
		defer cancel()

		u := updater.NewUpdater(cfg.Update.Owner, cfg.Update.Repo, common.GetVersion())

		tag, err := u.Update(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), labelStyle.Render("update:"), tag)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
