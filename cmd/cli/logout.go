package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log gh out and clear the active user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := switcher.Logout(cmd.Context())
		if err != nil {
			return err
		}

		if len(result.Previous) > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), labelStyle.Render("logout:"), "cleared credentials for", result.Previous)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), labelStyle.Render("logout:"), "cleared credentials")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
