package cli

import (
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Log gh in as the current git user",
	Long: `Reads user.name from the repository git config, falling back to the
global config, and logs gh in as that user. The user needs a stored token.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := switcher.Sync(cmd.Context())
		if err != nil {
			return err
		}
		printLogin(cmd.OutOrStdout(), "sync:", result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
