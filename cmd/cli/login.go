package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aegooby/goat/internal/orchestrator"
)

var loginCmd = &cobra.Command{
	Use:   "login <user>",
	Short: "Log gh in as a stored user",
	Long:  "Pipes the stored token for the user into 'gh auth login' and records the user as active.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := switcher.Login(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printLogin(cmd.OutOrStdout(), "login:", result)
		return nil
	},
}

func printLogin(w io.Writer, op string, result *orchestrator.LoginResult) {
	if result.AlreadyActive {
		fmt.Fprintln(w, labelStyle.Render(op), "already logged in as", result.User)
		return
	}
	fmt.Fprintln(w, labelStyle.Render(op), "logged in as", successStyle.Render(result.User))
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
