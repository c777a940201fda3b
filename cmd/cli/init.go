package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aegooby/goat/internal/common"
	"github.com/aegooby/goat/internal/identity"
)

// newIdentityWriter is replaced in tests
var newIdentityWriter = func() identity.Writer {
	return newGitResolver(cfg)
}

var initCmd = &cobra.Command{
	Use:   "init <user>",
	Short: "Set the git user of the current repository",
	Long: `Writes user.name and user.email into the repository git config so
'goat sync' logs gh in as this user inside the repository.

Example:
  goat init alice --email alice@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user := args[0]
		if !common.IsValidUsername(user) {
			return fmt.Errorf("invalid user name %q", user)
		}

		email, _ := cmd.Flags().GetString("email")
		if !common.IsValidEmail(email) {
			return fmt.Errorf("invalid email address %q", email)
		}

		if err := newIdentityWriter().SetLocal(cmd.Context(), user, email); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), labelStyle.Render("init:"), "set repository git user to", user)

		doc, err := credentials.Load()
		if err != nil {
			return err
		}
		if _, ok := doc.Lookup(user); !ok {
			fmt.Fprintln(cmd.OutOrStdout(), warningStyle.Render(
				fmt.Sprintf("  no token stored for %s, add one with 'goat token set %s'", user, user)))
		}
		return nil
	},
}

func init() {
	initCmd.Flags().String("email", "", "Email address for the repository git user")
	initCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(initCmd)
}
