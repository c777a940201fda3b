package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/aegooby/goat/internal/common"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage stored account tokens",
	Long:  `Register, replace and remove the GitHub tokens goat can log gh in with.`,
}

var tokenSetCmd = &cobra.Command{
	Use:   "set <user> [token]",
	Short: "Store or replace the token for a user",
	Long: `Store the token for a GitHub user, replacing any existing one.

If the token is omitted you are prompted for it; pass "-" to read it
from standard input. Both keep the token out of your shell history.

Example:
  goat token set alice
  echo "$GH_TOKEN" | goat token set alice - --email alice@example.com`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runTokenSet,
}

var tokenDelCmd = &cobra.Command{
	Use:     "del <user>",
	Aliases: []string{"rm"},
	Short:   "Remove the stored token for a user",
	Args:    cobra.ExactArgs(1),
	RunE:    runTokenDel,
}

func runTokenSet(cmd *cobra.Command, args []string) error {
	user := args[0]
	if !common.IsValidUsername(user) {
		return fmt.Errorf("invalid user name %q", user)
	}

	email, _ := cmd.Flags().GetString("email")
	if len(email) > 0 && !common.IsValidEmail(email) {
		return fmt.Errorf("invalid email address %q", email)
	}

	var token string
	var err error
	switch {
	case len(args) < 2:
		token, err = promptToken(user)
	case args[1] == "-":
		token, err = readToken(cmd.InOrStdin())
	default:
		token = args[1]
	}
	if err != nil {
		return err
	}

	if err := credentials.UpsertAccount(user, strings.TrimSpace(token), email); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), labelStyle.Render("token(set):"), "updated key for user", user)
	return nil
}

func runTokenDel(cmd *cobra.Command, args []string) error {
	user := args[0]

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		confirm, err := confirmRemoval(user)
		if err != nil {
			return err
		}
		if !confirm {
			fmt.Fprintln(cmd.OutOrStdout(), infoStyle.Render("token(del): cancelled"))
			return nil
		}
	}

	if err := credentials.RemoveAccount(user); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), labelStyle.Render("token(del):"), "deleted user", user)
	return nil
}

func promptToken(user string) (string, error) {
	var token string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Token for %s", user)).
				Description("Paste a GitHub personal access token").
				EchoMode(huh.EchoModePassword).
				Value(&token).
				Validate(func(s string) error {
					if len(strings.TrimSpace(s)) == 0 {
						return fmt.Errorf("token is required")
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}

	return token, nil
}

func readToken(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read token from stdin: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func confirmRemoval(user string) (bool, error) {
	var confirm bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Confirm removal").
				Description(fmt.Sprintf("Are you sure you want to remove the token for %s?", user)).
				Value(&confirm),
		),
	)

	if err := form.Run(); err != nil {
		return false, err
	}

	return confirm, nil
}

func init() {
	tokenSetCmd.Flags().String("email", "", "Email address to record with the account")
	tokenDelCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	tokenCmd.AddCommand(tokenSetCmd)
	tokenCmd.AddCommand(tokenDelCmd)
	rootCmd.AddCommand(tokenCmd)
}
