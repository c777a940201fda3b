package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aegooby/goat/internal/common"
	"github.com/aegooby/goat/internal/models"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored users",
	Long:    "Lists stored users with their tokens masked; pass --show to print the tokens.",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		show, _ := cmd.Flags().GetBool("show")

		doc, err := credentials.Load()
		if err != nil {
			return err
		}

		printAccounts(cmd.OutOrStdout(), doc, show)
		return nil
	},
}

func printAccounts(w io.Writer, doc *models.CredentialStore, show bool) {
	fmt.Fprintln(w, labelStyle.Render("list:"))

	if len(doc.Users) == 0 {
		fmt.Fprintln(w, infoStyle.Render(" no users stored, add one with 'goat token set'"))
		return
	}

	for _, name := range doc.SortedNames() {
		account, _ := doc.Lookup(name)

		token := common.MaskSecret(account.Token)
		if show {
			token = account.Token
		}

		active := ""
		if doc.IsActive(name) {
			active = " " + activeStyle.Render("(active)")
		}

		fmt.Fprintf(w, " * %s -> %s%s\n", fieldStyle.Render("user"), name, active)
		fmt.Fprintf(w, "    - %s -> %s\n", fieldStyle.Render("token"), token)
		if account.HasEmail() {
			fmt.Fprintf(w, "    - %s -> %s\n", fieldStyle.Render("email"), account.Email)
		}
	}
}

func init() {
	listCmd.Flags().Bool("show", false, "Print tokens instead of masking them")
	rootCmd.AddCommand(listCmd)
}
