package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aegooby/goat/internal/models"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Compare the git user with the active gh user",
	Long: `Reports one of:
  sync      the active gh user is the git user
  conflict  the active gh user and the git user differ
  no-auth   goat has not logged gh in`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := switcher.Info(cmd.Context())
		if err != nil {
			return err
		}
		printReconciliation(cmd.OutOrStdout(), result)
		return nil
	},
}

func printReconciliation(w io.Writer, result *models.Reconciliation) {
	var status string
	switch result.Status {
	case models.StatusSynced:
		status = successStyle.Render(result.Status.String())
	case models.StatusConflict:
		status = errorStyle.Render(result.Status.String())
	default:
		status = warningStyle.Render(result.Status.String())
	}

	fmt.Fprintln(w, labelStyle.Render("info:"), status)
	fmt.Fprintf(w, " * %s -> %s\n", fieldStyle.Render("git"), result.Identity)

	if result.HasActive() {
		fmt.Fprintf(w, " * %s -> %s\n", fieldStyle.Render("gh "), result.Active)
	} else {
		fmt.Fprintf(w, " * %s -> %s\n", fieldStyle.Render("gh "), dimStyle.Render("none"))
	}
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
