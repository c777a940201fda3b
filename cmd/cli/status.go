package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aegooby/goat/internal/orchestrator"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what gh reports next to the recorded user",
	Long: `Runs 'gh auth status' and prints it next to the user goat recorded as
active. Useful when the two have drifted apart, e.g. after a failed save.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := switcher.Status(cmd.Context())
		if err != nil {
			return err
		}
		printStatus(cmd.OutOrStdout(), result)
		return nil
	},
}

func printStatus(w io.Writer, result *orchestrator.StatusResult) {
	recorded := dimStyle.Render("none")
	if len(result.Active) > 0 {
		recorded = result.Active
	}

	gh := dimStyle.Render("not logged in")
	if result.Session.Authenticated {
		gh = result.Session.Account
	}

	drifted := result.Session.Authenticated != (len(result.Active) > 0) ||
		(result.Session.Authenticated && result.Session.Account != result.Active)

	if drifted {
		fmt.Fprintln(w, labelStyle.Render("status:"), warningStyle.Render("drift"))
	} else {
		fmt.Fprintln(w, labelStyle.Render("status:"), successStyle.Render("ok"))
	}

	fmt.Fprintf(w, " * %s -> %s\n", fieldStyle.Render("goat"), recorded)
	fmt.Fprintf(w, " * %s -> %s\n", fieldStyle.Render("gh  "), gh)
	if len(result.Session.Host) > 0 {
		fmt.Fprintf(w, " * %s -> %s\n", fieldStyle.Render("host"), result.Session.Host)
	}
	if !result.Session.Authenticated && len(result.Session.Detail) > 0 {
		fmt.Fprintln(w, "  ", dimStyle.Render(result.Session.Detail))
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
