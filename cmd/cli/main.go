package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aegooby/goat/internal/common"
	"github.com/aegooby/goat/internal/config"
	"github.com/aegooby/goat/internal/identity"
	"github.com/aegooby/goat/internal/orchestrator"
	"github.com/aegooby/goat/internal/session"
	"github.com/aegooby/goat/internal/store"
)

// Global state for the current invocation, set up by preRunConfigE
var (
	cfg         *config.Config
	credentials *store.FileStore
	resolver    identity.Resolver
	switcher    *orchestrator.Orchestrator
)

// Component constructors, replaced in tests with in-memory fakes
var (
	newAgent = func(c *config.Config) session.Agent {
		return session.NewGHAgent(c.GH.Binary, c.GH.Hostname, c.Timeouts.Session, common.NewExecRunner())
	}
	newResolver = func(c *config.Config) identity.Resolver {
		backend, ok := identity.ParseBackend(c.Identity.Backend)
		if !ok {
			logrus.WithField("backend", c.Identity.Backend).Warnln("Unknown identity backend, using exec")
		}
		if backend == identity.BackendGoGit {
			return identity.NewGoGitResolver(".")
		}
		return newGitResolver(c)
	}
)

func newGitResolver(c *config.Config) *identity.GitResolver {
	return identity.NewGitResolver(c.Git.Binary, c.Timeouts.Identity, common.NewExecRunner())
}

// loadConfig loads the configuration based on the --config flag or default locations
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	return config.Load(configFile)
}

func preRunConfigE(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// check if verbose flag is set
	verbose, err := cmd.Flags().GetBool("verbose")
	if err == nil && verbose {
		config.SetVerbose()
	}

	storePath, err := cmd.Flags().GetString("store")
	if err == nil && len(storePath) > 0 {
		cfg.Store.Path = storePath
	}

	path, err := store.ResolvePath(cfg.Store.Path)
	if err != nil {
		return err
	}

	credentials = store.NewFileStore(path)
	if err := credentials.Ensure(); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"store":  credentials.Path(),
		"format": credentials.Format(),
		"config": cfg.Source(),
	}).Debugln("Configuration loaded")

	resolver = newResolver(cfg)
	switcher = orchestrator.New(credentials, resolver, newAgent(cfg))

	return nil
}

var rootCmd = &cobra.Command{
	Use:   "goat",
	Short: "goat - switch gh between GitHub accounts",
	Long: `goat stores tokens for several GitHub accounts and keeps the gh CLI
logged in as the account your git identity says you are.

Register a token with 'goat token set', then use 'goat login <user>'
or 'goat sync' to log gh in as the git user of the current repository.`,
	Version:           common.GetVersion(),
	PersistentPreRunE: preRunConfigE,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {

	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default is $XDG_CONFIG_HOME/goat/config.yaml)")
	rootCmd.PersistentFlags().String("store", "", "Credential store file (default is $HOME/.goat.toml)")

}

// Execute runs the command tree and prints a failure as a single line on stderr.
func Execute() error {
	ctx, cleanup := common.WithInterrupt(context.Background())
	defer cleanup()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:"), err)
	}
	return err
}
