package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aegooby/goat/internal/common"
	"github.com/aegooby/goat/internal/models"
)

const DefaultTimeout = 10 * time.Second

// GitResolver reads and writes the identity by running the git binary.
type GitResolver struct {
	binary  string
	timeout time.Duration
	runner  common.CommandRunner
}

func NewGitResolver(binary string, timeout time.Duration, runner common.CommandRunner) *GitResolver {
	if len(binary) == 0 {
		binary = "git"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if runner == nil {
		runner = common.NewExecRunner()
	}
	return &GitResolver{
		binary:  binary,
		timeout: timeout,
		runner:  runner,
	}
}

func (g *GitResolver) Resolve(ctx context.Context) (string, error) {

	local, err := g.readName(ctx, "--local")
	if err != nil {
		return "", err
	}
	if len(local) > 0 {
		logrus.WithField("user", local).Debugln("Resolved repository git identity")
		return local, nil
	}

	// No scope flag so includeIf sections in the global config still apply
	effective, err := g.readName(ctx, "")
	if err != nil {
		return "", err
	}
	if len(effective) > 0 {
		logrus.WithField("user", effective).Debugln("Resolved effective git identity")
		return effective, nil
	}

	return "", models.ErrNoIdentityConfigured
}

// readName returns an empty string when the key is unset: git config exits 1
// for a missing key and non-zero outside a repository for --local. An empty
// scope reads the value git itself would use.
func (g *GitResolver) readName(ctx context.Context, scope string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	args := []string{"config", "user.name"}
	label := "effective"
	if len(scope) > 0 {
		args = []string{"config", scope, "user.name"}
		label = strings.TrimPrefix(scope, "--")
	}

	result, err := g.runner.Run(ctx, "", g.binary, args...)
	if err != nil {
		return "", fmt.Errorf("failed to read %s git identity: %w", label, err)
	}
	if !result.Success() {
		return "", nil
	}
	return strings.TrimSpace(result.Stdout), nil
}

func (g *GitResolver) SetLocal(ctx context.Context, name string, email string) error {
	if err := g.setLocal(ctx, "user.name", name); err != nil {
		return err
	}
	return g.setLocal(ctx, "user.email", email)
}

func (g *GitResolver) setLocal(ctx context.Context, key string, value string) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"key":   key,
		"value": value,
	}).Debugln("Setting local git config")

	result, err := g.runner.Run(ctx, "", g.binary, "config", "--local", key, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", models.ErrIdentityWrite, key, err)
	}
	if !result.Success() {
		return fmt.Errorf("%w: %s: %s", models.ErrIdentityWrite, key, strings.TrimSpace(result.Stderr))
	}
	return nil
}
