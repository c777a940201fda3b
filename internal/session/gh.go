package session

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aegooby/goat/internal/common"
	"github.com/aegooby/goat/internal/models"
)

const (
	DefaultHostname = "github.com"
	DefaultTimeout  = 30 * time.Second
)

// Matches both "Logged in to github.com account alice" and the older
// "Logged in to github.com as alice".
var loggedInPattern = regexp.MustCompile(`Logged in to (\S+) (?:account|as) ([^\s(]+)`)

// GHAgent runs the gh CLI.
type GHAgent struct {
	binary   string
	hostname string
	timeout  time.Duration
	runner   common.CommandRunner
}

func NewGHAgent(binary string, hostname string, timeout time.Duration, runner common.CommandRunner) *GHAgent {
	if len(binary) == 0 {
		binary = "gh"
	}
	if len(hostname) == 0 {
		hostname = DefaultHostname
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if runner == nil {
		runner = common.NewExecRunner()
	}
	return &GHAgent{
		binary:   binary,
		hostname: hostname,
		timeout:  timeout,
		runner:   runner,
	}
}

// Authenticate pipes the token into `gh auth login --with-token`.
func (g *GHAgent) Authenticate(ctx context.Context, token string) error {
	logrus.WithFields(logrus.Fields{
		"hostname": g.hostname,
	}).Debugln("Authenticating with gh")

	return g.run(ctx, "login", token, "auth", "login", "--hostname", g.hostname, "--with-token")
}

func (g *GHAgent) Deauthenticate(ctx context.Context) error {
	logrus.WithFields(logrus.Fields{
		"hostname": g.hostname,
	}).Debugln("Logging out of gh")

	return g.run(ctx, "logout", "", "auth", "logout", "--hostname", g.hostname)
}

func (g *GHAgent) Status(ctx context.Context) models.SessionState {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := g.runner.Run(ctx, "", g.binary, "auth", "status", "--hostname", g.hostname)
	if err != nil {
		logrus.WithError(err).Debugln("Failed to query gh auth status")
		return models.Unauthenticated(g.hostname, err.Error())
	}

	return parseStatus(g.hostname, result)
}

func (g *GHAgent) run(ctx context.Context, op string, stdin string, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := g.runner.Run(ctx, stdin, g.binary, args...)
	if err != nil {
		return fmt.Errorf("%w: gh %s: %w", models.ErrAuthFailure, op, err)
	}
	if !result.Success() {
		detail := firstLine(result.Stderr)
		if len(detail) == 0 {
			detail = fmt.Sprintf("exit status %d", result.ExitCode)
		}
		return fmt.Errorf("%w: gh %s: %s", models.ErrAuthFailure, op, detail)
	}
	return nil
}

// parseStatus reads gh's human output, which older releases print on stderr.
func parseStatus(hostname string, result *common.CommandResult) models.SessionState {
	output := result.Stdout + "\n" + result.Stderr

	if !result.Success() {
		return models.Unauthenticated(hostname, firstLine(output))
	}

	match := loggedInPattern.FindStringSubmatch(output)
	if match == nil {
		return models.Unauthenticated(hostname, firstLine(output))
	}

	return models.AuthenticatedAs(match[1], match[2])
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); len(trimmed) > 0 {
			return trimmed
		}
	}
	return ""
}
