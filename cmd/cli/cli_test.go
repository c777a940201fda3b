package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegooby/goat/internal/config"
	"github.com/aegooby/goat/internal/identity"
	"github.com/aegooby/goat/internal/models"
	"github.com/aegooby/goat/internal/orchestrator"
	"github.com/aegooby/goat/internal/session"
	"github.com/aegooby/goat/internal/store"
)

type stubResolver struct {
	user string
}

func (s *stubResolver) Resolve(context.Context) (string, error) {
	if len(s.user) == 0 {
		return "", models.ErrNoIdentityConfigured
	}
	return s.user, nil
}

type stubAgent struct {
	tokens  []string
	logouts int
	state   models.SessionState
}

func (s *stubAgent) Authenticate(_ context.Context, token string) error {
	s.tokens = append(s.tokens, token)
	return nil
}

func (s *stubAgent) Deauthenticate(context.Context) error {
	s.logouts++
	return nil
}

func (s *stubAgent) Status(context.Context) models.SessionState {
	return s.state
}

type stubWriter struct {
	name, email string
}

func (s *stubWriter) SetLocal(_ context.Context, name string, email string) error {
	s.name, s.email = name, email
	return nil
}

// resetFlags restores every flag in the tree, cobra keeps parsed values
// between Execute calls on the same command.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

type harness struct {
	t         *testing.T
	storePath string
	agent     *stubAgent
	resolver  *stubResolver
	writer    *stubWriter
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	// xdg caches its paths; reload once the environment is restored
	t.Cleanup(xdg.Reload)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()

	h := &harness{
		t:         t,
		storePath: filepath.Join(t.TempDir(), ".goat.toml"),
		agent:     &stubAgent{},
		resolver:  &stubResolver{},
		writer:    &stubWriter{},
	}

	prevAgent, prevResolver, prevWriter := newAgent, newResolver, newIdentityWriter
	newAgent = func(*config.Config) session.Agent { return h.agent }
	newResolver = func(*config.Config) identity.Resolver { return h.resolver }
	newIdentityWriter = func() identity.Writer { return h.writer }
	t.Cleanup(func() {
		newAgent, newResolver, newIdentityWriter = prevAgent, prevResolver, prevWriter
		resetFlags(rootCmd)
	})

	return h
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--store", h.storePath}, args...))

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (h *harness) load() *models.CredentialStore {
	h.t.Helper()
	doc, err := store.NewFileStore(h.storePath).Load()
	require.NoError(h.t, err)
	return doc
}

func TestCommandFlow(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("token", "set", "alice", "alice-secret", "--email", "alice@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "updated key for user alice")

	_, err = h.run("token", "set", "bob", "bob-secret")
	require.NoError(t, err)

	doc := h.load()
	require.Len(t, doc.Users, 2)
	assert.Equal(t, "alice@example.com", doc.Users["alice"].Email)
	assert.Empty(t, doc.Users["bob"].Email)
	assert.Nil(t, doc.CurrentUser)

	out, err = h.run("login", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "logged in as")
	assert.Equal(t, []string{"alice-secret"}, h.agent.tokens)
	assert.True(t, h.load().IsActive("alice"))

	out, err = h.run("login", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "already logged in as alice")
	assert.Len(t, h.agent.tokens, 1)

	out, err = h.run("list")
	require.NoError(t, err)
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "(active)")
	assert.Contains(t, out, "************")
	assert.NotContains(t, out, "alice-secret")

	out, err = h.run("list", "--show")
	require.NoError(t, err)
	assert.Contains(t, out, "alice-secret")

	h.resolver.user = "bob"
	out, err = h.run("info")
	require.NoError(t, err)
	assert.Contains(t, out, "conflict")

	out, err = h.run("sync")
	require.NoError(t, err)
	assert.Contains(t, out, "sync:")
	assert.Equal(t, []string{"alice-secret", "bob-secret"}, h.agent.tokens)
	assert.True(t, h.load().IsActive("bob"))

	out, err = h.run("info")
	require.NoError(t, err)
	assert.Contains(t, out, "sync")

	out, err = h.run("logout")
	require.NoError(t, err)
	assert.Contains(t, out, "cleared credentials for bob")
	assert.Equal(t, 1, h.agent.logouts)
	assert.Nil(t, h.load().CurrentUser)

	out, err = h.run("info")
	require.NoError(t, err)
	assert.Contains(t, out, "no-auth")

	out, err = h.run("token", "del", "alice", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted user alice")
	_, ok := h.load().Lookup("alice")
	assert.False(t, ok)
}

func TestConfigFromIsolatedHome(t *testing.T) {
	h := newHarness(t)

	configDir := filepath.Join(xdg.ConfigHome, "goat")
	require.NoError(t, os.MkdirAll(configDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("gh:\n  hostname: ghe.example.com\n"), 0o600))

	_, err := h.run("list")
	require.NoError(t, err)
	assert.Equal(t, "ghe.example.com", cfg.GH.Hostname)
	assert.Equal(t, filepath.Join(configDir, "config.yaml"), cfg.Source())
}

func TestLoginUnknownUser(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("login", "carol")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUnknownAccount)
	assert.Empty(t, h.agent.tokens)
}

func TestSyncWithoutIdentity(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("sync")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNoIdentityConfigured)
	assert.Empty(t, h.agent.tokens)
}

func TestTokenSetValidation(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("token", "set", "bad\nname", "secret")
	assert.Error(t, err)

	_, err = h.run("token", "set", "alice", "secret", "--email", "not-an-email")
	assert.Error(t, err)

	assert.Empty(t, h.load().Users)
}

func TestTokenSetFromStdin(t *testing.T) {
	h := newHarness(t)
	rootCmd.SetIn(bytes.NewBufferString("piped-secret\n"))
	t.Cleanup(func() { rootCmd.SetIn(nil) })

	_, err := h.run("token", "set", "alice", "-")
	require.NoError(t, err)

	account, ok := h.load().Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, "piped-secret", account.Token)
}

func TestInitCommand(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("init", "alice", "--email", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", h.writer.name)
	assert.Equal(t, "alice@example.com", h.writer.email)
	assert.Contains(t, out, "no token stored for alice")

	_, err = h.run("init", "alice", "--email", "nope")
	assert.Error(t, err)

	_, err = h.run("init", "alice", "--email", "Alice <alice@example.com>")
	assert.Error(t, err)
	assert.Equal(t, "alice@example.com", h.writer.email)
}

func TestPrintAccountsEmpty(t *testing.T) {
	var out bytes.Buffer
	printAccounts(&out, models.NewCredentialStore(), false)
	assert.Contains(t, out.String(), "no users stored")
}

func TestPrintReconciliation(t *testing.T) {
	active := "alice"
	tests := []struct {
		name     string
		result   models.Reconciliation
		contains []string
	}{
		{
			name:     "no active user",
			result:   orchestrator.Classify(nil, "alice"),
			contains: []string{"no-auth", "alice", "none"},
		},
		{
			name:     "synced",
			result:   orchestrator.Classify(&active, "alice"),
			contains: []string{"sync", "alice"},
		},
		{
			name:     "conflict",
			result:   orchestrator.Classify(&active, "bob"),
			contains: []string{"conflict", "bob", "alice"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			printReconciliation(&out, &tt.result)
			for _, s := range tt.contains {
				assert.Contains(t, out.String(), s)
			}
		})
	}
}

func TestPrintStatus(t *testing.T) {
	var out bytes.Buffer
	printStatus(&out, &orchestrator.StatusResult{
		Session: models.AuthenticatedAs("github.com", "bob"),
		Active:  "alice",
	})
	assert.Contains(t, out.String(), "drift")

	out.Reset()
	printStatus(&out, &orchestrator.StatusResult{
		Session: models.AuthenticatedAs("github.com", "alice"),
		Active:  "alice",
	})
	assert.Contains(t, out.String(), "ok")
	assert.Contains(t, out.String(), "github.com")

	out.Reset()
	printStatus(&out, &orchestrator.StatusResult{
		Session: models.Unauthenticated("github.com", "not logged in to github.com"),
	})
	assert.Contains(t, out.String(), "ok")
	assert.Contains(t, out.String(), "not logged in")
}
