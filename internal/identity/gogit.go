package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/sirupsen/logrus"

	"github.com/aegooby/goat/internal/models"
)

// GoGitResolver reads the identity with go-git instead of the git binary.
// The repository is found by walking up from Dir. go-git does not evaluate
// include or includeIf sections, so per-directory identities set up that way
// are only seen by GitResolver.
type GoGitResolver struct {
	Dir string

	// loadGlobal is swapped in tests to avoid reading the real ~/.gitconfig
	loadGlobal func() (*config.Config, error)
}

func NewGoGitResolver(dir string) *GoGitResolver {
	return &GoGitResolver{
		Dir: dir,
		loadGlobal: func() (*config.Config, error) {
			return config.LoadConfig(config.GlobalScope)
		},
	}
}

func (g *GoGitResolver) Resolve(ctx context.Context) (string, error) {

	local, err := g.localName()
	if err != nil {
		return "", err
	}
	if len(local) > 0 {
		logrus.WithField("user", local).Debugln("Resolved repository git identity")
		return local, nil
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	global, err := g.loadGlobal()
	if err != nil {
		return "", fmt.Errorf("failed to read global git identity: %w", err)
	}
	if name := strings.TrimSpace(global.User.Name); len(name) > 0 {
		logrus.WithField("user", name).Debugln("Resolved global git identity")
		return name, nil
	}

	return "", models.ErrNoIdentityConfigured
}

func (g *GoGitResolver) localName() (string, error) {
	dir := g.Dir
	if len(dir) == 0 {
		dir = "."
	}

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to open repository: %w", err)
	}

	cfg, err := repo.ConfigScoped(config.LocalScope)
	if err != nil {
		return "", fmt.Errorf("failed to read repository git identity: %w", err)
	}

	return strings.TrimSpace(cfg.User.Name), nil
}
