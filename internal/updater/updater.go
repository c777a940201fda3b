// Package updater replaces the running binary with the latest GitHub release.
package updater

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	"github.com/google/go-github/v57/github"
	"github.com/gregjones/httpcache"
	"github.com/hashicorp/go-version"
	"github.com/inconshreveable/go-update"
	"github.com/sirupsen/logrus"

	"github.com/aegooby/goat/internal/common"
	"github.com/aegooby/goat/internal/models"
)

type Updater struct {
	owner   string
	repo    string
	current string
	goos    string
	client  *github.Client

	// targetPath is the binary to replace; empty means the running executable
	targetPath string
}

// NewHTTPClient layers ETag caching under GitHub's secondary rate limit handling.
func NewHTTPClient() *http.Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	return github_ratelimit.NewClient(cacheTransport)
}

func NewUpdater(owner string, repo string, current string) *Updater {
	return NewUpdaterWithClient(github.NewClient(NewHTTPClient()), owner, repo, current)
}

func NewUpdaterWithClient(client *github.Client, owner string, repo string, current string) *Updater {
	return &Updater{
		owner:   owner,
		repo:    repo,
		current: current,
		goos:    runtime.GOOS,
		client:  client,
	}
}

// LatestRelease fetches the newest published release.
func (u *Updater) LatestRelease(ctx context.Context) (*github.RepositoryRelease, error) {
	release, _, err := u.client.Repositories.GetLatestRelease(ctx, u.owner, u.repo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	return release, nil
}

// CheckForUpdate returns the latest release if it is newer than the running
// version, or nil when already up to date. Builds without a parseable version
// always see the latest release as an update.
func (u *Updater) CheckForUpdate(ctx context.Context) (*github.RepositoryRelease, error) {
	release, err := u.LatestRelease(ctx)
	if err != nil {
		return nil, err
	}

	if !u.isNewer(release.GetTagName()) {
		return nil, nil
	}
	return release, nil
}

func (u *Updater) isNewer(tag string) bool {
	latest, err := version.NewVersion(tag)
	if err != nil {
		logrus.WithError(err).WithField("tag", tag).Warnln("Release tag is not a version")
		return false
	}

	current, err := version.NewVersion(u.current)
	if err != nil {
		return true
	}

	return latest.GreaterThan(current)
}

// assetAliases are the other names release assets use for a GOOS value.
var assetAliases = map[string][]string{
	"darwin": {"macos"},
}

// FindAsset picks the first asset whose name mentions the operating system,
// e.g. goat-linux-amd64 or goat-macos. The GOOS name is tried before aliases.
func (u *Updater) FindAsset(release *github.RepositoryRelease) (*github.ReleaseAsset, error) {
	names := append([]string{u.goos}, assetAliases[u.goos]...)
	for _, name := range names {
		for _, asset := range release.Assets {
			if common.ContainsInsensitive(asset.GetName(), name) {
				return asset, nil
			}
		}
	}
	return nil, fmt.Errorf("%w %s", models.ErrNoReleaseAsset, u.goos)
}

// Update downloads the platform asset of the latest release and swaps it in
// for the target binary. It returns the release tag.
func (u *Updater) Update(ctx context.Context) (string, error) {
	release, err := u.LatestRelease(ctx)
	if err != nil {
		return "", err
	}

	asset, err := u.FindAsset(release)
	if err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"tag":   release.GetTagName(),
		"asset": asset.GetName(),
	}).Debugln("Downloading release asset")

	body, _, err := u.client.Repositories.DownloadReleaseAsset(
		ctx, u.owner, u.repo, asset.GetID(), http.DefaultClient)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", asset.GetName(), err)
	}
	defer body.Close()

	target := u.targetPath
	if len(target) == 0 {
		target, err = os.Executable()
		if err != nil {
			return "", fmt.Errorf("failed to locate running binary: %w", err)
		}
	}

	if err := update.Apply(body, update.Options{TargetPath: target}); err != nil {
		if rollbackErr := update.RollbackError(err); rollbackErr != nil {
			logrus.WithError(rollbackErr).Errorln("Failed to roll back after a failed update")
		}
		return "", fmt.Errorf("failed to replace %s: %w", target, err)
	}

	return release.GetTagName(), nil
}
