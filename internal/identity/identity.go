// Package identity discovers the git user name that the current repository,
// or failing that the user's global configuration, is set up with.
package identity

import (
	"context"
)

// Resolver returns the trimmed git user name, local scope first then the
// user's global configuration.
// It fails with models.ErrNoIdentityConfigured when neither is set.
type Resolver interface {
	Resolve(ctx context.Context) (string, error)
}

// Writer sets the repository-local git identity.
type Writer interface {
	SetLocal(ctx context.Context, name string, email string) error
}

type Backend string

const (
	BackendExec  Backend = "exec"
	BackendGoGit Backend = "go-git"
)

// ParseBackend maps a configured backend name, falling back to exec.
func ParseBackend(value string) (Backend, bool) {
	switch Backend(value) {
	case BackendExec, "":
		return BackendExec, true
	case BackendGoGit:
		return BackendGoGit, true
	default:
		return BackendExec, false
	}
}
