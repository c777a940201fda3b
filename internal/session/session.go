// Package session drives the gh authentication session.
package session

import (
	"context"

	"github.com/aegooby/goat/internal/models"
)

// Agent authenticates and de-authenticates the external session. Calls are
// made once; a failure is returned immediately and never retried.
type Agent interface {
	Authenticate(ctx context.Context, token string) error
	Deauthenticate(ctx context.Context) error
	// Status is best effort and only used for diagnostics.
	Status(ctx context.Context) models.SessionState
}
