package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/aegooby/goat/internal/models"
)

type fakeResolver struct {
	user string
	err  error
}

func (f *fakeResolver) Resolve(context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.user, nil
}

type fakeAgent struct {
	authErr   error
	deauthErr error
	state     models.SessionState

	tokens   []string
	logouts  int
	statuses int
}

func (f *fakeAgent) Authenticate(_ context.Context, token string) error {
	f.tokens = append(f.tokens, token)
	if f.authErr != nil {
		return fmt.Errorf("%w: gh login: %w", models.ErrAuthFailure, f.authErr)
	}
	return nil
}

func (f *fakeAgent) Deauthenticate(context.Context) error {
	f.logouts++
	if f.deauthErr != nil {
		return fmt.Errorf("%w: gh logout: %w", models.ErrAuthFailure, f.deauthErr)
	}
	return nil
}

func (f *fakeAgent) Status(context.Context) models.SessionState {
	f.statuses++
	return f.state
}

func (f *fakeAgent) calls() int {
	return len(f.tokens) + f.logouts + f.statuses
}

// failingSaves wraps a Store and fails every Save.
type failingSaves struct {
	Store
}

func (f failingSaves) Save(*models.CredentialStore) error {
	return fmt.Errorf("%w: %w", models.ErrConfigWrite, errors.New("disk full"))
}

func strPtr(s string) *string {
	return &s
}
