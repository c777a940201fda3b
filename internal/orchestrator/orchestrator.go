// Package orchestrator keeps the gh session, the credential store and the git
// identity consistent. A store mutation is only saved after the matching gh
// call has succeeded.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/aegooby/goat/internal/identity"
	"github.com/aegooby/goat/internal/models"
	"github.com/aegooby/goat/internal/session"
)

// Store is the credential store as seen by the orchestrator.
type Store interface {
	Load() (*models.CredentialStore, error)
	Save(*models.CredentialStore) error
}

type Orchestrator struct {
	store    Store
	resolver identity.Resolver
	agent    session.Agent
}

func New(store Store, resolver identity.Resolver, agent session.Agent) *Orchestrator {
	return &Orchestrator{
		store:    store,
		resolver: resolver,
		agent:    agent,
	}
}

type LoginResult struct {
	User string
	// AlreadyActive is set when the user was already recorded as active and
	// gh was not called.
	AlreadyActive bool
}

type LogoutResult struct {
	// Previous is the active account before logout, empty if none was recorded.
	Previous string
}

type StatusResult struct {
	Session models.SessionState
	Active  string
}

// Login makes user the active gh account.
func (o *Orchestrator) Login(ctx context.Context, user string) (*LoginResult, error) {

	doc, err := o.store.Load()
	if err != nil {
		return nil, err
	}

	if doc.IsActive(user) {
		logrus.WithField("user", user).Debugln("Account already active, skipping gh login")
		return &LoginResult{User: user, AlreadyActive: true}, nil
	}

	account, ok := doc.Lookup(user)
	if !ok {
		return nil, fmt.Errorf("%w '%s'", models.ErrUnknownAccount, user)
	}

	if err := o.agent.Authenticate(ctx, account.Token); err != nil {
		return nil, err
	}

	// Reload so changes made since the first read are not clobbered
	doc, err = o.store.Load()
	if err != nil {
		logrus.WithError(err).WithField("user", user).
			Errorln("gh is logged in but the credential store could not be reloaded")
		return nil, err
	}

	doc.SetActive(&user)

	if err := o.store.Save(doc); err != nil {
		// gh is now authenticated as user while the store still says otherwise.
		// This is reported, not rolled back.
		logrus.WithError(err).WithField("user", user).
			Errorln("gh is logged in but the active account could not be recorded")
		return nil, err
	}

	logrus.WithField("user", user).Debugln("Recorded active account")

	return &LoginResult{User: user}, nil
}

// Logout ends the gh session and clears the active account.
func (o *Orchestrator) Logout(ctx context.Context) (*LogoutResult, error) {

	if err := o.agent.Deauthenticate(ctx); err != nil {
		return nil, err
	}

	doc, err := o.store.Load()
	if err != nil {
		return nil, err
	}

	previous, _ := doc.Active()
	doc.ClearActive()

	if err := o.store.Save(doc); err != nil {
		logrus.WithError(err).Errorln("gh is logged out but the active account could not be cleared")
		return nil, err
	}

	return &LogoutResult{Previous: previous}, nil
}

// Sync logs in as whoever git says the user is.
func (o *Orchestrator) Sync(ctx context.Context) (*LoginResult, error) {

	user, err := o.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	return o.Login(ctx, user)
}

// Info compares the recorded active account with the git identity. It neither
// writes the store nor calls gh.
func (o *Orchestrator) Info(ctx context.Context) (*models.Reconciliation, error) {

	user, err := o.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := o.store.Load()
	if err != nil {
		return nil, err
	}

	result := Classify(doc.CurrentUser, user)
	return &result, nil
}

// Status reports what gh itself thinks next to what the store records.
func (o *Orchestrator) Status(ctx context.Context) (*StatusResult, error) {

	doc, err := o.store.Load()
	if err != nil {
		return nil, err
	}

	active, _ := doc.Active()

	return &StatusResult{
		Session: o.agent.Status(ctx),
		Active:  active,
	}, nil
}

// Classify is the pure reconciliation rule behind Info.
func Classify(active *string, identity string) models.Reconciliation {
	if active == nil {
		return models.Reconciliation{
			Status:   models.StatusNoAuth,
			Identity: identity,
		}
	}

	status := models.StatusConflict
	if *active == identity {
		status = models.StatusSynced
	}

	return models.Reconciliation{
		Status:   status,
		Identity: identity,
		Active:   *active,
	}
}
