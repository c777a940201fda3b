package models

import "errors"

// Sentinel errors returned by the store, resolver, agent and orchestrator.
// Callers wrap them with context and match them with errors.Is.

// ErrConfigRead is returned when the credential file is unreadable or malformed.
var ErrConfigRead = errors.New("failed to read credential store")

// ErrConfigWrite is returned when the credential file cannot be truncated or written.
var ErrConfigWrite = errors.New("failed to write credential store")

// ErrNoIdentityConfigured is returned when neither the repository nor the global
// git configuration carries a user name.
var ErrNoIdentityConfigured = errors.New("could not find git config username")

// ErrUnknownAccount is returned when a login or sync target has no stored token.
var ErrUnknownAccount = errors.New("no token found for user")

// ErrAuthFailure is returned when the session agent could not be spawned, exited
// non-zero or did not finish before its deadline.
var ErrAuthFailure = errors.New("authentication with gh failed")

// ErrHomeDirectoryUnavailable is returned when the base directory for the store file
// cannot be located.
var ErrHomeDirectoryUnavailable = errors.New("failed to find home directory")

// ErrInvalidAccount is returned when an account is registered without a name or token.
var ErrInvalidAccount = errors.New("invalid account")

// ErrIdentityWrite is returned when the local git identity could not be set.
var ErrIdentityWrite = errors.New("failed to set local git config")

// ErrNoReleaseAsset is returned when the latest release has no asset for this platform.
var ErrNoReleaseAsset = errors.New("no release found for operating system")
