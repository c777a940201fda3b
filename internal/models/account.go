package models

import (
	"slices"
	"strings"
)

// Account is a named credential the tool can hand to gh.
// The name is the key of the users table and is not repeated on disk.
type Account struct {
	Name  string `toml:"-" yaml:"-"`
	Email string `toml:"email,omitempty" yaml:"email,omitempty"`
	Token string `toml:"token" yaml:"token"`
}

func (a Account) HasEmail() bool {
	return len(a.Email) > 0
}

// CredentialStore is the persisted document: the users table plus the name of the
// account the tool believes is logged in to gh.
type CredentialStore struct {
	CurrentUser *string            `toml:"current_user,omitempty" yaml:"current_user,omitempty"`
	Users       map[string]Account `toml:"users" yaml:"users"`
}

func NewCredentialStore() *CredentialStore {
	return &CredentialStore{
		Users: make(map[string]Account),
	}
}

// Normalize fills in the map and the account names after decoding.
func (c *CredentialStore) Normalize() {
	if c.Users == nil {
		c.Users = make(map[string]Account)
	}
	for name, account := range c.Users {
		account.Name = name
		c.Users[name] = account
	}
}

// Active returns the recorded active account name and whether one is set.
func (c *CredentialStore) Active() (string, bool) {
	if c.CurrentUser == nil {
		return "", false
	}
	return *c.CurrentUser, true
}

func (c *CredentialStore) IsActive(name string) bool {
	active, ok := c.Active()
	return ok && active == name
}

func (c *CredentialStore) SetActive(name *string) {
	if name == nil {
		c.CurrentUser = nil
		return
	}
	value := *name
	c.CurrentUser = &value
}

func (c *CredentialStore) ClearActive() {
	c.CurrentUser = nil
}

func (c *CredentialStore) Lookup(name string) (Account, bool) {
	account, ok := c.Users[name]
	if ok {
		account.Name = name
	}
	return account, ok
}

// Upsert inserts or overwrites an account. The token is only checked for emptiness.
func (c *CredentialStore) Upsert(name string, token string, email string) error {
	if len(strings.TrimSpace(name)) == 0 {
		return ErrInvalidAccount
	}
	if len(token) == 0 {
		return ErrInvalidAccount
	}
	if c.Users == nil {
		c.Users = make(map[string]Account)
	}
	c.Users[name] = Account{
		Name:  name,
		Email: email,
		Token: token,
	}
	return nil
}

// Remove deletes an account; removing an unknown name is a no-op.
// The active account is left alone even when it names the removed user.
func (c *CredentialStore) Remove(name string) {
	delete(c.Users, name)
}

// HasDanglingActive reports an active account that is not in the users table.
func (c *CredentialStore) HasDanglingActive() bool {
	active, ok := c.Active()
	if !ok {
		return false
	}
	_, found := c.Users[active]
	return !found
}

func (c *CredentialStore) SortedNames() []string {
	names := make([]string, 0, len(c.Users))
	for name := range c.Users {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
