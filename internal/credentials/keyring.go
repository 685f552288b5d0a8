// Package credentials remembers connection passwords in the OS keyring.
package credentials

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// Service is the keyring service name passwords are stored under.
const Service = "dbnav"

// Store looks up and saves passwords by account.
type Store interface {
	Password(account string) (string, bool, error)
	SavePassword(account, password string) error
	Forget(account string) error
}

// Keyring is a Store backed by the OS keyring.
type Keyring struct {
	service string
}

// NewKeyring returns a Store using the default service name.
func NewKeyring() *Keyring {
	return &Keyring{service: Service}
}

// Password returns the stored password. A missing entry is not an error.
func (k *Keyring) Password(account string) (string, bool, error) {
	pw, err := keyring.Get(k.service, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("keyring get: %w", err)
	}
	return pw, true, nil
}

// SavePassword stores password for account, replacing any previous value.
func (k *Keyring) SavePassword(account, password string) error {
	if err := keyring.Set(k.service, account, password); err != nil {
		return fmt.Errorf("keyring set: %w", err)
	}
	return nil
}

// Forget deletes the entry for account. A missing entry is not an error.
func (k *Keyring) Forget(account string) error {
	err := keyring.Delete(k.service, account)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keyring delete: %w", err)
	}
	return nil
}

// Disabled is a Store that remembers nothing.
type Disabled struct{}

func (Disabled) Password(string) (string, bool, error) { return "", false, nil }
func (Disabled) SavePassword(string, string) error     { return nil }
func (Disabled) Forget(string) error                   { return nil }
