// Package credentials manages the completion provider API key.
//
// The key is resolved in priority order:
//  1. GEMINI_API_KEY environment variable (CI, one-off overrides)
//  2. System keyring (macOS Keychain, Windows Credential Manager,
//     Linux Secret Service), set via `callsight auth set-key`
package credentials

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// keyringService is the service name used in the system keyring.
	keyringService = "callsight-cli"
	// keyringUser is the account name used in the system keyring.
	keyringUser = "gemini-api-key"

	// EnvAPIKey is the environment variable that overrides the keyring.
	EnvAPIKey = "GEMINI_API_KEY"
)

// ErrNoAPIKey indicates no API key is configured anywhere.
var ErrNoAPIKey = errors.New("no API key configured")

// ErrKeyringUnavailable indicates the system keyring is not available.
var ErrKeyringUnavailable = errors.New("system keyring unavailable")

// Store reads and writes the provider API key.
type Store struct{}

// NewStore creates a credential store.
func NewStore() *Store {
	return &Store{}
}

// APIKey resolves the API key from the environment or the keyring.
func (s *Store) APIKey() (string, error) {
	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		return key, nil
	}

	key, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w: set %s or run `callsight auth set-key`", ErrNoAPIKey, EnvAPIKey)
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("%w: stored key is empty", ErrNoAPIKey)
	}
	return key, nil
}

// SetAPIKey stores the API key in the system keyring.
func (s *Store) SetAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("API key must not be empty")
	}
	if err := keyring.Set(keyringService, keyringUser, key); err != nil {
		return fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return nil
}

// ClearAPIKey removes the API key from the system keyring.
func (s *Store) ClearAPIKey() error {
	err := keyring.Delete(keyringService, keyringUser)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return nil
}

// Source describes where the key currently comes from, for `auth show`.
func (s *Store) Source() string {
	if strings.TrimSpace(os.Getenv(EnvAPIKey)) != "" {
		return "environment (" + EnvAPIKey + ")"
	}
	if _, err := keyring.Get(keyringService, keyringUser); err == nil {
		return KeyringDescription()
	}
	return "not configured"
}

// KeyringDescription names the platform keyring backend.
func KeyringDescription() string {
	switch runtime.GOOS {
	case "darwin":
		return "macOS Keychain"
	case "windows":
		return "Windows Credential Manager"
	default:
		return "System Keyring (Secret Service)"
	}
}
