package credential

import (
	"fmt"
	"os"

	"github.com/99designs/keyring"
)

const serviceName = "opsboard"

// APITokenKey is the keyring entry holding the board data service
// API token. The token never touches the config file on disk.
const APITokenKey = "board-api-token"

// APIToken is a convenience wrapper for the data service token. The
// OPSBOARD_API_TOKEN environment variable takes precedence so CI and
// scripted use never need a keyring backend.
func APIToken() (string, error) {
	if tok := os.Getenv("OPSBOARD_API_TOKEN"); tok != "" {
		return tok, nil
	}
	return Get(APITokenKey)
}

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/opsboard/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("opsboard-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Get retrieves a credential value by key from the system keyring.
func Get(key string) (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}

	return string(item.Data), nil
}

// Set stores a credential value by key in the system keyring.
func Set(key string, value string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:  key,
		Data: []byte(value),
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}

	return nil
}

// Delete removes a credential by key from the system keyring.
func Delete(key string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Remove(key)
	if err != nil {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}

	return nil
}
