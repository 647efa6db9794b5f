package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// KeyringService is the OS keyring service name of the terminal client.
const KeyringService = "kitabcloud-admin"

// KeyringStore keeps the terminal client session in the OS keyring, one
// entry per key and profile.
type KeyringStore struct {
	profile string
}

func NewKeyringStore(profile string) *KeyringStore {
	if profile == "" {
		profile = "default"
	}
	return &KeyringStore{profile: profile}
}

func (k *KeyringStore) account(key string) string {
	return k.profile + ":" + key
}

func (k *KeyringStore) Load(context.Context) (State, error) {
	token, err := k.get(KeyToken)
	if err != nil {
		return State{}, err
	}
	user, err := k.get(KeyUser)
	if err != nil {
		return State{}, err
	}

	st := State{Token: token}
	if user != "" {
		st.User = json.RawMessage(user)
	}
	return st, nil
}

func (k *KeyringStore) Save(_ context.Context, st State) error {
	if err := keyring.Set(KeyringService, k.account(KeyToken), st.Token); err != nil {
		return fmt.Errorf("keyring save token: %w", err)
	}
	if err := keyring.Set(KeyringService, k.account(KeyUser), string(st.User)); err != nil {
		return fmt.Errorf("keyring save user: %w", err)
	}
	return nil
}

func (k *KeyringStore) Clear(context.Context) error {
	for _, key := range []string{KeyToken, KeyUser} {
		err := keyring.Delete(KeyringService, k.account(key))
		if err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("keyring clear %s: %w", key, err)
		}
	}
	return nil
}

func (k *KeyringStore) get(key string) (string, error) {
	v, err := keyring.Get(KeyringService, k.account(key))
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("keyring load %s: %w", key, err)
	}
	return v, nil
}
