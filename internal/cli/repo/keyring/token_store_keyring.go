package keyring

import (
	"errors"

	"GophAuth/internal/cli/repo"

	"github.com/zalando/go-keyring"
)

// DefaultService — имя сервиса в системном keyring.
const DefaultService = "GophAuth"

// TokenStoreKeyring хранит токен в системном keyring (Keychain, Secret Service, Credential Manager).
type TokenStoreKeyring struct {
	Service string
}

var _ repo.TokenStore = TokenStoreKeyring{}

// New создаёт хранилище; пустой service — DefaultService.
func New(service string) TokenStoreKeyring {
	if service == "" {
		service = DefaultService
	}
	return TokenStoreKeyring{Service: service}
}

func (s TokenStoreKeyring) Get() (string, bool, error) {
	tok, err := keyring.Get(s.Service, repo.TokenKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return tok, tok != "", nil
}

func (s TokenStoreKeyring) Set(token string) error {
	if token == "" {
		return s.Remove()
	}
	return keyring.Set(s.Service, repo.TokenKey, token)
}

func (s TokenStoreKeyring) Remove() error {
	if err := keyring.Delete(s.Service, repo.TokenKey); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}
