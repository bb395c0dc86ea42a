package bootstrap

import (
	"fmt"
	"path/filepath"

	"GophAuth/internal/cli/api"
	"GophAuth/internal/cli/repo"
	boltrepo "GophAuth/internal/cli/repo/bolt"
	fsrepo "GophAuth/internal/cli/repo/fs"
	keyringrepo "GophAuth/internal/cli/repo/keyring"
	"GophAuth/internal/cli/repo/memory"
	reposqlite "GophAuth/internal/cli/repo/sqlite"
	"GophAuth/internal/cli/service"
	"GophAuth/internal/config"

	"go.uber.org/zap"
)

func noopCleanup() error { return nil }

// OpenTokenStore открывает хранилище токена, выбранное в cfg.TokenStore,
// и возвращает (store, cleanup, error).
// cleanup необходимо вызвать после окончания работы, чтобы закрыть файл БД.
func OpenTokenStore(cfg *config.Config) (repo.TokenStore, func() error, error) {
	switch cfg.TokenStore {
	case config.TokenStoreFS, "":
		return fsrepo.NewAuthFSStore(cfg.TokenFile), noopCleanup, nil

	case config.TokenStoreSQLite:
		path, err := storePath(cfg.TokenFile, reposqlite.DefaultFileName)
		if err != nil {
			return nil, nil, err
		}
		s, err := reposqlite.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		if err := s.Migrate(); err != nil {
			_ = s.Close()
			return nil, nil, fmt.Errorf("migrate sqlite store: %w", err)
		}
		return s, s.Close, nil

	case config.TokenStoreBolt:
		path, err := storePath(cfg.TokenFile, boltrepo.DefaultFileName)
		if err != nil {
			return nil, nil, err
		}
		s, err := boltrepo.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open bolt store: %w", err)
		}
		return s, s.Close, nil

	case config.TokenStoreKeyring:
		return keyringrepo.New(""), noopCleanup, nil

	case config.TokenStoreMemory:
		return memory.New(""), noopCleanup, nil
	}
	return nil, nil, fmt.Errorf("unknown token store %q", cfg.TokenStore)
}

// storePath — явный путь из конфига либо файл в каталоге приложения
func storePath(explicit, name string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	dir, err := fsrepo.ConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(dir, name), nil
}

// NewAuthClient собирает клиент аутентификации: хранилище из конфига и Requester на cfg.ServerURL.
func NewAuthClient(cfg *config.Config, logger *zap.SugaredLogger) (*service.AuthClient, func() error, error) {
	store, cleanup, err := OpenTokenStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	return service.NewAuthClient(api.NewRequester(cfg.ServerURL), store, logger), cleanup, nil
}
