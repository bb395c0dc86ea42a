package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"GophAuth/internal/cli/repo"
)

// AppDir — каталог приложения внутри пользовательского конфиг-каталога.
const AppDir = "GophAuth"

// AuthFSStore — файловое хранилище auth-токена для CLI.
// Нулевое значение пишет в <UserConfigDir>/GophAuth/auth_token.
type AuthFSStore struct {
	Path string
}

var _ repo.TokenStore = AuthFSStore{}

// NewAuthFSStore создаёт хранилище с явным путём к файлу (пустой путь — путь по умолчанию).
func NewAuthFSStore(path string) AuthFSStore {
	return AuthFSStore{Path: path}
}

// ConfigDir возвращает (и создаёт) каталог приложения.
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, AppDir)
	if err := os.MkdirAll(p, 0o700); err != nil {
		return "", err
	}
	return p, nil
}

// tokenPath возвращает путь к файлу токена; каталог создаётся только при create.
func (s AuthFSStore) tokenPath(create bool) (string, error) {
	p := s.Path
	if p == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(dir, AppDir, repo.TokenKey)
	}
	if create {
		if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
			return "", err
		}
	}
	return p, nil
}

// Get читает auth-токен из файла. Нет файла или пустой файл — токена нет.
func (s AuthFSStore) Get() (string, bool, error) {
	p, err := s.tokenPath(false)
	if err != nil {
		return "", false, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	// срезаем один завершающий перевод строки (его добавляют редакторы), остальное — часть токена
	tok := string(b)
	if t, ok := strings.CutSuffix(tok, "\n"); ok {
		tok = strings.TrimSuffix(t, "\r")
	}
	if tok == "" {
		return "", false, nil
	}
	return tok, true, nil
}

// Set атомарно перезаписывает файл токена (tmp + rename).
func (s AuthFSStore) Set(token string) error {
	if token == "" {
		return s.Remove()
	}
	p, err := s.tokenPath(true)
	if err != nil {
		return err
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, []byte(token), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

// Remove удаляет файл токена.
func (s AuthFSStore) Remove() error {
	p, err := s.tokenPath(false)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
