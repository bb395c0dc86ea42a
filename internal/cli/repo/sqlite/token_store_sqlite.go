package sqlite

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"GophAuth/internal/cli/repo"

	_ "modernc.org/sqlite"
)

// DefaultFileName — имя файла БД в каталоге приложения.
const DefaultFileName = "client.sqlite"

// TokenStoreSQLite — хранилище токена в таблице kv локальной БД SQLite.
type TokenStoreSQLite struct {
	db *sql.DB
}

var _ repo.TokenStore = (*TokenStoreSQLite)(nil)

// Open открывает (и создаёт при необходимости) файл БД по указанному пути.
func Open(path string) (*TokenStoreSQLite, error) {
	if path == "" {
		return nil, errors.New("empty sqlite path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// один writer — без SQLITE_BUSY при параллельных вызовах
	db.SetMaxOpenConns(1)
	return &TokenStoreSQLite{db: db}, nil
}

// Close закрывает соединение с БД.
func (s *TokenStoreSQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Migrate гарантирует наличие необходимых таблиц.
func (s *TokenStoreSQLite) Migrate() error {
	_, err := s.db.Exec(initialDDL())
	return err
}

// Get читает токен по ключу auth_token.
func (s *TokenStoreSQLite) Get() (string, bool, error) {
	var tok string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, repo.TokenKey).Scan(&tok)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return tok, tok != "", nil
}

// Set делает upsert токена.
func (s *TokenStoreSQLite) Set(token string) error {
	if token == "" {
		return s.Remove()
	}
	_, err := s.db.Exec(`INSERT INTO kv(key, value, updated_at) VALUES(?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		repo.TokenKey, token, time.Now().Unix())
	return err
}

// Remove удаляет токен.
func (s *TokenStoreSQLite) Remove() error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, repo.TokenKey)
	return err
}
