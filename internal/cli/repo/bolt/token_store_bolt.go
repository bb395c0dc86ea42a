package bolt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"GophAuth/internal/cli/repo"

	bolt "go.etcd.io/bbolt"
)

// DefaultFileName — имя файла bbolt в каталоге приложения.
const DefaultFileName = "session.db"

var bucketSession = []byte("session")

// TokenStoreBolt хранит токен в bucket "session" файла bbolt.
type TokenStoreBolt struct {
	db *bolt.DB
}

var _ repo.TokenStore = (*TokenStoreBolt)(nil)

// Open открывает файл bbolt и создаёт bucket.
func Open(path string) (*TokenStoreBolt, error) {
	if path == "" {
		return nil, errors.New("empty bolt path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSession)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &TokenStoreBolt{db: db}, nil
}

// Close закрывает файл.
func (s *TokenStoreBolt) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *TokenStoreBolt) Get() (string, bool, error) {
	var tok string
	err := s.db.View(func(tx *bolt.Tx) error {
		// значение валидно только внутри транзакции — копируем в строку
		if v := tx.Bucket(bucketSession).Get([]byte(repo.TokenKey)); v != nil {
			tok = string(v)
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return tok, tok != "", nil
}

func (s *TokenStoreBolt) Set(token string) error {
	if token == "" {
		return s.Remove()
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSession).Put([]byte(repo.TokenKey), []byte(token))
	})
}

func (s *TokenStoreBolt) Remove() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSession).Delete([]byte(repo.TokenKey))
	})
}
