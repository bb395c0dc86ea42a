package memory

import (
	"sync"

	"GophAuth/internal/cli/repo"
)

// TokenStoreMemory — хранилище токена в памяти процесса.
// Нулевое значение готово к использованию.
type TokenStoreMemory struct {
	mu    sync.RWMutex
	token string
}

var _ repo.TokenStore = (*TokenStoreMemory)(nil)

// New создаёт хранилище с начальным токеном (пустой — без токена).
func New(token string) *TokenStoreMemory {
	return &TokenStoreMemory{token: token}
}

func (s *TokenStoreMemory) Get() (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != "", nil
}

func (s *TokenStoreMemory) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *TokenStoreMemory) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
