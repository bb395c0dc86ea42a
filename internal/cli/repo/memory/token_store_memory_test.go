package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenStoreMemory_Lifecycle(t *testing.T) {
	s := New("")
	_, ok, _ := s.Get()
	assert.False(t, ok)

	_ = s.Set("a")
	tok, ok, err := s.Get()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a", tok)

	_ = s.Set("")
	_, ok, _ = s.Get()
	assert.False(t, ok)

	_ = s.Set("b")
	_ = s.Remove()
	_, ok, _ = s.Get()
	assert.False(t, ok)
}

// Параллельный доступ не должен приводить к гонкам (go test -race)
func TestTokenStoreMemory_Concurrent(t *testing.T) {
	var s TokenStoreMemory
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = s.Set("tok")
			} else {
				_ = s.Remove()
			}
			_, _, _ = s.Get()
		}(i)
	}
	wg.Wait()
}
