package keyring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestTokenStoreKeyring_Lifecycle(t *testing.T) {
	// in-memory провайдер вместо системного keyring
	keyring.MockInit()

	s := New("")
	assert.Equal(t, DefaultService, s.Service)

	_, ok, err := s.Get()
	assert.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("tok"))
	tok, ok, err := s.Get()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", tok)

	require.NoError(t, s.Remove())
	_, ok, _ = s.Get()
	assert.False(t, ok)
	// удаление отсутствующего — не ошибка
	assert.NoError(t, s.Remove())
}

func TestTokenStoreKeyring_SetEmptyClears(t *testing.T) {
	keyring.MockInit()
	s := New("svc")
	require.NoError(t, s.Set("x"))
	require.NoError(t, s.Set(""))
	_, ok, _ := s.Get()
	assert.False(t, ok)
}

func TestTokenStoreKeyring_BackendError(t *testing.T) {
	boom := errors.New("keyring locked")
	keyring.MockInitWithError(boom)
	t.Cleanup(keyring.MockInit)

	s := New("svc")
	_, _, err := s.Get()
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, s.Set("x"), boom)
	assert.ErrorIs(t, s.Remove(), boom)
}
