package repo

import (
	"context"
	"testing"
	"time"

	"GophAuth/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSessionRepository_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	r := NewSessionRepository(db)
	ctx := context.Background()

	u, err := users.CreateUser(ctx, &model.User{Login: "bob", Password: "h"})
	require.NoError(t, err)

	now := time.Now().UTC()
	s := &model.Session{ID: uuid.NewString(), UserID: u.ID, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, r.Create(ctx, s))

	got, err := r.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.UserID)
	assert.True(t, got.Active(now))

	require.NoError(t, r.Revoke(ctx, s.ID, now))
	got, err = r.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.RevokedAt)
	assert.False(t, got.Active(now))

	// повторный отзыв и отзыв неизвестной — не ошибка
	assert.NoError(t, r.Revoke(ctx, s.ID, now.Add(time.Minute)))
	assert.NoError(t, r.Revoke(ctx, "missing", now))

	_, err = r.Get(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	r := NewSessionRepository(db)
	ctx := context.Background()

	u, err := users.CreateUser(ctx, &model.User{Login: "eve", Password: "h"})
	require.NoError(t, err)

	now := time.Now().UTC()
	old := &model.Session{ID: uuid.NewString(), UserID: u.ID, ExpiresAt: now.Add(-time.Minute)}
	fresh := &model.Session{ID: uuid.NewString(), UserID: u.ID, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, r.Create(ctx, old))
	require.NoError(t, r.Create(ctx, fresh))
	assert.False(t, old.Active(now))

	n, err := r.DeleteExpired(ctx, now)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = r.Get(ctx, old.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = r.Get(ctx, fresh.ID)
	assert.NoError(t, err)
}
