package repo

import (
	"context"
	"time"

	"GophAuth/internal/model"

	"gorm.io/gorm"
)

// SessionRepository — серверные сессии (jti выданных токенов).
type SessionRepository interface {
	Create(ctx context.Context, s *model.Session) error
	// Get возвращает gorm.ErrRecordNotFound для неизвестного id.
	Get(ctx context.Context, id string) (*model.Session, error)
	// Revoke помечает сессию отозванной. Неизвестная или уже отозванная сессия — не ошибка.
	Revoke(ctx context.Context, id string, at time.Time) error
	// DeleteExpired удаляет истёкшие сессии и возвращает их количество.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type sessionRepo struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, s *model.Session) error {
	return r.db.WithContext(ctx).Omit("User").Create(s).Error
}

func (r *sessionRepo) Get(ctx context.Context, id string) (*model.Session, error) {
	var s model.Session
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) Revoke(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Session{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", at).Error
}

func (r *sessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&model.Session{})
	return tx.RowsAffected, tx.Error
}
