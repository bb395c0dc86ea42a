package model

import "time"

// Session — серверная сессия, на которую ссылается jti токена.
type Session struct {
	ID     string `gorm:"primaryKey;type:varchar(36)"`
	UserID int64  `gorm:"not null;index"`
	User   *User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	ExpiresAt time.Time `gorm:"not null"`
	RevokedAt *time.Time

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Active — сессия не отозвана и не истекла.
func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
