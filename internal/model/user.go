package model

import "time"

// User — серверная модель пользователя.
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Login    string `gorm:"uniqueIndex;not null;size:255"`
	Password string `gorm:"not null"` // bcrypt-хеш
	Name     string

	Roles []Role `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Profile — публичная часть пользователя, отдаётся по /profile/{username}.
type Profile struct {
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileOf строит публичный профиль пользователя.
func ProfileOf(u *User) Profile {
	return Profile{Username: u.Login, Name: u.Name, CreatedAt: u.CreatedAt.UTC()}
}
